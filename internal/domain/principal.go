package domain

import "github.com/shopspring/decimal"

func init() {
	// amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type PrincipalKind string

const (
	PrincipalUser    PrincipalKind = "user"
	PrincipalCompany PrincipalKind = "company"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	Kind    PrincipalKind
	ID      int64
	User    *User
	Company *Company
}

func UserPrincipal(u *User) Principal {
	return Principal{Kind: PrincipalUser, ID: u.ID, User: u}
}

func CompanyPrincipal(c *Company) Principal {
	return Principal{Kind: PrincipalCompany, ID: c.ID, Company: c}
}

func (p Principal) IsUser() bool    { return p.Kind == PrincipalUser }
func (p Principal) IsCompany() bool { return p.Kind == PrincipalCompany }
