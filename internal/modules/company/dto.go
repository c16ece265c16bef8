package company

import "github.com/shopspring/decimal"

type AddressInput struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type SocialMediaInput struct {
	Linkedin  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

// UpdateProfileRequest carries a partial profile. Empty values leave the stored field as is.
type UpdateProfileRequest struct {
	Name          string            `json:"name"`
	PhoneNumber   string            `json:"phoneNumber"`
	Logo          string            `json:"logo"`
	Website       string            `json:"website"`
	Industry      string            `json:"industry"`
	CompanySize   string            `json:"companySize"`
	FoundedYear   int               `json:"foundedYear" binding:"omitempty,gte=1800,lte=2100"`
	Description   string            `json:"description"`
	ContactPerson string            `json:"contactPerson"`
	ContactEmail  string            `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone  string            `json:"contactPhone"`
	Address       *AddressInput     `json:"address"`
	SocialMedia   *SocialMediaInput `json:"socialMedia"`
}

type Stats struct {
	TotalPlans  int64           `json:"totalPlans"`
	ActivePlans int64           `json:"activePlans"`
	TotalUsers  int             `json:"totalUsers"`
	Revenue     decimal.Decimal `json:"revenue"`
}
