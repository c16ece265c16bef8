package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"warrantyhub/internal/domain"
	"warrantyhub/internal/pkg/jwt"
	"warrantyhub/internal/pkg/response"
	"warrantyhub/internal/repository"
)

const principalKey = "principal"

type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type CompanyLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
}

type TokenVerifier interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

// Authenticator resolves the bearer token into a Principal and guards routes by principal kind.
type Authenticator struct {
	tokens    TokenVerifier
	users     UserLoader
	companies CompanyLoader
	log       *zap.Logger
}

func NewAuthenticator(tokens TokenVerifier, users UserLoader, companies CompanyLoader, log *zap.Logger) *Authenticator {
	return &Authenticator{
		tokens:    tokens,
		users:     users,
		companies: companies,
		log:       log,
	}
}

func (a *Authenticator) RequireUser() gin.HandlerFunc {
	return a.require(domain.PrincipalUser)
}

func (a *Authenticator) RequireCompany() gin.HandlerFunc {
	return a.require(domain.PrincipalCompany)
}

func (a *Authenticator) RequireAny() gin.HandlerFunc {
	return a.require(domain.PrincipalUser, domain.PrincipalCompany)
}

func (a *Authenticator) require(kinds ...domain.PrincipalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be: Bearer <token>")
			return
		}

		claims, err := a.tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		kind := domain.PrincipalKind(claims.Kind)
		if !allowed(kind, kinds) {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Token is not valid for this resource")
			return
		}

		pr, err := a.load(c.Request.Context(), kind, claims.SubjectID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.Abort(c, http.StatusUnauthorized, "ACCOUNT_NOT_FOUND", "Account no longer exists")
				return
			}
			a.log.Error("load principal", zap.Error(err), zap.String("kind", claims.Kind), zap.Int64("id", claims.SubjectID))
			response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
			return
		}
		if pr.IsCompany() && !pr.Company.IsActive {
			response.Abort(c, http.StatusForbidden, "ACCOUNT_DEACTIVATED", "Account is deactivated")
			return
		}

		c.Set(principalKey, pr)
		c.Next()
	}
}

func (a *Authenticator) load(ctx context.Context, kind domain.PrincipalKind, id int64) (domain.Principal, error) {
	if kind == domain.PrincipalCompany {
		company, err := a.companies.GetByID(ctx, id)
		if err != nil {
			return domain.Principal{}, err
		}
		return domain.CompanyPrincipal(company), nil
	}

	user, err := a.users.GetByID(ctx, id)
	if err != nil {
		return domain.Principal{}, err
	}
	return domain.UserPrincipal(user), nil
}

func allowed(kind domain.PrincipalKind, kinds []domain.PrincipalKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// CurrentPrincipal returns the caller attached by one of the guards.
func CurrentPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	pr, ok := v.(domain.Principal)
	return pr, ok
}

// SetPrincipal attaches a caller to the context. Used by tests that bypass token checks.
func SetPrincipal(c *gin.Context, pr domain.Principal) {
	c.Set(principalKey, pr)
}
