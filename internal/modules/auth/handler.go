package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"warrantyhub/internal/middleware"
	"warrantyhub/internal/pkg/response"
	"warrantyhub/internal/pkg/validator"
)

const missingFieldsMessage = "Please fill all required fields."

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
	}

	companies := api.Group("/companies")
	{
		companies.POST("/register", h.RegisterCompany)
		companies.POST("/login", h.LoginCompany)
	}
}

// RegisterUserRoutes expects a group guarded by RequireUser.
func (h *Handler) RegisterUserRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.Me)
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", missingFieldsMessage, validator.Details(err))
		return
	}

	user, token, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusBadRequest, "EMAIL_EXISTS", "User already exists.")
			return
		}
		h.log.Error("signup failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "SIGNUP_FAILED", "Failed to create account")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":  NewUserPublic(user),
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", missingFieldsMessage, validator.Details(err))
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeLoginError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  NewUserPublic(user),
		"token": token,
	})
}

func (h *Handler) RegisterCompany(c *gin.Context) {
	var req CompanyRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	company, token, err := h.service.RegisterCompany(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusBadRequest, "EMAIL_EXISTS", "Company already exists with this email")
			return
		}
		h.log.Error("company registration failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register company")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"company": NewCompanyPublic(company),
		"token":   token,
	})
}

func (h *Handler) LoginCompany(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", missingFieldsMessage, validator.Details(err))
		return
	}

	company, token, err := h.service.LoginCompany(c.Request.Context(), req)
	if err != nil {
		h.writeLoginError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"company": NewCompanyPublic(company),
		"token":   token,
	})
}

func (h *Handler) Me(c *gin.Context) {
	pr, ok := middleware.CurrentPrincipal(c)
	if !ok || pr.User == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": NewUserPublic(pr.User)})
}

func (h *Handler) writeLoginError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		response.Error(c, http.StatusNotFound, "ACCOUNT_NOT_FOUND", "No account found with this email")
	case errors.Is(err, ErrAccountDeactivated):
		response.Error(c, http.StatusForbidden, "ACCOUNT_DEACTIVATED", "Account is deactivated")
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	default:
		h.log.Error("login failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
	}
}
