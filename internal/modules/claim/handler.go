package claim

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"warrantyhub/internal/middleware"
	"warrantyhub/internal/pkg/response"
	"warrantyhub/internal/pkg/utils"
	"warrantyhub/internal/pkg/validator"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes expects a group guarded by RequireAny; per-claim ownership is checked in the service.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	claims := protected.Group("/claims")
	{
		claims.POST("", h.Create)
		claims.GET("", h.List)
		claims.GET("/:id", h.Get)
		claims.PUT("/:id", h.Update)
		claims.DELETE("/:id", h.Delete)
		claims.PATCH("/:id/status", h.UpdateStatus)
	}
}

func (h *Handler) Create(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)

	var req CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	claim, err := h.service.Create(c.Request.Context(), pr, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"claim": claim})
}

func (h *Handler) List(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)

	claims, err := h.service.List(c.Request.Context(), pr)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"claims": claims})
}

func (h *Handler) Get(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	claim, err := h.service.Get(c.Request.Context(), pr, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"claim": claim})
}

func (h *Handler) Update(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	claim, err := h.service.Update(c.Request.Context(), pr, id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"claim": claim})
}

func (h *Handler) Delete(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), pr, id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Claim deleted successfully")
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	claim, err := h.service.UpdateStatus(c.Request.Context(), pr, id, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"claim": claim})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrClaimNotFound):
		response.Error(c, http.StatusNotFound, "CLAIM_NOT_FOUND", "Claim not found")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, ErrPlanNotFound):
		response.Error(c, http.StatusNotFound, "PLAN_NOT_FOUND", "Plan not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized to access this claim")
	case errors.Is(err, ErrInvalidStatus):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body",
			[]validator.FieldError{{Field: "status", Message: "status must be one of [pending processing approved rejected]"}})
	case errors.Is(err, ErrInvalidAmount):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body",
			[]validator.FieldError{{Field: "amount", Message: "amount must be at least 0"}})
	default:
		h.log.Error("claim request failed", zap.Error(err), zap.String("path", c.FullPath()))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
