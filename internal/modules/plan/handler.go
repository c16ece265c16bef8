package plan

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

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/plans/marketplace", h.Marketplace)
}

// RegisterCompanyRoutes expects a group guarded by RequireCompany.
func (h *Handler) RegisterCompanyRoutes(protected *gin.RouterGroup) {
	plans := protected.Group("/plans")
	{
		plans.POST("", h.Create)
		plans.GET("", h.List)
		plans.GET("/:id", h.Get)
		plans.PUT("/:id", h.Update)
		plans.DELETE("/:id", h.Delete)
		plans.PATCH("/:id/status", h.ToggleStatus)
	}
}

func (h *Handler) Create(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	p, err := h.service.Create(c.Request.Context(), pr.ID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"plan": p})
}

func (h *Handler) List(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)

	plans, err := h.service.List(c.Request.Context(), pr.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plans": plans})
}

func (h *Handler) Get(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), pr.ID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plan": p})
}

// Update applies only the fields present in the body.
func (h *Handler) Update(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	p, err := h.service.Update(c.Request.Context(), pr.ID, id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plan": p})
}

func (h *Handler) Delete(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), pr.ID, id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Plan deleted successfully")
}

func (h *Handler) ToggleStatus(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.ToggleStatus(c.Request.Context(), pr.ID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plan": p})
}

func (h *Handler) Marketplace(c *gin.Context) {
	plans, err := h.service.Marketplace(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plans": plans})
}

// WriteError maps plan errors to responses. Shared with the company plan routes.
func WriteError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, ErrPlanNotFound):
		response.Error(c, http.StatusNotFound, "PLAN_NOT_FOUND", "Plan not found")
	case errors.Is(err, ErrInvalidPrice):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body",
			[]validator.FieldError{{Field: "price", Message: "price must be at least 0"}})
	case errors.Is(err, ErrPlanInUse):
		response.Error(c, http.StatusConflict, "PLAN_IN_USE", "Plan has purchases or claims and cannot be deleted")
	default:
		log.Error("plan request failed", zap.Error(err), zap.String("path", c.FullPath()))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	WriteError(c, h.log, err)
}
