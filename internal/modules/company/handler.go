package company

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"warrantyhub/internal/middleware"
	"warrantyhub/internal/modules/plan"
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
	api.GET("/companies/plans", h.GetAllPlans)
}

// RegisterCompanyRoutes expects a group guarded by RequireCompany.
func (h *Handler) RegisterCompanyRoutes(protected *gin.RouterGroup) {
	companies := protected.Group("/companies")
	{
		companies.GET("/me", h.GetProfile)
		companies.PUT("/profile", h.UpdateProfile)
		companies.GET("/stats", h.GetStats)
		companies.POST("/plans", h.CreatePlan)
		companies.PUT("/plans/:planId", h.UpdatePlan)
		companies.DELETE("/plans/:planId", h.DeletePlan)
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)

	company, err := h.service.GetProfile(c.Request.Context(), pr.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, company)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	company, err := h.service.UpdateProfile(c.Request.Context(), pr.ID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, company)
}

func (h *Handler) GetStats(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)

	stats, err := h.service.Stats(c.Request.Context(), pr.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) CreatePlan(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)

	var req plan.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	plans, err := h.service.CreatePlan(c.Request.Context(), pr.ID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"plans": plans})
}

func (h *Handler) UpdatePlan(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)
	planID, ok := utils.ParamID(c, "planId")
	if !ok {
		return
	}

	var req plan.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	plans, err := h.service.UpdatePlan(c.Request.Context(), pr.ID, planID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plans": plans})
}

func (h *Handler) DeletePlan(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)
	planID, ok := utils.ParamID(c, "planId")
	if !ok {
		return
	}

	plans, err := h.service.DeletePlan(c.Request.Context(), pr.ID, planID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plans": plans})
}

func (h *Handler) GetAllPlans(c *gin.Context) {
	plans, err := h.service.AllPlans(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plans": plans})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrCompanyNotFound) {
		response.Error(c, http.StatusNotFound, "COMPANY_NOT_FOUND", "Company not found")
		return
	}
	plan.WriteError(c, h.log, err)
}
