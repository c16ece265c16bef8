package purchase

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"warrantyhub/internal/certificate"
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

// RegisterRoutes expects a group guarded by RequireAny.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	purchases := protected.Group("/purchases")
	{
		purchases.POST("", h.Create)
		purchases.GET("", h.List)
		purchases.GET("/expiring", h.Expiring)
		purchases.GET("/:id", h.Get)
		purchases.PATCH("/:id/status", h.UpdateStatus)
		purchases.GET("/:id/certificate", h.Certificate)
	}
}

func (h *Handler) Create(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)

	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	p, err := h.service.Create(c.Request.Context(), pr, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"purchase": p})
}

func (h *Handler) List(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)

	out, err := h.service.List(c.Request.Context(), pr)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"purchases": out})
}

func (h *Handler) Get(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), pr, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"purchase": p})
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

	p, err := h.service.UpdateStatus(c.Request.Context(), pr, id, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"purchase": p})
}

func (h *Handler) Expiring(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)

	out, err := h.service.Expiring(c.Request.Context(), pr, c.Query("filter"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"purchases": out, "count": len(out)})
}

func (h *Handler) Certificate(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	p, pdf, err := h.service.Certificate(c.Request.Context(), pr, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, certificate.Number(p)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPurchaseNotFound):
		response.Error(c, http.StatusNotFound, "PURCHASE_NOT_FOUND", "Purchase not found")
	case errors.Is(err, ErrPlanNotFound):
		response.Error(c, http.StatusNotFound, "PLAN_NOT_FOUND", "Plan not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized to access this purchase")
	case errors.Is(err, ErrInvalidStatus):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body",
			[]validator.FieldError{{Field: "status", Message: "status must be one of [pending active cancelled expired]"}})
	default:
		h.log.Error("purchase request failed", zap.Error(err), zap.String("path", c.FullPath()))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
