package bill

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"warrantyhub/internal/middleware"
	"warrantyhub/internal/pkg/response"
	"warrantyhub/internal/pkg/validator"
	"warrantyhub/internal/storage"
)

const (
	invoiceField = "invoiceFile"

	// room for the text fields and multipart framing around the invoice
	formOverhead = 64 << 10
)

type Handler struct {
	service *Service
	maxBody int64
	log     *zap.Logger
}

func NewHandler(service *Service, maxUploadSize int64, log *zap.Logger) *Handler {
	return &Handler{service: service, maxBody: maxUploadSize + formOverhead, log: log}
}

// RegisterUserRoutes expects a group guarded by RequireUser.
func (h *Handler) RegisterUserRoutes(protected *gin.RouterGroup) {
	bills := protected.Group("/bills")
	{
		bills.POST("/upload", h.Upload)
		bills.GET("/my-bills", h.List)
	}
}

func (h *Handler) Upload(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)

	if c.Request.ContentLength > h.maxBody {
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", storage.ErrFileTooLarge.Error())
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)

	fh, err := c.FormFile(invoiceField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", storage.ErrFileTooLarge.Error())
			return
		}
		response.Error(c, http.StatusBadRequest, "FILE_REQUIRED", "Invoice file not uploaded.")
		return
	}

	var form UploadBillForm
	if err := c.ShouldBind(&form); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}
	b, err := form.Bill()
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp, err := h.service.Upload(c.Request.Context(), pr.ID, b, fh)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "Bill uploaded successfully", "bill": resp})
}

func (h *Handler) List(c *gin.Context) {
	pr, _ := middleware.CurrentPrincipal(c)

	bills, err := h.service.List(c.Request.Context(), pr.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bills": bills, "count": len(bills)})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidPurchaseDate):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body",
			[]validator.FieldError{{Field: "purchaseDate", Message: err.Error()}})
	case errors.Is(err, ErrInvalidAmount):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body",
			[]validator.FieldError{{Field: "totalAmount", Message: err.Error()}})
	case errors.Is(err, storage.ErrEmptyFile), errors.Is(err, storage.ErrInvalidMimeType):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
	case errors.Is(err, storage.ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	default:
		h.log.Error("bill request failed", zap.Error(err), zap.String("path", c.FullPath()))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
