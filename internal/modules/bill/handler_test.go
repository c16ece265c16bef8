package bill

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"warrantyhub/internal/domain"
	"warrantyhub/internal/middleware"
	"warrantyhub/internal/repository"
	"warrantyhub/internal/storage"
	"warrantyhub/internal/testutil"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field string `json:"field"`
		} `json:"details"`
	} `json:"error"`
}

func newRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("/api", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.GetHeader("X-Test-User-ID"), 10, 64)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		middleware.SetPrincipal(c, domain.Principal{Kind: domain.PrincipalUser, ID: id})
		c.Next()
	})
	NewHandler(svc, 1<<20, zap.NewNop()).RegisterUserRoutes(protected)
	return r
}

func setup(t *testing.T) (*gin.Engine, *Service, string) {
	t.Helper()
	db := testutil.NewDB(t)
	require.NoError(t, db.Omit("Bills").Create(&domain.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "h"}).Error)

	dir := t.TempDir()
	svc := NewService(repository.NewUserRepository(db), storage.NewLocalStore(dir, "/static/uploads", 1<<20), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return newRouter(svc), svc, dir
}

func uploadRequest(t *testing.T, fields map[string]string, file []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		fw, err := w.CreateFormFile("invoiceFile", "receipt.png")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/bills/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Test-User-ID", "1")
	return req
}

func serve(r http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	var env envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return rr, env
}

func billFields(product, purchased string, months int) map[string]string {
	return map[string]string{
		"productName":          product,
		"purchaseDate":         purchased,
		"warrantyPeriodMonths": strconv.Itoa(months),
		"reminderBeforeExpiry": "15",
		"storeName":            "Croma",
		"totalAmount":          "45999.00",
		"notes":                "gift",
	}
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	require.NoError(t, filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return err
	}))
	return n
}

func TestUpload_RequiresFile(t *testing.T) {
	r, _, dir := setup(t)

	rr, env := serve(r, uploadRequest(t, billFields("TV", "2023-06-01", 12), nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invoice file not uploaded.", env.Error.Message)
	assert.Zero(t, countFiles(t, dir))
}

func TestUpload_StoresFileAndBill(t *testing.T) {
	r, _, dir := setup(t)

	rr, env := serve(r, uploadRequest(t, billFields("TV", "2023-06-01", 12), pngHeader))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var data struct {
		Bill struct {
			ProductName       string          `json:"productName"`
			InvoiceFileURL    string          `json:"invoiceFileUrl"`
			TotalAmount       decimal.Decimal `json:"totalAmount"`
			WarrantyExpiresAt time.Time       `json:"warrantyExpiresAt"`
			WarrantyStatus    string          `json:"warrantyStatus"`
		} `json:"bill"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "TV", data.Bill.ProductName)
	assert.True(t, strings.HasPrefix(data.Bill.InvoiceFileURL, "/static/uploads/"))
	assert.True(t, strings.HasSuffix(data.Bill.InvoiceFileURL, ".png"))
	assert.True(t, data.Bill.TotalAmount.Equal(decimal.RequireFromString("45999")))
	assert.Equal(t, "2024-06-01", data.Bill.WarrantyExpiresAt.Format("2006-01-02"))
	assert.Equal(t, "active", data.Bill.WarrantyStatus)

	rel := strings.TrimPrefix(data.Bill.InvoiceFileURL, "/static/uploads/")
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	assert.NoError(t, err)
}

func TestUpload_Validation(t *testing.T) {
	r, _, dir := setup(t)

	rr, env := serve(r, uploadRequest(t, billFields("TV", "01/06/2023", 12), pngHeader))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	require.NotEmpty(t, env.Error.Details)
	assert.Equal(t, "purchaseDate", env.Error.Details[0].Field)

	fields := billFields("TV", "2023-06-01", 12)
	fields["totalAmount"] = "-3"
	rr, _ = serve(r, uploadRequest(t, fields, pngHeader))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	fields = billFields("", "2023-06-01", 12)
	rr, env = serve(r, uploadRequest(t, fields, pngHeader))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	require.NotEmpty(t, env.Error.Details)
	assert.Equal(t, "productName", env.Error.Details[0].Field)

	rr, env = serve(r, uploadRequest(t, billFields("TV", "2023-06-01", 12), []byte("plain text is not an invoice")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_FILE", env.Error.Code)

	rr, env = serve(r, uploadRequest(t, billFields("TV", "2023-06-01", 12), append(pngHeader, make([]byte, 1<<20)...)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "FILE_TOO_LARGE", env.Error.Code)

	assert.Zero(t, countFiles(t, dir))
}

func TestUpload_RejectsOversizedBody(t *testing.T) {
	r, _, dir := setup(t)

	rr, env := serve(r, uploadRequest(t, billFields("TV", "2023-06-01", 12), append(pngHeader, make([]byte, 2<<20)...)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "FILE_TOO_LARGE", env.Error.Code)

	// no declared length: the body is cut off while parsing
	req := uploadRequest(t, billFields("TV", "2023-06-01", 12), append(pngHeader, make([]byte, 2<<20)...))
	req.ContentLength = -1
	rr, env = serve(r, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "FILE_TOO_LARGE", env.Error.Code)

	assert.Zero(t, countFiles(t, dir))
}

func TestMyBills_DerivedWarranty(t *testing.T) {
	r, _, _ := setup(t)

	for _, f := range []map[string]string{
		billFields("Phone", "2023-01-15", 12),
		billFields("Laptop", "2023-01-15", 24),
		billFields("Kettle", "2023-03-01T10:00:00Z", 6),
	} {
		rr, _ := serve(r, uploadRequest(t, f, pngHeader))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bills/my-bills", nil)
	req.Header.Set("X-Test-User-ID", "1")
	rr, env := serve(r, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var data struct {
		Bills []struct {
			ProductName    string `json:"productName"`
			WarrantyStatus string `json:"warrantyStatus"`
		} `json:"bills"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, 3, data.Count)

	status := map[string]string{}
	for _, b := range data.Bills {
		status[b.ProductName] = b.WarrantyStatus
	}
	assert.Equal(t, map[string]string{"Phone": "expiring", "Laptop": "active", "Kettle": "expired"}, status)
	assert.Equal(t, "Phone", data.Bills[0].ProductName)
}

type failingRepo struct{}

func (failingRepo) AddBill(context.Context, *domain.Bill) error { return errors.New("disk full") }
func (failingRepo) ListBills(context.Context, int64) ([]domain.Bill, error) {
	return nil, nil
}

func TestUpload_RemovesFileWhenSaveFails(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(failingRepo{}, storage.NewLocalStore(dir, "/static/uploads", 1<<20), zap.NewNop())
	r := newRouter(svc)

	rr, _ := serve(r, uploadRequest(t, billFields("TV", "2023-06-01", 12), pngHeader))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Zero(t, countFiles(t, dir))
}
