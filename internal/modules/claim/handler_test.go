package claim

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"warrantyhub/internal/domain"
	"warrantyhub/internal/middleware"
	"warrantyhub/internal/repository"
	"warrantyhub/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Details []struct {
			Field string `json:"field"`
		} `json:"details"`
	} `json:"error"`
}

type caller struct {
	kind domain.PrincipalKind
	id   int64
}

var (
	asha   = caller{domain.PrincipalUser, 1}
	ravi   = caller{domain.PrincipalUser, 2}
	acme   = caller{domain.PrincipalCompany, 1}
	shield = caller{domain.PrincipalCompany, 2}
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, domain.Plan) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	require.NoError(t, db.Create(&domain.Company{Name: "Acme Care", Email: "care@acme.io", PasswordHash: "h", IsActive: true}).Error)
	require.NoError(t, db.Create(&domain.Company{Name: "Shield Co", Email: "hi@shield.io", PasswordHash: "h", IsActive: true}).Error)
	require.NoError(t, db.Omit("Bills").Create(&domain.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "h"}).Error)
	require.NoError(t, db.Omit("Bills").Create(&domain.User{Name: "Ravi", Email: "ravi@example.com", PasswordHash: "h"}).Error)

	plan := domain.Plan{CompanyID: 1, Name: "Basic", Price: decimal.NewFromInt(100), Duration: 30, Coverage: "Damage", Terms: "Yearly", Active: true}
	require.NoError(t, db.Create(&plan).Error)

	svc := NewService(repository.NewClaimRepository(db), repository.NewUserRepository(db), repository.NewPlanRepository(db))
	svc.now = func() time.Time { return time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC) }

	r := gin.New()
	protected := r.Group("/api", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.GetHeader("X-Test-ID"), 10, 64)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		middleware.SetPrincipal(c, domain.Principal{Kind: domain.PrincipalKind(c.GetHeader("X-Test-Kind")), ID: id})
		c.Next()
	})
	NewHandler(svc, zap.NewNop()).RegisterRoutes(protected)
	return r, db, plan
}

func doJSONRequest(r http.Handler, method, path string, body any, who caller) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Kind", string(who.kind))
	req.Header.Set("X-Test-ID", strconv.FormatInt(who.id, 10))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return rr, env
}

func claimBody(userID, planID int64) gin.H {
	return gin.H{
		"user":             userID,
		"plan":             planID,
		"deviceDetails":    "iPhone 13, SN 4411",
		"issueDescription": "Cracked screen",
		"amount":           120.5,
		"documents":        []gin.H{{"url": "/static/uploads/a.jpg", "type": "image"}},
	}
}

func decodeClaim(t *testing.T, env envelope) domain.Claim {
	t.Helper()
	var data struct {
		Claim domain.Claim `json:"claim"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Claim
}

func fileClaim(t *testing.T, r http.Handler, who caller, userID, planID int64) domain.Claim {
	t.Helper()
	rr, env := doJSONRequest(r, http.MethodPost, "/api/claims", claimBody(userID, planID), who)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeClaim(t, env)
}

func TestCreateClaim(t *testing.T) {
	r, _, plan := setupTestRouter(t)

	c := fileClaim(t, r, asha, 1, plan.ID)
	assert.Equal(t, domain.ClaimStatusPending, c.Status)
	assert.Equal(t, int64(1), c.CompanyID)
	assert.True(t, c.Amount.Equal(decimal.RequireFromString("120.5")))
	assert.Equal(t, "2024-05-02", c.ClaimDate.UTC().Format("2006-01-02"))
	require.Len(t, c.Documents, 1)
	assert.Equal(t, "image", c.Documents[0].Type)
	require.NotNil(t, c.User)
	assert.Equal(t, "Asha", c.User.Name)
	require.NotNil(t, c.Plan)
	assert.Equal(t, "Basic", c.Plan.Name)
}

func TestCreateClaim_Validation(t *testing.T) {
	r, _, plan := setupTestRouter(t)

	rr, env := doJSONRequest(r, http.MethodPost, "/api/claims", gin.H{}, asha)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	fields := map[string]bool{}
	for _, d := range env.Error.Details {
		fields[d.Field] = true
	}
	for _, f := range []string{"user", "plan", "deviceDetails", "issueDescription", "amount", "documents"} {
		assert.True(t, fields[f], "missing detail for %s", f)
	}

	body := claimBody(1, plan.ID)
	body["amount"] = "a lot"
	rr, _ = doJSONRequest(r, http.MethodPost, "/api/claims", body, asha)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body = claimBody(1, plan.ID)
	body["documents"] = []gin.H{}
	rr, _ = doJSONRequest(r, http.MethodPost, "/api/claims", body, asha)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestCreateClaim_References(t *testing.T) {
	r, db, plan := setupTestRouter(t)

	rr, env := doJSONRequest(r, http.MethodPost, "/api/claims", claimBody(1, 999), asha)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "PLAN_NOT_FOUND", env.Error.Code)

	rr, env = doJSONRequest(r, http.MethodPost, "/api/claims", claimBody(999, plan.ID), acme)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "USER_NOT_FOUND", env.Error.Code)

	// users file only for themselves
	rr, _ = doJSONRequest(r, http.MethodPost, "/api/claims", claimBody(2, plan.ID), asha)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// companies file only against their own plans
	rr, _ = doJSONRequest(r, http.MethodPost, "/api/claims", claimBody(1, plan.ID), shield)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr, _ = doJSONRequest(r, http.MethodPost, "/api/claims", claimBody(2, plan.ID), acme)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var n int64
	db.Model(&domain.Claim{}).Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestListAndGet_Scoped(t *testing.T) {
	r, db, plan := setupTestRouter(t)
	other := domain.Plan{CompanyID: 2, Name: "Shield", Price: decimal.NewFromInt(10), Duration: 7, Coverage: "c", Terms: "t", Active: true}
	require.NoError(t, db.Create(&other).Error)

	first := fileClaim(t, r, asha, 1, plan.ID)
	second := fileClaim(t, r, asha, 1, other.ID)
	fileClaim(t, r, ravi, 2, plan.ID)

	list := func(who caller) []domain.Claim {
		rr, env := doJSONRequest(r, http.MethodGet, "/api/claims", nil, who)
		require.Equal(t, http.StatusOK, rr.Code)
		var data struct {
			Claims []domain.Claim `json:"claims"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		return data.Claims
	}

	mine := list(asha)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	assert.Len(t, list(acme), 2)
	assert.Len(t, list(shield), 1)

	path := "/api/claims/" + strconv.FormatInt(first.ID, 10)
	rr, _ := doJSONRequest(r, http.MethodGet, path, nil, ravi)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr, _ = doJSONRequest(r, http.MethodGet, path, nil, shield)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr, _ = doJSONRequest(r, http.MethodGet, path, nil, acme)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr, _ = doJSONRequest(r, http.MethodGet, "/api/claims/31337", nil, asha)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateClaim_FilingUserOnly(t *testing.T) {
	r, _, plan := setupTestRouter(t)
	c := fileClaim(t, r, asha, 1, plan.ID)
	path := "/api/claims/" + strconv.FormatInt(c.ID, 10)

	rr, _ := doJSONRequest(r, http.MethodPut, path, gin.H{"amount": 80}, acme)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr, _ = doJSONRequest(r, http.MethodPut, path, gin.H{"amount": -5}, asha)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, env := doJSONRequest(r, http.MethodPut, path, gin.H{"amount": 80, "issueDescription": "Cracked screen and bezel"}, asha)
	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeClaim(t, env)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, "Cracked screen and bezel", got.IssueDescription)
	assert.Equal(t, "iPhone 13, SN 4411", got.DeviceDetails)
	assert.Len(t, got.Documents, 1)
	assert.Equal(t, domain.ClaimStatusPending, got.Status)
}

func TestUpdateClaimStatus(t *testing.T) {
	r, db, plan := setupTestRouter(t)
	c := fileClaim(t, r, asha, 1, plan.ID)
	path := "/api/claims/" + strconv.FormatInt(c.ID, 10) + "/status"

	rr, _ := doJSONRequest(r, http.MethodPatch, path, gin.H{"status": "approved"}, asha)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr, _ = doJSONRequest(r, http.MethodPatch, path, gin.H{"status": "approved"}, shield)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr, env := doJSONRequest(r, http.MethodPatch, path, gin.H{"status": "settled"}, acme)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	for _, s := range []domain.ClaimStatus{domain.ClaimStatusApproved, domain.ClaimStatusPending, domain.ClaimStatusRejected} {
		rr, env = doJSONRequest(r, http.MethodPatch, path, gin.H{"status": s}, acme)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, s, decodeClaim(t, env).Status)
	}

	var stored domain.Claim
	require.NoError(t, db.First(&stored, c.ID).Error)
	assert.Equal(t, domain.ClaimStatusRejected, stored.Status)
}

func TestDeleteClaim(t *testing.T) {
	r, db, plan := setupTestRouter(t)
	byUser := fileClaim(t, r, asha, 1, plan.ID)
	forCompany := fileClaim(t, r, asha, 1, plan.ID)

	rr, _ := doJSONRequest(r, http.MethodDelete, "/api/claims/"+strconv.FormatInt(byUser.ID, 10), nil, ravi)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr, _ = doJSONRequest(r, http.MethodDelete, "/api/claims/"+strconv.FormatInt(byUser.ID, 10), nil, asha)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = doJSONRequest(r, http.MethodDelete, "/api/claims/"+strconv.FormatInt(forCompany.ID, 10), nil, acme)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = doJSONRequest(r, http.MethodDelete, "/api/claims/"+strconv.FormatInt(forCompany.ID, 10), nil, acme)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	var n int64
	db.Model(&domain.Claim{}).Count(&n)
	assert.Zero(t, n)
}
