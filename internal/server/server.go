// Package server assembles the HTTP API: repositories, services, handlers and the middleware chain.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"warrantyhub/internal/cache"
	"warrantyhub/internal/certificate"
	"warrantyhub/internal/config"
	"warrantyhub/internal/middleware"
	"warrantyhub/internal/modules/auth"
	"warrantyhub/internal/modules/bill"
	"warrantyhub/internal/modules/claim"
	"warrantyhub/internal/modules/company"
	"warrantyhub/internal/modules/plan"
	"warrantyhub/internal/modules/purchase"
	"warrantyhub/internal/modules/user"
	"warrantyhub/internal/pkg/jwt"
	"warrantyhub/internal/repository"
	"warrantyhub/internal/storage"
)

// New wires every module onto a fresh gin engine. reg receives the HTTP collectors.
func New(cfg *config.Config, db *gorm.DB, c cache.Cache, reg *prometheus.Registry, log *zap.Logger) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	planRepo := repository.NewPlanRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	claimRepo := repository.NewClaimRepository(db)

	tokens := jwt.New(cfg.JWTSecret, cfg.UserTokenTTL, cfg.CompanyTokenTTL)
	authn := middleware.NewAuthenticator(tokens, userRepo, companyRepo, log)
	files := storage.NewLocalStore(cfg.UploadDir, cfg.StaticURLBase, cfg.MaxUploadSize)

	planService := plan.NewService(planRepo, c, cfg.MarketplaceCacheTTL, log)

	authHandler := auth.NewHandler(auth.NewService(userRepo, companyRepo, tokens, log), log)
	planHandler := plan.NewHandler(planService, log)
	companyHandler := company.NewHandler(company.NewService(companyRepo, planService, planRepo, purchaseRepo), log)
	purchaseHandler := purchase.NewHandler(purchase.NewService(purchaseRepo, planRepo, planService, certificate.NewGenerator(), log), log)
	claimHandler := claim.NewHandler(claim.NewService(claimRepo, userRepo, planRepo), log)
	billHandler := bill.NewHandler(bill.NewService(userRepo, files, log), cfg.MaxUploadSize, log)
	userHandler := user.NewHandler(user.NewService(userRepo), log)

	metrics := middleware.NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(metrics.Middleware())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", health(db))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.Static(cfg.StaticURLBase, cfg.UploadDir)

	api := r.Group("/api")

	// public
	authHandler.RegisterPublicRoutes(api)
	planHandler.RegisterPublicRoutes(api)
	companyHandler.RegisterPublicRoutes(api)

	userOnly := api.Group("", authn.RequireUser())
	authHandler.RegisterUserRoutes(userOnly)
	billHandler.RegisterUserRoutes(userOnly)

	companyOnly := api.Group("", authn.RequireCompany())
	companyHandler.RegisterCompanyRoutes(companyOnly)
	planHandler.RegisterCompanyRoutes(companyOnly)
	userHandler.RegisterCompanyRoutes(companyOnly)

	anyAccount := api.Group("", authn.RequireAny())
	purchaseHandler.RegisterRoutes(anyAccount)
	claimHandler.RegisterRoutes(anyAccount)

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
