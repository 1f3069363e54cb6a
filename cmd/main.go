package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"assetra/internal/caching"
	"assetra/internal/handlers"
	"assetra/internal/jobs/background"
	"assetra/internal/middleware"
	"assetra/internal/repositories"
	"assetra/internal/services"
	"assetra/pkg/database"
)

func main() {
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; tokens will not survive a restart")
	}
	jwksURL := os.Getenv("JWKS_URL")

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if db, err := strconv.Atoi(s); err == nil {
			redisDB = db
		}
	}

	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpPort == "" {
		smtpPort = "587"
	}
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	smtpFrom := os.Getenv("SMTP_FROM")
	if smtpFrom == "" {
		smtpFrom = "no-reply@assetra.local"
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	orgRepo := repositories.NewOrganizationRepo(pool)
	domainRepo := repositories.NewOrganizationDomainRepo(pool)
	userOrgRepo := repositories.NewUserOrganizationRepo(pool)
	categoryRepo := repositories.NewAssetCategoryRepo(pool)
	typeRepo := repositories.NewAssetTypeRepo(pool)
	vendorRepo := repositories.NewVendorRepo(pool)
	assetRepo := repositories.NewAssetRepo(pool)
	assignmentRepo := repositories.NewAssetAssignmentRepo(pool)
	returnRepo := repositories.NewAssetReturnRepo(pool)
	maintenanceRepo := repositories.NewAssetMaintenanceRepo(pool)
	retireRepo := repositories.NewAssetRetireRepo(pool)
	statusRepo := repositories.NewAssetStatusRepo(pool)
	requestRepo := repositories.NewAssetRequestRepo(pool)
	auditRepo := repositories.NewAuditLogsRepo(pool)

	// Cache and storage
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	storageSvc, err := services.NewMinioStorageService(minioEndpoint, minioAccessKey, minioSecretKey, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Services
	tokenSvc, err := services.NewTokenService(cacheSvc, jwtSecret, jwksURL, 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}
	notificationSvc := services.NewNotificationService(smtpHost, smtpPort, smtpUser, smtpPass, smtpFrom)
	tenantSvc := services.NewTenantService(pool, orgRepo, domainRepo, userOrgRepo, cacheSvc)
	authSvc := services.NewAuthService(userRepo, tenantSvc, tokenSvc, notificationSvc, baseURL)
	catalogSvc := services.NewCatalogService(categoryRepo, typeRepo, vendorRepo, assetRepo, statusRepo, storageSvc)
	lifecycleSvc := services.NewLifecycleService(pool, assetRepo, assignmentRepo, returnRepo, maintenanceRepo, retireRepo, userOrgRepo)
	requestSvc := services.NewRequestService(pool, requestRepo, userRepo, notificationSvc)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	orgHandlers := handlers.NewOrganizationHandlers(tenantSvc)
	categoryHandlers := handlers.NewCategoryHandlers(catalogSvc)
	typeHandlers := handlers.NewAssetTypeHandlers(catalogSvc)
	vendorHandlers := handlers.NewVendorHandlers(catalogSvc)
	assetHandlers := handlers.NewAssetHandlers(catalogSvc)
	lifecycleHandlers := handlers.NewLifecycleHandlers(lifecycleSvc)
	requestHandlers := handlers.NewRequestHandlers(requestSvc)
	auditHandlers := handlers.NewAuditLogsHandlers(auditRepo)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Middleware
	authorizer := middleware.NewAuthorizer(tenantSvc)
	auditMiddleware := middleware.NewAuditMiddleware(auditRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.Ready)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.GET("/confirm-email", authHandlers.ConfirmEmail)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/forgot-password", authHandlers.ForgotPassword)
	auth.POST("/reset-password", authHandlers.ResetPassword)

	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(tokenSvc))
	protected.Use(auditMiddleware.AuditRequest())

	protected.POST("/auth/logout", authHandlers.Logout)

	// Organization registration needs only authentication; everything else
	// under /organizations resolves the active membership via the policy gate.
	protected.POST("/organizations", orgHandlers.CreateOrganization)

	anyMember := protected.Group("", authorizer.Require(middleware.AnyMember))
	managers := protected.Group("", authorizer.Require(middleware.ManagerOnly))
	owner := protected.Group("", authorizer.Require(middleware.OwnerOnly))

	anyMember.GET("/organizations/me", orgHandlers.GetMyOrganization)
	owner.PUT("/organizations/me", orgHandlers.UpdateOrganization)
	owner.DELETE("/organizations/me", orgHandlers.DeactivateOrganization)
	managers.GET("/members", orgHandlers.ListMembers)
	owner.POST("/members/:userID/manager", orgHandlers.AssignManager)
	owner.DELETE("/members/:userID/manager", orgHandlers.DismissManager)

	managers.POST("/categories", categoryHandlers.CreateCategory)
	managers.PUT("/categories/:id", categoryHandlers.UpdateCategory)
	managers.DELETE("/categories/:id", categoryHandlers.DeleteCategory)
	anyMember.GET("/categories", categoryHandlers.ListCategories)
	anyMember.GET("/categories/:id", categoryHandlers.GetCategory)

	managers.POST("/asset-types", typeHandlers.CreateAssetType)
	managers.PUT("/asset-types/:id", typeHandlers.UpdateAssetType)
	managers.DELETE("/asset-types/:id", typeHandlers.DeleteAssetType)
	anyMember.GET("/asset-types", typeHandlers.ListAssetTypes)

	managers.POST("/vendors", vendorHandlers.CreateVendor)
	managers.PUT("/vendors/:id", vendorHandlers.UpdateVendor)
	managers.DELETE("/vendors/:id", vendorHandlers.DeleteVendor)
	anyMember.GET("/vendors", vendorHandlers.ListVendors)

	managers.POST("/assets", assetHandlers.CreateAsset)
	managers.PATCH("/assets/:id", assetHandlers.UpdateAsset)
	anyMember.GET("/assets", assetHandlers.ListAssets)
	anyMember.GET("/asset-statuses", assetHandlers.ListAssetStatuses)
	anyMember.GET("/assets/:id", assetHandlers.GetAsset)
	managers.POST("/assets/:id/image", assetHandlers.UploadAssetImage)
	anyMember.GET("/assets/:id/image", assetHandlers.GetAssetImage)

	managers.POST("/assets/:id/assign", lifecycleHandlers.AssignAsset)
	managers.POST("/assets/:id/return", lifecycleHandlers.ReturnAsset)
	managers.POST("/assets/:id/retire", lifecycleHandlers.RetireAsset)
	managers.POST("/assets/:id/maintenance", lifecycleHandlers.StartMaintenance)
	managers.POST("/assets/:id/maintenance/complete", lifecycleHandlers.CompleteMaintenance)
	anyMember.GET("/assets/:id/assignments", lifecycleHandlers.AssignmentHistory)
	anyMember.GET("/assets/:id/maintenance", lifecycleHandlers.MaintenanceHistory)
	anyMember.GET("/my/assets", lifecycleHandlers.MyAssets)

	anyMember.POST("/requests", requestHandlers.SubmitRequest)
	managers.POST("/requests/:id/process", requestHandlers.ProcessRequest)
	anyMember.POST("/requests/:id/cancel", requestHandlers.CancelRequest)
	managers.GET("/requests", requestHandlers.ListRequests)
	anyMember.GET("/requests/:id", requestHandlers.GetRequest)
	anyMember.GET("/my/requests", requestHandlers.ListMyRequests)

	owner.GET("/audit-logs", auditHandlers.ListAuditLogs)

	// Background jobs
	scheduler := background.NewJobScheduler(cacheSvc, requestRepo, userOrgRepo, userRepo, notificationSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := e.Start(fmt.Sprintf(":%s", port)); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
