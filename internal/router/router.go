package router

import (
	"time"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/config"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/handler"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/infra"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/middleware"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/repository"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/service"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps carries everything New needs besides config.
type Deps struct {
	DB         *gorm.DB
	RDB        *redis.Client
	Dispatcher *worker.Dispatcher
}

// New wires all dependencies and returns a configured Gin engine plus the
// maintenance service handed to the cron loop.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, d Deps) (*gin.Engine, service.MaintenanceService) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(d.DB)
	assetRepo := repository.NewAssetRepository(d.DB)
	checkoutRepo := repository.NewCheckoutRepository(d.DB)
	leaseRepo := repository.NewLeaseRepository(d.DB)
	reservationRepo := repository.NewReservationRepository(d.DB)
	moveRepo := repository.NewMoveRepository(d.DB)
	disposalRepo := repository.NewDisposalRepository(d.DB)
	historyRepo := repository.NewHistoryRepository(d.DB)
	employeeRepo := repository.NewEmployeeRepository(d.DB)
	maintenanceRepo := repository.NewMaintenanceRepository(d.DB)
	siteRepo := repository.NewLookupRepository[model.Site](d.DB)
	locationRepo := repository.NewLookupRepository[model.Location](d.DB)
	departmentRepo := repository.NewLookupRepository[model.Department](d.DB)
	categoryRepo := repository.NewLookupRepository[model.Category](d.DB)

	// ── Services ─────────────────────────────────────────────────────────────
	tagCache := infra.NewRedisTagCache(d.RDB, time.Duration(cfg.TagCacheTTLSeconds)*time.Second)

	authSvc := service.NewAuthService(userRepo, cfg)
	assetSvc := service.NewAssetService(assetRepo, checkoutRepo, leaseRepo, historyRepo, tagCache)
	lifecycleSvc := service.NewLifecycleService(
		assetRepo, checkoutRepo, leaseRepo, reservationRepo,
		moveRepo, disposalRepo, historyRepo, employeeRepo, d.Dispatcher,
	)
	employeeSvc := service.NewEmployeeService(employeeRepo)
	siteSvc := service.NewSiteService(siteRepo)
	locationSvc := service.NewLocationService(locationRepo)
	departmentSvc := service.NewDepartmentService(departmentRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	maintenanceSvc := service.NewMaintenanceService(maintenanceRepo, assetRepo, d.Dispatcher)
	reportSvc := service.NewReportService(assetRepo, disposalRepo, cfg.ExportStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	assetsH := handler.NewAssetsHandler(assetSvc)
	lifecycleH := handler.NewLifecycleHandler(lifecycleSvc)
	employeesH := handler.NewEmployeesHandler(employeeSvc)
	sitesH := handler.NewLookupHandler[model.Site](siteSvc)
	locationsH := handler.NewLookupHandler[model.Location](locationSvc)
	departmentsH := handler.NewLookupHandler[model.Department](departmentSvc)
	categoriesH := handler.NewLookupHandler[model.Category](categorySvc)
	maintenanceH := handler.NewMaintenanceHandler(maintenanceSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(d.DB, d.RDB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		anyRole := middleware.RequireRole("staff", "manager", "admin")
		managerUp := middleware.RequireRole("manager", "admin")
		adminOnly := middleware.RequireRole("admin")

		// Assets — all roles read, staff and up register, manager+ delete
		v1.GET("/assets", anyRole, assetsH.List)
		v1.GET("/assets/:id", anyRole, assetsH.GetByID)
		v1.GET("/assets/tag/:tag", anyRole, assetsH.GetByTag)
		v1.GET("/assets/:id/history", anyRole, assetsH.History)
		v1.GET("/assets/:id/reservations", anyRole, lifecycleH.ListReservations)
		v1.GET("/assets/:id/moves", anyRole, lifecycleH.ListMoves)
		v1.GET("/assets/:id/disposals", anyRole, lifecycleH.ListDisposals)
		v1.GET("/assets/:id/maintenance", anyRole, maintenanceH.ListByAsset)
		v1.GET("/assets/:id/schedules", anyRole, maintenanceH.ListSchedules)
		v1.POST("/assets", anyRole, assetsH.Create)
		v1.PUT("/assets/:id", anyRole, assetsH.Update)
		v1.DELETE("/assets/:id", managerUp, assetsH.Delete)
		v1.PATCH("/assets/:id/restore", managerUp, assetsH.Restore)

		// Lifecycle transitions — staff and up; disposal is manager+
		lc := v1.Group("/lifecycle")
		{
			lc.POST("/checkout", anyRole, lifecycleH.Checkout)
			lc.POST("/checkin", anyRole, lifecycleH.Checkin)
			lc.POST("/move", anyRole, lifecycleH.Move)
			lc.POST("/reserve", anyRole, lifecycleH.Reserve)
			lc.POST("/lease", managerUp, lifecycleH.Lease)
			lc.POST("/lease-return", managerUp, lifecycleH.LeaseReturn)
			lc.POST("/dispose", managerUp, lifecycleH.Dispose)
		}
		v1.DELETE("/reservations/:id", anyRole, lifecycleH.DeleteReservation)

		// Maintenance
		v1.POST("/maintenance", anyRole, maintenanceH.Create)
		v1.PATCH("/maintenance/:id/complete", anyRole, maintenanceH.Complete)
		v1.POST("/schedules", managerUp, maintenanceH.CreateSchedule)
		v1.DELETE("/schedules/:id", managerUp, maintenanceH.DeactivateSchedule)

		// Employees directory
		employees := v1.Group("/employees")
		{
			employees.GET("", anyRole, employeesH.List)
			employees.GET("/:id", anyRole, employeesH.Get)
			employees.POST("", managerUp, employeesH.Create)
			employees.PUT("/:id", managerUp, employeesH.Update)
			employees.DELETE("/:id", managerUp, employeesH.Deactivate)
		}

		// Directory tables — all roles read, manager+ write
		registerLookup := func(path string, h interface {
			Create(*gin.Context)
			Get(*gin.Context)
			List(*gin.Context)
			Update(*gin.Context)
			Deactivate(*gin.Context)
		}) {
			v1.GET(path, anyRole, h.List)
			v1.GET(path+"/:id", anyRole, h.Get)
			v1.POST(path, managerUp, h.Create)
			v1.PUT(path+"/:id", managerUp, h.Update)
			v1.DELETE(path+"/:id", managerUp, h.Deactivate)
		}
		registerLookup("/sites", sitesH)
		registerLookup("/locations", locationsH)
		registerLookup("/departments", departmentsH)
		registerLookup("/categories", categoriesH)

		// Reports — manager and up
		reports := v1.Group("/reports", managerUp)
		{
			reports.GET("/assets.xlsx", reportsH.ExportAssets)
			reports.GET("/disposals/:id/certificate", reportsH.DisposalCertificate)
		}

		// Users — admin only
		users := v1.Group("/users", adminOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production. The handlers carry swag
	// annotations; serving doc.json requires generating the docs package
	// (`swag init -g cmd/server/main.go -o docs`) and blank-importing it here.
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, maintenanceSvc
}
