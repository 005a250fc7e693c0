package router

import (
	"time"

	"routevendor/internal/config"
	"routevendor/internal/handler"
	"routevendor/internal/infra"
	"routevendor/internal/middleware"
	"routevendor/internal/repository"
	"routevendor/internal/service"
	"routevendor/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()...))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(600, time.Minute)) // 600 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	locker := infra.NewRedisLocker(rdb, cfg.LockTTL())
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	vendorRepo := repository.NewVendorRepository(db)
	repos := service.ShiftRepos{
		WorkDays:     repository.NewWorkDayRepository(db),
		DayOps:       repository.NewDayOperationRepository(db),
		Stock:        repository.NewProductInventoryRepository(db),
		Inventory:    repository.NewInventoryOperationRepository(db),
		Transactions: repository.NewRouteTransactionRepository(db),
	}

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(vendorRepo, cfg)
	workDaySvc := service.NewWorkDayService(repos, locker, dispatcher)
	dayOpSvc := service.NewDayOperationService(repos, locker)
	inventorySvc := service.NewInventoryService(repos, locker)
	transactionSvc := service.NewRouteTransactionService(repos, locker)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	jornadaH := handler.NewJornadaHandler(workDaySvc)
	operacionesH := handler.NewOperacionesHandler(dayOpSvc)
	inventarioH := handler.NewInventarioHandler(inventorySvc)
	transaccionesH := handler.NewTransaccionesHandler(transactionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes. Every shift endpoint is open to vendedor and supervisor.
	anyRole := middleware.RequireRole(middleware.RoleVendedor, middleware.RoleSupervisor)
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		jornada := v1.Group("/jornada", anyRole)
		{
			jornada.GET("", jornadaH.Actual)
			jornada.POST("/iniciar", jornadaH.Iniciar)
			jornada.POST("/finalizar", jornadaH.Finalizar)
		}
		v1.DELETE("/jornada", middleware.RequireRole(middleware.RoleSupervisor), jornadaH.Reiniciar)

		ops := v1.Group("/operaciones", anyRole)
		{
			ops.GET("", operacionesH.Listar)
			ops.POST("/fuera-de-ruta", operacionesH.FueraDeRuta)
			ops.POST("/nuevo-cliente", operacionesH.NuevoCliente)
		}

		inv := v1.Group("/inventario", anyRole)
		{
			inv.GET("/operaciones", inventarioH.Listar)
			inv.POST("/operaciones", inventarioH.Registrar)
			inv.GET("/operaciones/:id", inventarioH.Obtener)
			inv.GET("/operaciones/:id/cancelable", inventarioH.Cancelable)
			inv.POST("/operaciones/:id/cancelar", inventarioH.Cancelar)
			inv.GET("/siguiente-tipo", inventarioH.SiguienteTipo)
			inv.GET("/stock", inventarioH.Stock)
		}

		tx := v1.Group("/transacciones", anyRole)
		{
			tx.POST("", transaccionesH.Registrar)
			tx.GET("", transaccionesH.Listar)
			tx.GET("/:id", transaccionesH.Obtener)
			tx.POST("/:id/cancelar", transaccionesH.Cancelar)
		}
	}

	// Swagger UI, only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
