package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/layer2/project-tracker/internal/api/handler"
	"github.com/layer2/project-tracker/internal/api/middleware"
	"github.com/layer2/project-tracker/internal/core/domain"
	"github.com/layer2/project-tracker/internal/core/ports"
	"github.com/layer2/project-tracker/internal/core/service"
	redisinfra "github.com/layer2/project-tracker/internal/infrastructure/db/redis"
	"github.com/layer2/project-tracker/internal/infrastructure/db/sqlite"
)

// Dependencies carries everything the router needs to assemble the service
// graph. Redis is optional; a nil client disables login throttling.
type Dependencies struct {
	DB     *sql.DB
	Redis  *redis.Client
	Tokens service.TokenConfig
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Every customer/project route passes the auth guard before its handler and,
// where required, the role check.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("tracker"))

	// --- Dependencies ---
	userRepo := sqlite.NewUserRepository(deps.DB)
	customerRepo := sqlite.NewCustomerRepository(deps.DB)
	projectRepo := sqlite.NewProjectRepository(deps.DB)

	var limiter ports.LoginLimiter
	if deps.Redis != nil {
		limiter = redisinfra.NewLoginLimiter(deps.Redis)
	}

	authService := service.NewAuthService(userRepo, limiter, deps.Tokens, deps.Logger)
	customerService := service.NewCustomerService(customerRepo, deps.Logger)
	projectService := service.NewProjectService(projectRepo, customerRepo, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	customerHandler := handler.NewCustomerHandler(customerService)
	projectHandler := handler.NewProjectHandler(projectService)

	authGuard := middleware.Auth(deps.Tokens.Secret, deps.Tokens.Issuer, deps.Tokens.Audience)
	readOnly := middleware.RBAC(domain.ReadAccess...)
	writers := middleware.RBAC(domain.WriteAccess...)
	admins := middleware.RBAC(domain.AdminAccess...)

	// --- Auth routes ---
	e.POST("/api/auth/login", authHandler.Login)

	// --- Customer routes ---
	customers := e.Group("/api/Customer", authGuard)
	customers.GET("", customerHandler.List, readOnly)
	customers.GET("/:id", customerHandler.Get, readOnly)
	customers.POST("", customerHandler.Create, writers)
	customers.PUT("/:id", customerHandler.Update, writers)
	customers.DELETE("/:id", customerHandler.Delete, admins)

	// --- Project routes ---
	projects := e.Group("/api/Project", authGuard)
	projects.GET("", projectHandler.List, readOnly)
	projects.GET("/:id", projectHandler.Get, readOnly)
	projects.POST("", projectHandler.Create, writers)
	projects.PUT("/:id", projectHandler.Update, writers)
	projects.DELETE("/:id", projectHandler.Delete, admins)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
