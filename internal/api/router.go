package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/readtrack/books-api/docs"
	"github.com/readtrack/books-api/internal/api/handler"
	"github.com/readtrack/books-api/internal/api/middleware"
	"github.com/readtrack/books-api/internal/core/ports"
)

const metricsSubsystem = "books_api"

// Dependencies is everything the HTTP layer needs from the rest of the process.
type Dependencies struct {
	AuthService ports.AuthService
	BookService ports.BookService
	Gate        ports.Authorizer
	// Health lists the dependencies pinged by /health/ready, keyed by name.
	Health map[string]handler.Pinger
	Logger zerolog.Logger
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// Prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(metricsMiddleware(deps.Registry))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Health)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireAuth := middleware.Auth(deps.Gate, deps.Logger)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh-tokens", authHandler.RefreshTokens)
	auth.GET("/current", authHandler.Current, requireAuth)
	auth.POST("/logout", authHandler.Logout, requireAuth)

	// --- Book routes (all behind the gate) ---
	bookHandler := handler.NewBookHandler(deps.BookService)
	books := e.Group("/books", requireAuth)
	books.GET("", bookHandler.List)
	books.GET("/book", bookHandler.Get)
	books.POST("/create", bookHandler.Create)
	books.DELETE("/delete", bookHandler.Delete)
	books.PATCH("/update-status", bookHandler.UpdateStatus)
	books.PATCH("/update-resume", bookHandler.UpdateResume)

	return e
}

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	if reg == nil {
		return echoprometheus.NewMiddleware(metricsSubsystem)
	}
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: reg,
	})
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
