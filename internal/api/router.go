package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/novavp/dashboard-gateway/docs"
	"github.com/novavp/dashboard-gateway/internal/api/handler"
	"github.com/novavp/dashboard-gateway/internal/api/middleware"
	"github.com/novavp/dashboard-gateway/internal/core/access"
	"github.com/novavp/dashboard-gateway/internal/core/domain"
	"github.com/novavp/dashboard-gateway/internal/core/ports"
	"github.com/novavp/dashboard-gateway/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into handlers and middleware.
// Audit and Checks may be nil.
type Deps struct {
	Sessions     ports.SessionService
	Dashboard    ports.DashboardService
	Users        ports.UserService
	Policy       *access.Policy
	Audit        ports.AccessRecorder
	Checks       map[string]handlers.Check
	CookieSecure bool
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(middleware.Metrics())
	e.Use(middleware.Session(d.Sessions))

	guard := access.NewGuard(d.Policy)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Sessions, d.Policy, d.CookieSecure, d.Log)
	e.GET(access.LoginPath, authHandler.LoginView)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me)

	// --- Views: one guarded route per path and alias ---
	viewHandler := handler.NewViewHandler(d.Policy, d.Dashboard, d.Log)
	for _, route := range d.Policy.Routes() {
		guarded := middleware.Guard(guard, route, d.Audit, d.Log)
		for _, path := range route.Paths() {
			e.GET(path, viewHandler.Render(route), guarded)
		}
	}

	// --- Data API ---
	saleHandler := handler.NewSaleHandler(d.Dashboard)
	userHandler := handler.NewUserHandler(d.Users)

	v1 := e.Group("/api/v1")
	sales := v1.Group("/sales")
	sales.GET("/me", saleHandler.Mine, middleware.Authorize(guard, domain.RoleUnknown))
	sales.PUT("/me", saleHandler.Record, middleware.Authorize(guard, domain.RoleHR))
	sales.GET("/users/:id", saleHandler.ForUser, middleware.Authorize(guard, domain.RoleManager))
	sales.GET("/aggregate", saleHandler.Aggregate, middleware.Authorize(guard, domain.RoleManager))

	users := v1.Group("/users", middleware.Authorize(guard, domain.RoleAdmin))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Anything else lands on the login page.
	e.Any("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, access.LoginPath)
	})

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
