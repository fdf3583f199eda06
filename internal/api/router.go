package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/payment-console/docs"
	"github.com/99minutos/payment-console/internal/api/handler"
	"github.com/99minutos/payment-console/internal/api/middleware"
	"github.com/99minutos/payment-console/internal/core/domain"
	"github.com/99minutos/payment-console/internal/core/ports"
)

// Dependencies are the console components the router exposes.
type Dependencies struct {
	Sessions      ports.SessionService
	Payments      ports.PaymentService
	State         ports.StateReader
	Credentials   ports.CredentialStore
	Storage       ports.KeyValueStore
	StorageDriver string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// HTTP metrics live in their own registry so that several routers can
	// coexist in one process; /metrics serves it next to the default one.
	registry := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "console_api",
		Registerer: registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Storage, deps.StorageDriver)
	stateHandler := handler.NewStateHandler(deps.State)
	sessionHandler := handler.NewSessionHandler(deps.Sessions, deps.State)
	paymentHandler := handler.NewPaymentHandler(deps.Payments, deps.State)
	dashboardHandler := handler.NewDashboardHandler(deps.Payments, deps.State)
	usersHandler := handler.NewUsersHandler(deps.Credentials)

	// --- Health probes and tooling (no session required) ---
	e.GET("/health", healthHandler.Liveness)           // liveness: is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness: is the user store reachable?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, registry},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	v1.GET("/state", stateHandler.Get)

	// --- Session routes ---
	session := v1.Group("/session")
	session.GET("", sessionHandler.Get)
	session.POST("/login", sessionHandler.Login)
	session.POST("/register", sessionHandler.Register)
	session.POST("/logout", sessionHandler.Logout)

	requireSession := middleware.RequireSession(deps.Sessions)

	// --- Payment routes ---
	payments := v1.Group("/payments", requireSession)
	payments.PUT("/form", paymentHandler.UpdateForm)
	payments.POST("/form/submit", paymentHandler.SubmitForm)
	payments.POST("/order", paymentHandler.CreateOrder)
	payments.GET("/status", paymentHandler.Status)

	// --- Dashboard routes ---
	dashboard := v1.Group("/dashboard", requireSession)
	dashboard.GET("", dashboardHandler.Get)
	dashboard.POST("/refresh", dashboardHandler.Refresh)

	// --- Admin routes ---
	v1.GET("/users", usersHandler.List, requireSession, middleware.RBAC(domain.RoleAdmin))

	return e
}

// requestLogger writes one zerolog entry per request.
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
