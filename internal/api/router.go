package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/easework/jobboard-api/docs"
	"github.com/easework/jobboard-api/internal/api/handler"
	"github.com/easework/jobboard-api/internal/api/middleware"
	"github.com/easework/jobboard-api/internal/core/authz"
	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/ports"
	"github.com/easework/jobboard-api/internal/infrastructure/http/handlers"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Auth         ports.AuthService
	Jobs         ports.JobService
	Industries   ports.IndustryService
	Applications ports.ApplicationService
	Users        ports.UserService
	Engine       *authz.Engine
	JWTSecret    string
	Health       []handlers.Check
	Log          zerolog.Logger
	// Registerer receives the HTTP request metrics. Defaults to the
	// prometheus default registerer served on /metrics.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "jobboard_http",
		Registerer: deps.Registerer,
	}))

	// --- Ambient endpoints ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Health...)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", middleware.Auth(deps.JWTSecret))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	// --- Jobs ---
	jobHandler := handler.NewJobHandler(deps.Jobs)
	jobs := api.Group("/jobs")
	jobPolicy := middleware.Policy(deps.Engine, domain.ResourceJob)
	jobs.GET("", jobHandler.List, jobPolicy)
	jobs.POST("", jobHandler.Create, jobPolicy)
	jobs.GET("/categorized-jobs", jobHandler.Categorized, jobPolicy)
	jobs.GET("/used-categories", jobHandler.UsedCategories, jobPolicy)
	jobs.GET("/:id", jobHandler.Get, jobPolicy)
	jobs.PUT("/:id", jobHandler.Update, jobPolicy)
	jobs.PATCH("/:id", jobHandler.Update, jobPolicy)
	jobs.DELETE("/:id", jobHandler.Delete, jobPolicy)
	jobs.GET("/:id/applicants", jobHandler.Applicants,
		middleware.PolicyAction(deps.Engine, domain.ResourceJobApplicants, authz.ActionList))

	// --- Industries (also served under their original name) ---
	industryHandler := handler.NewIndustryHandler(deps.Industries)
	industryPolicy := middleware.Policy(deps.Engine, domain.ResourceIndustry)
	for _, prefix := range []string{"/industries", "/categories"} {
		g := api.Group(prefix)
		g.GET("", industryHandler.List, industryPolicy)
		g.POST("", industryHandler.Create, industryPolicy)
		g.GET("/:id", industryHandler.Get, industryPolicy)
		g.PUT("/:id", industryHandler.Update, industryPolicy)
		g.PATCH("/:id", industryHandler.Update, industryPolicy)
		g.DELETE("/:id", industryHandler.Delete, industryPolicy)
		g.GET("/:id/jobs", industryHandler.Jobs, middleware.PolicyAction(deps.Engine, domain.ResourceJob, authz.ActionList))
	}

	// --- Applications ---
	applicationHandler := handler.NewApplicationHandler(deps.Applications)
	applications := api.Group("/applications", middleware.Policy(deps.Engine, domain.ResourceApplication))
	applications.GET("", applicationHandler.List)
	applications.POST("", applicationHandler.Create)
	applications.GET("/:id", applicationHandler.Get)
	applications.PUT("/:id", applicationHandler.Update)
	applications.PATCH("/:id", applicationHandler.Update)
	applications.DELETE("/:id", applicationHandler.Delete)

	// --- Users and profiles ---
	userHandler := handler.NewUserHandler(deps.Users)
	userPolicy := middleware.Policy(deps.Engine, domain.ResourceUser)
	api.GET("/users", userHandler.List, userPolicy)
	api.GET("/users/categorized-users", userHandler.Categorized, userPolicy)
	api.GET("/users/:id", userHandler.Get, userPolicy)

	profilePolicy := middleware.Policy(deps.Engine, domain.ResourceUserProfile)
	api.GET("/users/profile/:user", userHandler.UserProfile, profilePolicy)
	api.PUT("/users/profile/:user", userHandler.UpdateUserProfile, profilePolicy)
	api.PATCH("/users/profile/:user", userHandler.UpdateUserProfile, profilePolicy)
	api.DELETE("/users/profile/:user", userHandler.DeleteUserProfile, profilePolicy)

	employerPolicy := middleware.Policy(deps.Engine, domain.ResourceEmployerProfile)
	api.GET("/employers/profile/:user", userHandler.EmployerProfile, employerPolicy)
	api.PUT("/employers/profile/:user", userHandler.UpdateEmployerProfile, employerPolicy)
	api.PATCH("/employers/profile/:user", userHandler.UpdateEmployerProfile, employerPolicy)
	api.DELETE("/employers/profile/:user", userHandler.DeleteEmployerProfile, employerPolicy)

	return e
}

// requestLogger emits one zerolog line per request.
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
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
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
