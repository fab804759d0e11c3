package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Divis007/data-mapping/internal/analyze"
	"github.com/Divis007/data-mapping/internal/config"
	apierrors "github.com/Divis007/data-mapping/internal/errors"
	"github.com/Divis007/data-mapping/internal/exporter"
	"github.com/Divis007/data-mapping/internal/infrastructure"
	"github.com/Divis007/data-mapping/internal/mapping"
	customMiddleware "github.com/Divis007/data-mapping/internal/middleware"
	"github.com/Divis007/data-mapping/internal/operations"
	"github.com/Divis007/data-mapping/internal/services"
	"github.com/Divis007/data-mapping/internal/transform"
	handlers "github.com/Divis007/data-mapping/internal/transport/http"
	ws "github.com/Divis007/data-mapping/internal/websocket"
)

// Version identifies the running build. Overridable at link time.
var Version = "1.0.0"

// Application wires configuration, services, and the HTTP server together.
type Application struct {
	Config    *config.Config
	Router    *chi.Mux
	Server    *http.Server
	Hub       *ws.Hub
	Telemetry *infrastructure.Telemetry
	Logger    *slog.Logger

	Manager           *operations.Manager
	AnalysisService   *services.AnalysisService
	MappingService    *services.MappingService
	OperationsService *services.OperationsService
	HealthService     *services.HealthService
}

// NewApplication creates a fully wired application instance.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	if err := cfg.Paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	telemetry, err := infrastructure.InitializeTelemetry(Version)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	app := &Application{
		Config:    cfg,
		Logger:    logger,
		Telemetry: telemetry,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices builds the engines, the operation pipeline, and the
// service layer in dependency order.
func (a *Application) initializeServices() error {
	hub := ws.NewHub(a.Logger)
	hub.Start()
	a.Hub = hub

	analyzer := analyze.NewAnalyzer(a.Logger, a.Config.Analyze)
	suggestEngine := mapping.NewEngine(a.Logger)
	applyEngine := transform.NewEngine(a.Logger)

	reports := exporter.NewReportWriter()
	csvWriter := exporter.NewCSVWriter(&a.Config.Paths)
	excelWriter := exporter.NewExcelWriter()

	registry := operations.NewRegistry()
	steps := []operations.Step{
		operations.NewAnalyzeStep(analyzer, reports),
		operations.NewSuggestStep(suggestEngine, reports),
		operations.NewApplyStep(applyEngine, csvWriter, excelWriter),
	}
	for _, step := range steps {
		if err := registry.Register(step); err != nil {
			return fmt.Errorf("failed to register step %s: %w", step.ID(), err)
		}
	}

	a.Manager = operations.NewManager(hub, registry, a.Logger)
	a.AnalysisService = services.NewAnalysisService(a.Config, a.Logger)
	a.MappingService = services.NewMappingService(a.Config, a.Logger)
	a.OperationsService = services.NewOperationsService(a.Manager, a.Logger)
	a.HealthService = services.NewHealthService(Version, a.Config.Paths, hub, a.Logger)

	return nil
}

// setupRouter configures the HTTP router. The WebSocket endpoint and the
// Prometheus scrape endpoint stay outside the main middleware group so
// response-writer wrapping and timeouts cannot interfere with them.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.HandleFunc("/ws", a.handleWebSocket)

	if a.Telemetry != nil && a.Telemetry.MetricsHandler != nil {
		r.Handle("/metrics", a.Telemetry.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(customMiddleware.Compress(5))
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Server.RateLimitRPS,
			a.Config.Server.RateLimitBurst,
			a.Logger,
		).Handler)

		a.setupAPIRoutes(r)
	})

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := apierrors.NewErrorHandler(a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

			healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
			r.Get("/health", healthHandler.HealthCheck)
			r.Get("/health/live", healthHandler.LivenessCheck)
		})

		// Analysis, mapping, and operation requests read whole
		// spreadsheets and get the long timeout.
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.OperationTimeout, a.Logger))

			analysisHandler := handlers.NewAnalysisHandler(a.AnalysisService, a.Logger, errorHandler)
			r.Mount("/analysis", analysisHandler.Routes())

			mappingHandler := handlers.NewMappingHandler(a.MappingService, a.Logger, errorHandler)
			r.Mount("/mappings", mappingHandler.Routes())

			operationsHandler := handlers.NewOperationsHandler(a.OperationsService, a.Logger, errorHandler)
			r.Mount("/operations", operationsHandler.Routes())
		})
	})
}

// handleWebSocket upgrades the connection and registers the client
func (a *Application) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := infrastructure.EnsureTraceID(r.Context())
	a.Logger.InfoContext(ctx, "websocket upgrade request",
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("origin", r.Header.Get("Origin")))

	ws.ServeWS(a.Hub, a.Logger, w, r)
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the HTTP server. Server errors cancel the passed context.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "server starting",
		slog.String("address", a.Server.Addr),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Hub.Shutdown()

	if a.Telemetry != nil {
		if err := a.Telemetry.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "error shutting down telemetry",
				slog.String("error", err.Error()))
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.ErrorContext(ctx, "error closing log file",
			slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
