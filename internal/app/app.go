package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/zeebo/blake3"

	"surveypulse/internal/config"
	apierrors "surveypulse/internal/errors"
	"surveypulse/internal/exporter"
	"surveypulse/internal/infrastructure"
	customMiddleware "surveypulse/internal/middleware"
	"surveypulse/internal/services"
	"surveypulse/internal/textanalysis"
	handlers "surveypulse/internal/transport/http"
)

var (
	// BuildTime is set at compile time
	BuildTime = ""
	// BuildID is a short identifier for this build
	BuildID = generateBuildID(config.AppVersion, BuildTime)
)

func generateBuildID(version, buildTime string) string {
	h := blake3.New()
	h.Write([]byte(version))
	h.Write([]byte(buildTime))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	Services      *ServiceContainer
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics

	listener net.Listener
	errCh    chan error
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Analytics *services.AnalyticsService
	Export    *services.ExportService
	Health    *services.HealthService
	Source    services.ResponseSource
}

// NewApplication loads configuration from the environment and the optional
// config file and wires the application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New wires an application from an already loaded configuration
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("build_id", BuildID))

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		errCh:         make(chan error, 1),
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices builds the service graph
func (a *Application) initializeServices() {
	engine := textanalysis.NewEngine(a.Config.Analysis, a.Logger)
	analyzer := textanalysis.NewAnalyzer(engine, a.Config.Analysis.MaxKeywords)

	source := services.NewFileSource(a.Paths, a.Logger)
	publisher := services.NewLogPublisher(a.Logger)

	analytics := services.NewAnalyticsService(source, analyzer, publisher, a.Config.Analysis.Workers, a.Logger).
		WithTelemetry(a.OTelProviders.Tracer, a.Metrics)

	exp := exporter.New(exporter.Options{
		CSVBOM:         a.Config.Export.CSVBOM,
		MaxColumnWidth: a.Config.Export.MaxColumnWidth,
	}, a.Logger)
	export := services.NewExportService(source, exp, a.Paths, a.Logger).
		WithTelemetry(a.OTelProviders.Tracer, a.Metrics)

	a.Services = &ServiceContainer{
		Analytics: analytics,
		Export:    export,
		Health:    services.NewHealthService(config.AppVersion, BuildTime, engine.Name(), a.Paths, a.Logger),
		Source:    source,
	}

	a.Logger.Info("Services initialized",
		slog.String("text_engine", engine.Name()),
		slog.Int("workers", a.Config.Analysis.Workers))
}

// setupRouter configures middleware and routes.
// Ordering: RequestID → RealIP → OTel → Logger → Recoverer → limits → Timeout
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Telemetry.Environment == "development")
	validator := customMiddleware.NewValidator()

	r.Use(customMiddleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(errorHandler))
	r.Use(customMiddleware.BodyLimit(a.Config.Server.MaxBodyBytes))

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout))

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	handlers.RegisterRoutes(r, handlers.Handlers{
		Analysis:  handlers.NewAnalysisHandler(a.Services.Analytics, validator, errorHandler, a.Logger),
		Analytics: handlers.NewAnalyticsHandler(a.Services.Analytics, validator, errorHandler, a.Logger),
		Export:    handlers.NewExportHandler(a.Services.Export, validator, errorHandler, a.Logger),
		Health:    handlers.NewHealthHandler(a.Services.Health, a.Logger),
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Addr returns the address the server is listening on, or the configured
// address before Start
func (a *Application) Addr() string {
	if a.listener != nil {
		return a.listener.Addr().String()
	}
	return a.Server.Addr
}

// BaseURL returns the http URL clients on this host can reach the server at
func (a *Application) BaseURL() string {
	host, port, err := net.SplitHostPort(a.Addr())
	if err != nil {
		return "http://" + a.Addr()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// Start binds the listener and serves in the background. A serve failure is
// reported through cancel and Err.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	a.listener = ln

	go func() {
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			a.errCh <- err
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started",
		slog.String("address", ln.Addr().String()),
		slog.String("data_dir", a.Paths.DataDir),
		slog.String("log_level", a.Config.Logging.Level))

	return nil
}

// Err returns the serve error, if the server stopped on its own
func (a *Application) Err() error {
	select {
	case err := <-a.errCh:
		return err
	default:
		return nil
	}
}

// Stop gracefully stops the application: the server drains, pending insight
// publications finish, then telemetry flushes
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	a.Services.Analytics.Wait()

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	if err := infrastructure.CloseLogFile(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close log file: %w", err))
	}

	return errors.Join(errs...)
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	<-ctx.Done()
	a.Logger.Info("Received shutdown signal")

	stopErr := a.Stop(ctx)
	if err := a.Err(); err != nil {
		return errors.Join(err, stopErr)
	}
	return stopErr
}

// startupDeadline bounds how long WaitReady polls the health endpoint
const startupDeadline = 5 * time.Second

// WaitReady polls /api/health until the server answers or ctx expires
func (a *Application) WaitReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, startupDeadline)
	defer cancel()

	url := a.BaseURL() + "/api/health"
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		if resp, err := http.DefaultClient.Do(req); err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("server did not become ready: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
