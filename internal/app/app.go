package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"employee-service/internal/config"
	"employee-service/internal/db"
	"employee-service/internal/employee"
	"employee-service/internal/health"
	"employee-service/internal/logger"
	"employee-service/internal/messaging"
	"employee-service/internal/metrics"
	"employee-service/internal/middleware"
	"employee-service/internal/telemetry"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

type App struct {
	config    *config.Config
	router    chi.Router
	server    *http.Server
	logger    *slog.Logger
	database  *bun.DB
	producer  *messaging.Producer
	telemetry *telemetry.Telemetry
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses the same handler
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	app.database = db.New(cfg.Database)

	ctx := context.Background()
	if err := db.RunMigrations(ctx, app.database, (*employee.Employee)(nil)); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health endpoints
	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	// Telemetry is best-effort: the service runs without a collector
	var m *metrics.Metrics
	tel, err := telemetry.Init(ctx, ServiceName, Version, slogLogger)
	if err != nil {
		slogLogger.Warn("failed to initialize telemetry", "error", err)
		m = metrics.NewMock()
	} else {
		app.telemetry = tel
		m = tel.Metrics
	}

	// NATS producer setup (optional - events are disabled without it)
	producer, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, slogLogger)
	if err != nil {
		slogLogger.Warn("failed to initialize NATS producer", "error", err)
		producer = nil
	}
	app.producer = producer

	// Employee endpoints
	employeeRepo := employee.NewRepository(app.database)
	var events *employee.Events
	if producer != nil {
		events = employee.NewEvents(producer, slogLogger)
	}
	employeeService := employee.NewService(employeeRepo, events)
	employeeHandler := employee.NewHandler(employeeService, slogLogger, m)
	employeeHandler.RegisterRoutes(app.router)

	slogLogger.Info("application initialized successfully")

	return app
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  timeoutOrDefault(a.config.Server.ReadTimeout, 15),
		WriteTimeout: timeoutOrDefault(a.config.Server.WriteTimeout, 15),
		IdleTimeout:  timeoutOrDefault(a.config.Server.IdleTimeout, 60),
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	if a.producer != nil {
		a.producer.Close()
	}
	if a.telemetry != nil {
		if err := telemetry.Shutdown(ctx, a.telemetry.MeterProvider, a.logger); err != nil {
			a.logger.Warn("failed to shutdown telemetry", "error", err)
		}
	}
	defer db.Close(a.database)

	return a.server.Shutdown(ctx)
}

func timeoutOrDefault(seconds, fallback int) time.Duration {
	if seconds == 0 {
		seconds = fallback
	}
	return time.Duration(seconds) * time.Second
}
