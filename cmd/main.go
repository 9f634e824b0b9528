package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	_ "time/tzdata"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/config"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/handler"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/health"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/infra/sweeprecorder"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability/logging"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability/metrics"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability/middleware"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/service/duedate"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/service/reconcile"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/service/scheduler"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/service/window"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceModule = logging.Module("maintenance-alerts")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", slog.String("error", err.Error()))
	}

	obs, err := initObservability(ctx, config.ParseLogLevel(os.Getenv("LOG_LEVEL")))
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	reconcileMetrics, err := metrics.NewReconcileMetrics()
	if err != nil {
		slog.Error("failed to initialize reconcile metrics", slog.String("error", err.Error()))
		return 1
	}

	// Sweep result recorder (InfluxDB for local, BigQuery for gcloud)
	sweepRecorder, err := sweeprecorder.NewRecorder(ctx, sweeprecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize sweep result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := sweepRecorder.Close(); err != nil {
			slog.Warn("failed to close sweep result recorder", slog.String("error", err.Error()))
		}
	}()

	st, err := openStores(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize stores",
			slog.String("event", "stores.init.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer st.Close()

	reconcileService := reconcile.NewService(
		st.alertRepo,
		st.equipmentSource,
		duedate.NewNormalizer(cfg.Reconcile.Location),
		window.NewClassifier(cfg.Reconcile.WindowDays),
		reconcileMetrics,
		sweepRecorder,
		reconcile.Options{
			Concurrency:  cfg.Reconcile.Concurrency,
			WriteTimeout: cfg.Reconcile.WriteTimeout,
		},
	)

	// Sweeps already in flight finish on shutdown; Stop waits for them.
	sweepCtx := context.WithoutCancel(ctx)
	sched := scheduler.New(sweepCtx, reconcileService)
	if err := sched.Start(cfg.Reconcile.Schedule, cfg.Reconcile.Timezone); err != nil {
		slog.Error("failed to start reconcile scheduler",
			slog.String("event", "scheduler.start.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		stopCtx := sched.Stop()
		select {
		case <-stopCtx.Done():
		case <-time.After(30 * time.Second):
			slog.Warn("timed out waiting for running sweep to finish")
		}
	}()

	if cfg.Reconcile.OnStartup {
		sched.RunAtStartup(sweepCtx)
	}

	alertHandler := handler.NewAlertHandler(st.alertRepo)
	reconcileHandler := handler.NewReconcileHandler(sched)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:     serviceModule,
		Worker:     true,
		TracerName: "github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability/middleware",
		JobNameResolver: func(c *gin.Context) string {
			return c.FullPath()
		},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(Version).
		Register("redis", st.redisPing()).
		Register("postgres", st.postgresPing())
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/alerts", alertHandler.HandleListUnread)
		v1.GET("/alerts/all", alertHandler.HandleListAll)
		v1.PUT("/alerts/read-all", alertHandler.HandleMarkAllRead)
		v1.GET("/alerts/:id", alertHandler.HandleGet)
		v1.PUT("/alerts/:id/read", alertHandler.HandleMarkRead)
		v1.POST("/reconcile", reconcileHandler.HandleReconcile)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("alert_store", string(cfg.AlertStore)),
			slog.String("equipment_source", string(cfg.EquipmentSource)),
			slog.Int("window_days", cfg.Reconcile.WindowDays),
			slog.String("schedule", cfg.Reconcile.Schedule),
			slog.String("timezone", cfg.Reconcile.Timezone),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
