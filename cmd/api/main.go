//	@title			Binary Payload Gateway API
//	@version		1.0
//	@description	Moves binary files in and out of S3-compatible object storage over a text-only channel. Upload bodies and download responses are base64 text.
//
//	@host		localhost:8080
//	@BasePath	/api/s3

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/radif/gateway/internal/config"
	"github.com/radif/gateway/internal/keys"
	"github.com/radif/gateway/internal/metrics"
	appMiddleware "github.com/radif/gateway/internal/middleware"
	"github.com/radif/gateway/internal/object"
	"github.com/radif/gateway/internal/response"
	"github.com/radif/gateway/internal/storage"

	_ "github.com/radif/gateway/docs/swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := newLogger(cfg)

	ctx := context.Background()
	store, err := storage.New(ctx, cfg.Storage())
	if err != nil {
		logger.Fatalf("object storage init failed: %v", err)
	}
	if cfg.StorageBucket != "" {
		if p, ok := store.(storage.BucketProvisioner); ok {
			if err := p.EnsureBucket(ctx, cfg.StorageBucket); err != nil {
				logger.Fatalf("ensure bucket %q: %v", cfg.StorageBucket, err)
			}
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec, err := metrics.New(reg)
	if err != nil {
		logger.Fatalf("metrics init failed: %v", err)
	}

	// Wire dependencies: store → service → handler
	gatewayCfg := cfg.Gateway()
	svc := object.NewService(store, keys.New(), gatewayCfg,
		object.WithObserver(rec),
		object.WithLogger(logger.WithField("component", "object")),
	)
	urls := object.NewURLIssuer(store, gatewayCfg)
	objectHandler := object.NewHandler(svc, urls, logger.WithField("component", "http"))

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(logger))
	r.Use(appMiddleware.Metrics(rec))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Content-Type", "X-Request-ID",
			object.HeaderKeepOriginalName, object.HeaderFormFileName, object.HeaderObjectKey,
		},
		ExposedHeaders: []string{"Content-Disposition", "Content-Transfer-Encoding"},
		MaxAge:         300,
	}))
	r.NotFound(response.RouteNotFound)
	r.MethodNotAllowed(response.MethodNotAllowed)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(reg))

	// Swagger UI, available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/s3", objectHandler.Routes)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.WithFields(log.Fields{
			"port":     cfg.Port,
			"env":      cfg.AppEnv,
			"provider": cfg.StorageProvider,
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	logger.Info("shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("forced shutdown: %v", err)
	}

	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) *log.Logger {
	logger := log.New()
	logger.SetOutput(os.Stdout)
	if cfg.IsProduction() {
		logger.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
