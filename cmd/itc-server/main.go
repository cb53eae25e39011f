package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cquiroz/lucuma-itc/internal/bridge"
	"github.com/cquiroz/lucuma-itc/internal/cache"
	"github.com/cquiroz/lucuma-itc/internal/config"
	"github.com/cquiroz/lucuma-itc/internal/graphqlapi"
	"github.com/cquiroz/lucuma-itc/internal/metrics"
	"github.com/cquiroz/lucuma-itc/internal/orchestrator"
	"github.com/cquiroz/lucuma-itc/internal/scheduler"
	"github.com/cquiroz/lucuma-itc/internal/telemetry"
)

func main() {
	cfg := config.Get()
	logger := slog.Default()

	// =========================================================================
	// Cache backend — Redis with graceful in-memory fallback
	// =========================================================================
	var store cache.Store
	if cfg.Cache.RedisEnabled {
		redisStore, err := cache.NewRedisStore(cfg.Cache.RedisAddr, cfg.Cache.RedisPass, cfg.Cache.RedisDB, logger)
		if err != nil {
			slog.Warn("Redis connection failed, falling back to in-memory cache", "addr", cfg.Cache.RedisAddr, "error", err)
			store = cache.NewMemoryStore()
		} else {
			defer redisStore.Close()
			store = redisStore
			slog.Info("Redis cache store connected", "addr", cfg.Cache.RedisAddr)
		}
	} else {
		slog.Info("Redis disabled (ITC_CACHE_REDIS_ENABLED=false), using in-memory cache")
		store = cache.NewMemoryStore()
	}
	resultCache := cache.New(store)

	// =========================================================================
	// Legacy calculator bridge + scheduler (C1/C2)
	// =========================================================================
	var br bridge.Bridge
	var err error
	if cfg.Legacy.Command != "" {
		br, err = bridge.NewStdioBridge(cfg.Legacy.Command, time.Duration(cfg.Legacy.TimeoutSec)*time.Second, logger)
		if err != nil {
			log.Fatalf("itc-server: failed to start legacy calculator subprocess: %v", err)
		}
		slog.Info("Legacy bridge started over stdio", "command", cfg.Legacy.Command)
	} else if cfg.Legacy.GRPCAddr != "" {
		br, err = bridge.NewGRPCBridge(cfg.Legacy.GRPCAddr, logger)
		if err != nil {
			log.Fatalf("itc-server: failed to dial legacy calculator gRPC service: %v", err)
		}
		slog.Info("Legacy bridge connected over gRPC", "addr", cfg.Legacy.GRPCAddr)
	} else {
		log.Fatalf("itc-server: neither legacy.command nor legacy.grpc_addr is configured")
	}

	sched := scheduler.New(32, logger)
	defer sched.Close()
	runner := scheduler.NewBridgeRunner(br, sched)

	// =========================================================================
	// Observability
	// =========================================================================
	m := metrics.New()

	tracingProvider, err := telemetry.Setup(telemetry.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		slog.Warn("tracing setup failed, continuing without it", "error", err)
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracingProvider.Shutdown(ctx); err != nil {
				slog.Warn("tracing shutdown error", "error", err)
			}
		}()
	}

	// =========================================================================
	// Orchestrator and GraphQL surface
	// =========================================================================
	orch := orchestrator.New(runner, resultCache, cfg.Server.Version, logger, m)

	dataVersion := func() string { return getEnv("ITC_DATA_VERSION", "unversioned") }
	resolver := graphqlapi.New(orch, cfg.Server.Version, dataVersion, logger)
	schema, err := graphqlapi.NewSchema(resolver)
	if err != nil {
		log.Fatalf("itc-server: failed to build GraphQL schema: %v", err)
	}

	// =========================================================================
	// Router Setup
	// =========================================================================
	router := mux.NewRouter()

	router.Handle("/query", &relay.Handler{Schema: schema}).Methods("POST")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy", "service": "lucuma-itc"})
	}).Methods("GET")

	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ready", "service": "lucuma-itc"})
	}).Methods("GET")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.Use(corsMiddleware(cfg.Server.CORSAllowOrigins))
	router.Use(loggingMiddleware)

	// =========================================================================
	// Server Start + Graceful Shutdown
	// =========================================================================
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, shutting down gracefully")

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("lucuma-itc starting", "port", cfg.Server.Port, "graphql", "http://localhost:"+cfg.Server.Port+"/query")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed to start: %v", err)
	}

	slog.Info("server stopped")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
