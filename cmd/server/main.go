package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"policyhub/internal/audit"
	httpapi "policyhub/internal/http"
	jwttoken "policyhub/internal/jwt_token"
	"policyhub/internal/platform/config"
	"policyhub/internal/platform/httpserver"
	"policyhub/internal/platform/logger"
	platformredis "policyhub/internal/platform/redis"
	"policyhub/internal/policy/handler"
	"policyhub/internal/policy/metrics"
	"policyhub/internal/policy/service"
	"policyhub/internal/policy/store"
)

const (
	jwtIssuer   = "policyhub"
	jwtAudience = "policyhub"

	auditInboxSize = 256
)

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	snapshots, cleanup, err := buildStore(cfg, log)
	if err != nil {
		log.Error("store initialization failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, jwtIssuer, jwtAudience)
	validator := jwttoken.NewJWTServiceAdapter(jwtService)

	auditInbox := make(chan audit.Event, auditInboxSize)
	auditWorker := audit.NewWorker(audit.NewInMemoryStore(), auditInbox)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := auditWorker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	svc := service.New(snapshots, snapshots,
		service.WithLogger(log),
		service.WithAuditPublisher(audit.NewQueuedPublisher(auditInbox)),
		service.WithMetrics(metrics.New()),
	)

	h := handler.New(svc, log)
	router := httpapi.NewRouter(h, validator, log)
	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting policyhub", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	// Stop the audit worker only after the server has drained, so in-flight
	// requests can still emit.
	stopWorker()
	<-workerDone
	log.Info("policyhub stopped")
}

// buildStore selects the snapshot backend: Postgres when DATABASE_URL is
// set, in-memory otherwise. A configured Redis layers a read-through cache
// on top.
func buildStore(cfg config.Server, log *slog.Logger) (store.Store, func(), error) {
	cleanup := func() {}

	var backing store.Store
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, cleanup, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, cleanup, err
		}
		backing = store.NewPostgres(db)
		cleanup = func() { db.Close() }
		log.Info("using postgres snapshot store")
	} else {
		backing = store.NewInMemory()
		log.Info("using in-memory snapshot store")
	}

	cache, err := platformredis.New(cfg.Redis)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	if cache == nil {
		return backing, cleanup, nil
	}

	dbCleanup := cleanup
	cleanup = func() {
		cache.Close()
		dbCleanup()
	}
	log.Info("snapshot cache enabled", "ttl", cfg.SnapshotTTL)
	return store.NewCached(backing, cache.Client, cfg.SnapshotTTL, log), cleanup, nil
}
