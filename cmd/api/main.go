package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"frontdesk/internal/httpapi"
	"frontdesk/internal/refresh"
	"frontdesk/pkg/config"
	"frontdesk/pkg/db"
	"frontdesk/pkg/logger"
	"frontdesk/pkg/redisx"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "frontdesk")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		zlog.Fatal("db open", zap.Error(err))
	}
	defer conn.Close()

	if cfg.MigrationsPath != "" {
		if err := db.MigrateConfig(cfg.MigrationsPath, cfg); err != nil {
			zlog.Fatal("migrate", zap.Error(err))
		}
	}

	var events *refresh.Publisher
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg)
		if err := redisx.Ping(ctx, rdb); err != nil {
			zlog.Fatal("redis ping", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		events = &refresh.Publisher{RDB: rdb, Log: zlog}

		deskHandlers := httpapi.NewDeskHandlers(conn, zlog, events)
		listener := &refresh.Listener{
			RDB: rdb,
			Debounce: &refresh.Debouncer{
				Window: cfg.DebounceWindow,
				Fn:     deskHandlers.Recompute,
			},
			Log: zlog,
		}
		go func() {
			if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
				zlog.Error("refresh listener stopped", zap.Error(err))
			}
		}()

		serve(ctx, cfg, zlog, httpapi.Dependencies{Cfg: cfg, DB: conn, Log: zlog, Events: events, Desk: deskHandlers})
		return
	}

	serve(ctx, cfg, zlog, httpapi.Dependencies{Cfg: cfg, DB: conn, Log: zlog})
}

func serve(ctx context.Context, cfg config.Config, zlog *zap.Logger, deps httpapi.Dependencies) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("http serve", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
}
