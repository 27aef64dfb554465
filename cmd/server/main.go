package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/sheetsync/internal/audit"
	"github.com/JonMunkholm/sheetsync/internal/cache"
	"github.com/JonMunkholm/sheetsync/internal/config"
	"github.com/JonMunkholm/sheetsync/internal/core"
	_ "github.com/JonMunkholm/sheetsync/internal/core/collections" // Register all collections
	"github.com/JonMunkholm/sheetsync/internal/logging"
	"github.com/JonMunkholm/sheetsync/internal/sheet"
	"github.com/JonMunkholm/sheetsync/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded", "config", cfg.String())

	ctx := context.Background()

	stores, err := openStores(cfg.Sheet)
	if err != nil {
		slog.Error("failed to configure sheet clients", "error", err)
		os.Exit(1)
	}

	opts := core.Options{
		Stores:          stores,
		Guard:           core.NewMutationGuard(cfg.Mutation.MaxWait),
		NoticeDuration:  cfg.UI.ToastDuration,
		MutationTimeout: cfg.Mutation.Timeout,
	}

	// Optional snapshot cache
	if cfg.Cache.Enabled() {
		client, err := cache.Connect(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			slog.Error("failed to connect to redis", "addr", cfg.Cache.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer client.Close()
		opts.Cache = cache.NewRedis(client, cfg.Sheet.ID, cfg.Cache.TTL)
		slog.Info("snapshot cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	}

	// Optional audit trail: PostgreSQL wins over SQLite
	switch {
	case cfg.Audit.DatabaseURL != "":
		pool, err := openPool(ctx, cfg.Audit)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		auditor, err := audit.NewPostgres(ctx, pool)
		if err != nil {
			slog.Error("failed to prepare audit log", "error", err)
			os.Exit(1)
		}
		opts.Auditor = auditor

	case cfg.Audit.SQLitePath != "":
		auditor, err := audit.OpenSQLite(cfg.Audit.SQLitePath)
		if err != nil {
			slog.Error("failed to open audit database", "path", cfg.Audit.SQLitePath, "error", err)
			os.Exit(1)
		}
		defer auditor.Close()
		opts.Auditor = auditor
		slog.Info("audit log enabled", "backend", "sqlite", "path", cfg.Audit.SQLitePath)

	default:
		slog.Info("audit log disabled")
	}

	service, err := core.NewService(opts)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	// Log registered collections
	slog.Info("collections registered", "count", core.Count())
	for _, info := range service.Collections() {
		slog.Debug("collection", "key", info.Key, "group", info.Group)
	}

	// Background audit pruning
	jobCtx, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	if cfg.Audit.Enabled() {
		go service.StartAuditRetention(jobCtx, core.RetentionConfig{
			MaxAge:        cfg.Audit.Retention,
			CheckInterval: cfg.Audit.PruneInterval,
		})
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		stopJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Let running mutation plans finish before the listener closes
		guard := service.Guard()
		if active := guard.ActiveCount(); active > 0 {
			slog.Info("waiting for mutations to complete", "active", active)
			if err := guard.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("mutations did not complete in time", "error", err, "busy", guard.Status().Busy)
			} else {
				slog.Info("all mutations completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStores builds one sheet client per collection tab.
func openStores(cfg config.SheetConfig) (map[string]core.SheetStore, error) {
	base := sheet.Options{
		Endpoint:     cfg.Endpoint,
		CollectionID: cfg.ID,
		Timeout:      cfg.Timeout,
	}

	stores := make(map[string]core.SheetStore)
	for key, tab := range map[string]string{
		core.CustomersKey: cfg.CustomerSheet,
		core.ItemsKey:     cfg.ItemSheet,
		core.StudentsKey:  cfg.StudentSheet,
	} {
		client, err := sheet.New(base.WithCollection(tab))
		if err != nil {
			return nil, err
		}
		stores[key] = client
	}
	return stores, nil
}

// openPool connects to PostgreSQL and verifies the connection.
func openPool(ctx context.Context, cfg config.AuditConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.DatabaseURL); err == nil {
		slog.Info("audit log enabled", "backend", "postgres", "database", strings.TrimPrefix(u.Path, "/"))
	}
	return pool, nil
}
