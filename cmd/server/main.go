package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-hub/internal/auth"
	"chat-hub/internal/config"
	"chat-hub/internal/database"
	"chat-hub/internal/handlers"
	"chat-hub/internal/hub"
	"chat-hub/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	envFile  string
	addr     string
	inMemory bool
	migrate  bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "chat-hub",
		Short: "Real-time chat hub: presence, conversations, reactions and call signaling",
		Example: `  # Serve with Postgres from DATABASE_URL
  chat-hub --env-file .env

  # Serve without a database, admitting everyone to every conversation
  chat-hub --in-memory --addr :9000`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "Path to an env file loaded before the environment")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address, overrides PORT")
	cmd.Flags().BoolVar(&opts.inMemory, "in-memory", false, "Use the in-memory store instead of Postgres; it admits everyone to every conversation and only knows messages relayed since startup")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "Apply the Postgres schema before serving")

	return cmd
}

func runServe(ctx context.Context, opts serveOptions) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Port = opts.addr
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logger.SetGlobal(log)

	store, err := openStore(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := hub.NewHub(cfg.Hub, hub.Options{
		Store:        store,
		StoreTimeout: cfg.Database.StoreTimeout,
		Metrics:      hub.NewMetrics(reg),
		Logger:       log.Logger,
	})
	go h.Run(context.Background())

	authService := auth.NewService(cfg.JWT)
	if !cfg.AuthEnabled() {
		logger.Warn("JWT_SECRET is not set; clients assert their own identity")
	}

	routes := handlers.Routes(
		handlers.NewWebSocketHandlers(authService, h, cfg.Server.AllowedOrigins, log.Logger),
		handlers.NewHealthHandlers(h),
		reg,
		cfg.Server.AllowedOrigins,
	)

	server := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           routes,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server started", "addr", cfg.Server.Port, "websocket", "/ws")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Hub.ShutdownTimeout)
	defer cancel()

	// The hub goes first so clients hear why before their sockets close.
	if err := h.Shutdown(shutdownCtx, ""); err != nil && !errors.Is(err, hub.ErrDraining) {
		log.Warn("hub shutdown incomplete", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown incomplete", "error", err)
	}
	log.Info("server stopped")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, opts serveOptions) (database.Store, error) {
	if opts.inMemory {
		logger.Info("using in-memory store")
		return database.NewMemoryStore(true), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(connectCtx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if opts.migrate {
		if err := db.Migrate(connectCtx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("database schema applied")
	}
	return db, nil
}
