package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/billed/internal/api"
	"github.com/mmynk/billed/internal/auth"
	"github.com/mmynk/billed/internal/client"
	"github.com/mmynk/billed/internal/config"
	"github.com/mmynk/billed/internal/metrics"
	"github.com/mmynk/billed/internal/middleware"
	"github.com/mmynk/billed/internal/receipts"
	"github.com/mmynk/billed/internal/service"
	"github.com/mmynk/billed/internal/session"
	"github.com/mmynk/billed/internal/storage"
	"github.com/mmynk/billed/internal/storage/postgres"
	"github.com/mmynk/billed/internal/storage/sqlite"
	"github.com/mmynk/billed/internal/web"
	"github.com/mmynk/billed/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	logging.Setup()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if cfg.JWTSecret == config.DevSecret {
		slog.Warn("JWT_SECRET not set, using the development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	files, err := receipts.NewFileStore(cfg.ReceiptsDir)
	if err != nil {
		return err
	}
	slog.Info("Receipts directory ready", "path", cfg.ReceiptsDir)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)
	if err := seedAccount(ctx, authenticator, cfg); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	mux := http.NewServeMux()

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)
	billPath, billHandler := api.NewBillServiceHandler(
		service.NewBillService(store, files, cfg.PublicURL, m),
		interceptors,
	)
	mux.Handle(billPath, web.CORS(m.Instrument("api", billHandler)))

	apiClient := &http.Client{Timeout: 30 * time.Second}
	web.NewServer(web.Options{
		Cookies:       session.NewCookieCodec(cfg.JWTSecret, cfg.TokenTTL, cfg.SecureCookies()),
		Authenticator: authenticator,
		Tokens:        jwtManager,
		Receipts:      files,
		Stores: func(token string) client.Store {
			return client.New(apiClient, cfg.APIURL, token)
		},
		Metrics: m,
	}).Register(mux)

	mux.Handle("GET /metrics", metrics.Handler(reg))

	// h2c serves Connect's HTTP/2 clients without TLS.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(web.LogRequests(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server starting", "address", server.Addr, "url", cfg.PublicURL)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.DatabaseURL != "" {
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres storage: %w", err)
		}
		slog.Info("Storage initialized", "driver", "postgres")
		return store, nil
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sqlite storage: %w", err)
	}
	slog.Info("Storage initialized", "driver", "sqlite", "database", cfg.DBPath)
	return store, nil
}

func seedAccount(ctx context.Context, authenticator *auth.PasswordAuthenticator, cfg config.Config) error {
	if cfg.SeedEmail == "" {
		return nil
	}
	_, err := authenticator.Register(ctx, cfg.SeedEmail, cfg.SeedType, cfg.SeedPassword)
	switch {
	case errors.Is(err, auth.ErrEmailExists):
		slog.Debug("Seed account already exists", "email", cfg.SeedEmail)
		return nil
	case err != nil:
		return fmt.Errorf("failed to seed account: %w", err)
	}
	slog.Info("Seed account created", "email", cfg.SeedEmail, "type", cfg.SeedType)
	return nil
}
