package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"plant-pal/internal/adapter"
	"plant-pal/internal/config"
	"plant-pal/internal/core"
	"plant-pal/pkg/http_client"
	"syscall"
	"time"

	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", slog.Any("err", err))
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("exiting", slog.Any("err", err))
		os.Exit(1)
	}
}

func loadCatalog(path string) (*adapter.PlantRepo, error) {
	if path == "" {
		return adapter.DefaultCatalog()
	}
	return adapter.LoadCatalogFile(path)
}

func run(cfg *config.Config, logger *slog.Logger) error {
	repo, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", slog.Int("plants", repo.Len()), slog.String("path", cfg.Catalog.Path))

	if cfg.Auth.Secret == config.DevSecret {
		logger.Warn("using the development session secret; set PLANTPAL_AUTH_SECRET")
	}
	auth, err := adapter.NewAuthenticator([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	metrics := adapter.NewMetrics()
	metrics.SetCatalogSize(repo.Len())

	svc := core.NewService(repo, adapter.NewLogSink(logger), adapter.NewHTMLStripper())
	opts := []adapter.HandlerOption{
		adapter.WithMetrics(metrics),
		adapter.WithLoginLimiter(adapter.NewLoginLimiter(rate.Limit(cfg.Auth.LoginRate), cfg.Auth.LoginBurst, 10*time.Minute)),
		adapter.WithSecureCookies(cfg.Auth.CookieSecure),
	}
	if g := cfg.Auth.Google; g.Enabled() {
		client := http_client.CreateHTTPClient(http_client.Options{UserAgent: "plant-pal"})
		opts = append(opts, adapter.WithGoogle(adapter.NewGoogleOAuth(adapter.GoogleConfig{
			ClientID:     g.ClientID,
			ClientSecret: g.ClientSecret,
			RedirectURL:  g.RedirectURL,
		}, 2, client)))
		logger.Info("google sign-in enabled")
	}
	h := adapter.NewHTTPHandler(svc, auth, logger, opts...)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      adapter.NewRouter(h, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
