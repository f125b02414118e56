package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"bikeshare/internal/backend"
	"bikeshare/internal/cli"
	"bikeshare/internal/log"
	"bikeshare/internal/metrics"
	"bikeshare/internal/middleware/ratelimit"

	apphttp "bikeshare/internal/http"
)

func main() {
	cli.LoadEnvFile()

	// Level is read before validation so config errors are logged too.
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel)

	backendCfg, err := backend.FromAppConfig(cfg)
	cli.Must(logger, "Invalid backend configuration", err, log.FieldBackend, cfg.DataBackend)

	factory := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Logger)
	result, err := factory.CreateBackend(context.Background(), backendCfg)
	cli.Must(logger, "Failed to initialize data backend", err, log.FieldBackend, cfg.DataBackend)

	rl := ratelimit.DefaultConfig()
	rl.RequestsPerMinute = cfg.RateLimitPerMinute

	srv := apphttp.NewServer(":"+cfg.Port, result.Source, apphttp.Options{
		Logger:        logger,
		Metrics:       metrics.New(),
		Backend:       cfg.DataBackend,
		HeadRows:      cfg.HeadRows,
		RenderTimeout: cfg.RenderTimeout,
		RateLimit:     rl,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = cfg.RenderTimeout + 10*time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err, log.FieldOperation, log.OpShutdown)
		}
		if err := result.Close(); err != nil {
			logger.Error("Backend cleanup error", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		}
	})

	logger.Info("Starting bikeshare server",
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend,
		log.FieldOperation, log.OpStartup)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		_ = result.Close()
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
