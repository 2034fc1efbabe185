// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"country-explorer/internal/api"
	"country-explorer/internal/common/config"
	"country-explorer/internal/common/database"
	"country-explorer/internal/common/httpclient"
	"country-explorer/internal/common/logger"
	"country-explorer/internal/costofliving"
	"country-explorer/internal/countries"
	"country-explorer/internal/geocoding"
	"country-explorer/internal/images"
	"country-explorer/internal/quality"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting country explorer API...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Provider Clients ---
	countryClient := countries.NewClient(
		httpclient.NewClient(cfg.Providers.RestCountries.Timeout),
		cfg.Providers.RestCountries.BaseURL,
		redis,
		cfg.Images.FlagTTL,
		log,
	)

	worldBank := quality.NewWorldBankClient(
		httpclient.NewClient(cfg.Providers.WorldBank.Timeout),
		cfg.Providers.WorldBank.BaseURL,
		log,
	)
	qualityService := quality.NewService(worldBank, log)

	geocoder := geocoding.NewClient(
		httpclient.NewClient(cfg.Providers.Nominatim.Timeout),
		cfg.Providers.Nominatim.BaseURL,
		log,
	)

	// Photo providers are tried in declaration order
	resolver := images.NewResolver(
		images.NewRedisCache(redis),
		[]images.PhotoProvider{
			images.NewPexelsClient(
				httpclient.NewClient(cfg.Providers.Pexels.Timeout),
				cfg.Providers.Pexels.BaseURL,
				cfg.Providers.Pexels.APIKey,
			),
			images.NewUnsplashClient(
				httpclient.NewClient(cfg.Providers.Unsplash.Timeout),
				cfg.Providers.Unsplash.BaseURL,
				cfg.Providers.Unsplash.APIKey,
			),
		},
		countryClient,
		cfg.Images.PlaceholderURL,
		cfg.Images.PhotoTTL,
		log,
	)

	costService := costofliving.NewService(
		costofliving.NewRepository(pg),
		resolver,
		log,
	)

	zapLog.Info("All provider clients initialized")

	// --- Metrics Server ---
	go func() {
		// Default mux so the pprof handlers ride along
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Metrics server listening", zap.String("address", cfg.Server.MetricsAddress))
		if err := http.ListenAndServe(cfg.Server.MetricsAddress, nil); err != nil {
			zapLog.Error("Metrics server failed", zap.Error(err))
		}
	}()

	// --- API Server ---
	apiServer := api.New(
		costService,
		countryClient,
		geocoder,
		qualityService,
		resolver,
		cfg.Server,
		cfg.Pagination,
		log,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      apiServer,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLog.Info("API server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining connections...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down API server", zap.Error(err))
	}

	zapLog.Info("Country explorer stopped gracefully")
}
