package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"vanrent/internal/api"
	"vanrent/internal/booking"
	"vanrent/internal/config"
	"vanrent/internal/metrics"
	"vanrent/internal/model"
	"vanrent/internal/resapi"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("VANRENT_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Reservations.BaseURL == "" {
		logger.Fatal().Msg("set reservations.base_url in config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := resapi.NewClient(cfg.Reservations.BaseURL, cfg.Reservations.APIKey)
	if cfg.Redis.Address != "" && cfg.ReservationsCacheTTL() > 0 {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		client.UseRedisCache(rdb, cfg.ReservationsCacheTTL())
		logger.Info().Str("addr", cfg.Redis.Address).Msg("reservation cache enabled")
	}

	// Initial load + hot reload of the office catalogue.
	catalogue := config.NewCatalogue(nil)
	if err := config.WatchOffices(ctx, cfg.OfficesPath, 30*time.Second, func(offices []model.Office) {
		catalogue.Replace(offices)
		logger.Info().Int("offices", len(offices)).Msg("office catalogue loaded")
	}); err != nil {
		logger.Fatal().Err(err).Msg("failed to load offices config")
	}

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		port := cfg.Monitoring.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go startMetricsServer(ctx, port, &logger)
	}

	drafts := booking.NewStore(cfg.DraftTTL())
	go draftCleanupLoop(ctx, drafts, &logger)

	server := api.NewServer(cfg, catalogue, client, drafts, &logger)
	logger.Info().Int("port", cfg.Server.Port).Msg("availability service started")
	if err := server.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("http server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Int("port", port).Msg("metrics server started")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

func draftCleanupLoop(ctx context.Context, drafts *booking.Store, logger *zerolog.Logger) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := drafts.CleanupExpired(); removed > 0 {
				logger.Debug().Int("removed", removed).Msg("expired booking drafts cleaned up")
			}
		}
	}
}
