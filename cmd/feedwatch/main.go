package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"feedwatch/internal/backoff"
	"feedwatch/internal/cache"
	cache_memory "feedwatch/internal/cache/memory"
	cache_redis "feedwatch/internal/cache/redis"
	api_client "feedwatch/internal/clients/api"
	auth_client "feedwatch/internal/clients/auth"
	"feedwatch/internal/config"
	"feedwatch/internal/delivery/tui"
	"feedwatch/internal/logger"
	"feedwatch/internal/metrics"
	prometheus_metrics "feedwatch/internal/metrics/prometheus"
	"feedwatch/internal/push"
	feed_service "feedwatch/internal/service/feed"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "feedwatch",
		Short:        "Terminal client for the social feed",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	metricsProvider := prometheus_metrics.NewPrometheusMetricsProvider()
	metricsProvider.SetServiceHealth(false)

	cacheClient, err := newCacheClient(cfg, log)
	if err != nil {
		log.Error("Failed to initialize cache", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := cacheClient.Close(); err != nil {
			log.Error("Failed to close cache", slog.String("error", err.Error()))
		}
	}()

	creds := auth_client.NewCredentialStore(cfg.Auth.CredentialsFile)
	provider := auth_client.NewHTTPProvider(cfg.Auth.ProviderURL, cfg.API.Timeout, log)

	apiClient := api_client.NewHTTPClient(cfg.API.BaseURL, cfg.API.Timeout, creds, log, metricsProvider)
	cachedClient := feed_service.NewClientCacheDecorator(
		apiClient,
		cache.NewUserCache(cacheClient, log),
		cache.NewPageCache(cacheClient, log),
		log,
		metricsProvider,
	)

	reconnect := backoff.Backoff{
		Initial:    cfg.Push.ReconnectInitialDelay,
		Max:        cfg.Push.ReconnectMaxDelay,
		Multiplier: 2.0,
	}
	newChannel := func() feed_service.PushChannel {
		return push.NewChannel(cfg.Push.URL, creds, reconnect, cfg.Push.MaxReconnectAttempts, log, metricsProvider)
	}

	retry := backoff.Default()
	if cfg.Feed.RetryInitialDelay > 0 && cfg.Feed.RetryMaxDelay > 0 && cfg.Feed.RetryMultiplier >= 1 {
		retry = backoff.Backoff{
			Initial:    cfg.Feed.RetryInitialDelay,
			Max:        cfg.Feed.RetryMaxDelay,
			Multiplier: cfg.Feed.RetryMultiplier,
		}
	}

	service := feed_service.NewFeedService(
		cachedClient,
		provider,
		creds,
		newChannel,
		retry,
		cfg.Feed.PageSize,
		log,
		metricsProvider,
	)

	var metricsServer *metrics.Server
	if cfg.Prometheus.Enabled {
		metricsServer = metrics.NewServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)
		go func() {
			if err := metricsServer.Run(); err != nil {
				log.Error("Metrics server error", slog.String("error", err.Error()))
			}
		}()
	}

	program := tea.NewProgram(tui.New(service, log), tea.WithAltScreen())
	service.OnSessionExpired(func() {
		program.Send(tui.SessionExpiredMsg())
	})

	_, runErr := program.Run()

	service.Close()

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
		}
	}

	if runErr != nil {
		return fmt.Errorf("tui error: %w", runErr)
	}
	log.Info("Client exited")
	return nil
}

func newCacheClient(cfg *config.Config, log *logger.Logger) (cache.Client, error) {
	if cfg.Redis.Enabled {
		return cache_redis.NewClient(cfg.Redis, log)
	}
	return cache_memory.NewClient(log)
}
