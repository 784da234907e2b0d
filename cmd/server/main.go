package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/nshruti113/attack-map-dashboard/internal/config"
	"github.com/nshruti113/attack-map-dashboard/internal/feed"
	"github.com/nshruti113/attack-map-dashboard/internal/logging"
	"github.com/nshruti113/attack-map-dashboard/internal/metrics"
	"github.com/nshruti113/attack-map-dashboard/internal/mockdata"
	"github.com/nshruti113/attack-map-dashboard/internal/server"
	"github.com/nshruti113/attack-map-dashboard/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting attack map dashboard",
		zap.String("addr", cfg.Server.Addr),
		zap.Int64("default_seed", cfg.Generator.DefaultSeed),
	)

	m, err := metrics.New()
	if err != nil {
		logger.Fatal("failed to create metrics", zap.Error(err))
	}

	// The feed opens with the first attacks of the default dataset
	initial := mockdata.GenerateAttacks(min(cfg.Feed.Initial, cfg.Generator.InitialAttacks), cfg.Generator.DefaultSeed)
	liveFeed := feed.New(initial,
		feed.WithCapacity(cfg.Feed.Capacity),
		feed.WithInterval(cfg.Feed.MinInterval, cfg.Feed.Jitter),
		feed.WithLogger(logger.Named("feed")),
	)

	var opts []server.Option
	if cfg.Redis.Enabled {
		redisClient, err := storage.NewRedisClient(ctx, storage.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
			Channel:  cfg.Redis.Channel,
			Capacity: cfg.Feed.Capacity,
		}, logger.Named("redis"))
		if err != nil {
			// The dashboard works without the mirror
			logger.Warn("redis mirror disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			opts = append(opts, server.WithMirror(redisClient))
		}
	}

	srv := server.New(cfg, liveFeed, m, logger.Named("server"), opts...)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
