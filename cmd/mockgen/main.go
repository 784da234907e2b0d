// mockgen prints seeded dashboard datasets or follows a live attack feed.
//
// Usage:
//
//	mockgen -view=timeline -seed=42
//	mockgen -view=attacks -count=10 -format=text
//	mockgen -follow                     # local simulated feed
//	mockgen -follow -redis=localhost:6379  # feed published by a running server
//
// Environment variables (alternative to flags):
//
//	MOCKGEN_REDIS   - Redis address to follow
//	MOCKGEN_CHANNEL - Redis channel carrying live attacks
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nshruti113/attack-map-dashboard/internal/config"
	"github.com/nshruti113/attack-map-dashboard/internal/feed"
	"github.com/nshruti113/attack-map-dashboard/internal/logging"
	"github.com/nshruti113/attack-map-dashboard/internal/mockdata"
	"github.com/nshruti113/attack-map-dashboard/internal/models"
	"github.com/nshruti113/attack-map-dashboard/internal/storage"
)

var (
	seedFlag     = flag.Int64("seed", mockdata.DefaultSeed, "Generator seed")
	countFlag    = flag.Int("count", 50, "Number of attacks for the attacks and all views")
	viewFlag     = flag.String("view", "all", "View to print: all, attacks, threat, countries, types, timeline, summary")
	formatFlag   = flag.String("format", "json", "Output format: json or text")
	followFlag   = flag.Bool("follow", false, "Follow the live feed instead of printing a dataset")
	redisFlag    = flag.String("redis", "", "Redis address to follow (optional, e.g., localhost:6379)")
	channelFlag  = flag.String("channel", "", "Redis channel carrying live attacks")
	capacityFlag = flag.Int("capacity", feed.DefaultCapacity, "Local feed capacity")
	logLevelFlag = flag.String("log-level", "warn", "Log level for diagnostics on stderr")
)

// getEnvOrFlag returns the flag value if set, otherwise the environment variable, otherwise the default.
func getEnvOrFlag(flagVal *string, envName, defaultVal string) string {
	if *flagVal != "" {
		return *flagVal
	}
	if env := os.Getenv(envName); env != "" {
		return env
	}
	return defaultVal
}

func main() {
	flag.Parse()

	logger, err := logging.New(config.LoggingConfig{Level: *logLevelFlag, Development: true})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	if !*followFlag {
		ds := mockdata.GenerateDataset(*seedFlag, *countFlag, time.Now())
		if err := render(os.Stdout, *viewFlag, *formatFlag, ds); err != nil {
			logger.Fatal("render failed", zap.Error(err))
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printAttack := func(a models.Attack) {
		if err := renderAttacks(os.Stdout, *formatFlag, []models.Attack{a}); err != nil {
			logger.Error("render failed", zap.Error(err))
		}
	}

	redisAddr := getEnvOrFlag(redisFlag, "MOCKGEN_REDIS", "")
	if redisAddr != "" {
		client, err := storage.NewRedisClient(ctx, storage.Options{
			Addr:    redisAddr,
			Channel: getEnvOrFlag(channelFlag, "MOCKGEN_CHANNEL", storage.DefaultFeedChannel),
		}, logger)
		if err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		defer client.Close()

		err = client.FollowAttacks(ctx, printAttack)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("follow failed", zap.Error(err))
		}
		return
	}

	liveFeed := feed.New(nil, feed.WithCapacity(*capacityFlag), feed.WithLogger(logger))
	liveFeed.Subscribe(printAttack)
	if err := liveFeed.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("feed stopped", zap.Error(err))
	}
}
