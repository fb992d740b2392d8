package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"platwatch/internal/aggregator"
	"platwatch/internal/config"
	"platwatch/internal/market"
	"platwatch/internal/model"
	"platwatch/internal/notify"
	"platwatch/internal/watch"
)

var (
	configPath   = flag.String("config", ".", "directory containing config.yaml")
	itemFlag     = flag.String("item", "", "item to search, e.g. chroma_prime_set (overrides watch.item)")
	intervalFlag = flag.Int("interval", 0, "poll interval in minutes, 1-5 (overrides watch.interval_minutes)")
	notifyFlag   = flag.Bool("notify", false, "keep polling and notify on price changes")
	once         = flag.Bool("once", false, "search once and exit even if notifications are enabled")
	verbose      = flag.Bool("v", false, "enable debug logging")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	if *intervalFlag != 0 {
		if *intervalFlag < 1 || *intervalFlag > 5 {
			log.Fatalf("interval must be between 1 and 5 minutes, got %d", *intervalFlag)
		}
		cfg.Watch.IntervalMinutes = *intervalFlag
	}
	item := cfg.Watch.Item
	if *itemFlag != "" {
		item = *itemFlag
	}
	if item == "" {
		log.Fatal("no item given: pass -item or set watch.item in config.yaml")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client := market.NewWarframeClient(logger, cfg.Market.BaseURL, time.Duration(cfg.Market.TimeoutSeconds)*time.Second)
	agg := aggregator.New(logger, client)
	notifier := notify.NewDesktopNotifier(logger, cfg.Notify.AppName)
	presenter := newConsolePresenter(os.Stdout)
	watcher := watch.New(logger, agg, notifier, presenter, model.DefaultPlatforms(), time.Duration(cfg.Watch.IntervalMinutes)*time.Minute)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher.Search(ctx, item)

	if (*notifyFlag || cfg.Watch.Notifications) && !*once {
		notifier.Notify("Price notifications on", fmt.Sprintf("checking %s every %d minute(s)", item, cfg.Watch.IntervalMinutes))
		watcher.Run(ctx, item)
	}
}
