package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/dnldd/trendwatch/monitor"
	"github.com/dnldd/trendwatch/service"
	"github.com/prometheus/client_golang/prometheus"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Printf("loading config: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor.RegisterMetrics(prometheus.DefaultRegisterer)

	watchCfg := service.TrendWatchConfig{
		Pairs:          cfg.Pairs,
		TelegramToken:  cfg.TelegramToken,
		TelegramChatID: cfg.TelegramChatID,
		DBEndpoint:     cfg.DBEndpoint,
		DBUser:         cfg.DBUser,
		DBPass:         cfg.DBPass,
		CacheDir:       cfg.CacheDir,
		MetricsAddr:    cfg.MetricsAddr,
		SessionLabel:   cfg.SessionLabel,
		Cancel:         cancel,
	}
	watch, err := service.NewTrendWatch(ctx, &watchCfg)
	if err != nil {
		log.Printf("creating trend watch service: %v", err)
		return
	}

	go handleTermination(ctx, cancel)
	watch.Run(ctx)
}
