// Command orderbookd bootstraps the order book core: loads configuration
// from the environment, starts the day-expiry scheduler, and waits for a
// shutdown signal. It carries no transport (no gRPC service registration -
// SPEC_FULL.md §1) since that wire layer is out of scope; it exists to show
// how a caller wires the core's components together.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/usecase/dayexpiry"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/internal/usecase/orderbook"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/pkg/config"
	"github.com/kavehhm/Multi-Type-Order-Book-Engine/pkg/logger"
)

func main() {
	cfg := &config.Config{}
	if err := config.Load(cfg); err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.LogLevel)))
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	book := orderbook.New(log)

	scheduler, err := dayexpiry.New(dayexpiry.Config{
		CutoffLocalTime: cfg.DayExpiryConfig.CutoffLocalTime,
		GuardMS:         cfg.DayExpiryConfig.GuardMS,
		Timezone:        cfg.DayExpiryConfig.Timezone,
	}, book, log)
	if err != nil {
		panic(err)
	}

	go scheduler.Run()

	log.Info("order book engine started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Info("received shutdown signal", logger.NewField("signal", sig.String()))
	scheduler.Stop()
	log.Info("order book engine stopped")
}
