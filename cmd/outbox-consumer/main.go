package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/scoreline/tracker/internal/infra"
)

// Topics published by the outbox poller.
var topics = []string{
	"tracker.play.processed",
	"tracker.goal.completed",
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("outbox consumer failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.KafkaEnabled {
		return fmt.Errorf("KAFKA_ENABLED must be true for the outbox consumer")
	}

	var wg sync.WaitGroup
	for _, topic := range topics {
		consumer := infra.NewKafkaConsumer(cfg.KafkaBrokers, topic, "tracker-consumer", true, logger)

		wg.Add(1)
		go func(topic string, c *infra.KafkaConsumer) {
			defer wg.Done()
			defer c.Close()

			logger.Info("consuming", "topic", topic)
			for {
				msg, err := c.ReadMessage(ctx)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return
					}
					logger.Error("read message", "topic", topic, "error", err)
					continue
				}
				logger.Info("event consumed",
					"topic", topic,
					"partition_key", string(msg.Key),
					"offset", msg.Offset,
					"payload", string(msg.Value),
				)
			}
		}(topic, consumer)
	}

	wg.Wait()
	logger.Info("outbox consumer stopped")
	return nil
}
