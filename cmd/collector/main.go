package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"

	"github.com/gometeo/guide/internal/broker"
	"github.com/gometeo/guide/internal/config"
	"github.com/gometeo/guide/internal/events"
	"github.com/gometeo/guide/internal/guide"
	"github.com/gometeo/guide/internal/logging"
	"github.com/gometeo/guide/internal/weather"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)
	logger.Info("Запуск Guide Collector...",
		"locations", cfg.CollectLocations,
		"interval", cfg.CollectInterval)

	// 1. Настройка Kafka Producer
	producer, err := sarama.NewSyncProducer(cfg.KafkaBrokers, broker.NewProducerConfig())
	if err != nil {
		logger.Error("Ошибка подключения к Kafka", "error", err)
		os.Exit(1)
	}
	publisher := broker.NewPublisher(producer, cfg.KafkaTopic, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Ошибка при закрытии продюсера", "error", err)
		}
	}()

	// 2. Гид, каждый снимок которого уходит в Kafka
	g := guide.New(
		weather.NewClient(cfg, logger),
		events.NewClient(cfg, logger),
		guide.Options{
			Units:           cfg.Units,
			RadiusMiles:     cfg.EventsRadiusMiles,
			DefaultLocation: cfg.DefaultLocation,
		},
		logger,
	)
	g.OnRefresh(publisher.Hook)

	// 3. Канал для Graceful Shutdown (Ctrl+C)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ticker := time.NewTicker(cfg.CollectInterval)
	defer ticker.Stop()

	logger.Info("Начинаем сбор данных...")
	collect(ctx, g, cfg.CollectLocations)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Получен сигнал завершения. Остановка...")
			return
		case <-ticker.C:
			collect(ctx, g, cfg.CollectLocations)
		}
	}
}

// collect обновляет локации по очереди; отправку делает хук
func collect(ctx context.Context, g *guide.Guide, locations []string) {
	for _, location := range locations {
		if ctx.Err() != nil {
			return
		}
		g.Refresh(ctx, location)
	}
}
