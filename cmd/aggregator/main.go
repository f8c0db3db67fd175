package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/IBM/sarama"

	"github.com/gometeo/guide/internal/broker"
	"github.com/gometeo/guide/internal/config"
	"github.com/gometeo/guide/internal/logging"
	"github.com/gometeo/guide/internal/storage"
)

const maxRetries = 5

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)
	logger.Info("Запуск Guide Aggregator...")

	// 1. Подключение к Postgres
	var store *storage.SnapshotStorage
	var err error

	for i := 0; i < maxRetries; i++ {
		store, err = storage.New(cfg.DBDSN, logger)
		if err == nil {
			break
		}
		logger.Warn("Не удалось подключиться к БД. Повторная попытка через 3с...",
			"попытка", i+1, "всего", maxRetries, "error", err)
		time.Sleep(3 * time.Second)
	}

	if store == nil {
		logger.Error("Не удалось подключиться к БД после всех попыток. Выход.", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Успешное подключение к Postgres")

	// 2. Настройка Kafka Consumer
	consumer, err := sarama.NewConsumerGroup(cfg.KafkaBrokers, cfg.KafkaGroup, broker.NewConsumerConfig())
	if err != nil {
		logger.Error("Ошибка создания Kafka consumer", "error", err)
		os.Exit(1)
	}

	go func() {
		for err := range consumer.Errors() {
			logger.Error("Ошибка consumer group", "error", err)
		}
	}()

	// 3. Запуск цикла чтения
	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()
		handler := broker.NewConsumerHandler(store, logger)
		for {
			if err := consumer.Consume(ctx, []string{cfg.KafkaTopic}, handler); err != nil {
				logger.Error("Ошибка при чтении Kafka", "error", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 4. Graceful Shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Остановка сервиса...")
	cancel()
	wg.Wait()
	if err := consumer.Close(); err != nil {
		logger.Error("Ошибка при закрытии consumer", "error", err)
	}
}
