// Package broker передает снимки экрана через Kafka.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/gometeo/guide/internal/model"
)

// NewProducerConfig - настройки продюсера: ждем подтверждения от всех реплик
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	return config
}

// NewConsumerConfig - настройки группы: читаем с самого старого сообщения
func NewConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Consumer.Return.Errors = true
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	return config
}

// Publisher отправляет снимки в топик, ключ сообщения - локация
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

func NewPublisher(producer sarama.SyncProducer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{producer: producer, topic: topic, logger: logger}
}

func (p *Publisher) Publish(snap model.Snapshot) error {
	bytes, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("ошибка сериализации снимка: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(snap.Location),
		Value: sarama.ByteEncoder(bytes),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("не удалось отправить снимок %s: %w", snap.ID, err)
	}

	p.logger.Info("Снимок отправлен",
		"location", snap.Location,
		"id", snap.ID,
		"partition", partition,
		"offset", offset)
	return nil
}

// Hook - адаптер для guide.OnRefresh: ошибки отправки только логируются
func (p *Publisher) Hook(_ context.Context, snap model.Snapshot) {
	if err := p.Publish(snap); err != nil {
		p.logger.Error("Ошибка публикации снимка", "location", snap.Location, "error", err)
	}
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

// SnapshotSaver - то, куда консьюмер складывает снимки
type SnapshotSaver interface {
	Save(ctx context.Context, snap model.Snapshot) error
}

// ConsumerHandler пишет снимки из Kafka в хранилище
type ConsumerHandler struct {
	logger *slog.Logger
	store  SnapshotSaver
}

func NewConsumerHandler(store SnapshotSaver, logger *slog.Logger) *ConsumerHandler {
	return &ConsumerHandler{logger: logger, store: store}
}

func (h *ConsumerHandler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *ConsumerHandler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }

func (h *ConsumerHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if h.Handle(sess.Context(), msg) {
			sess.MarkMessage(msg, "")
		}
	}
	return nil
}

// Handle обрабатывает одно сообщение и сообщает, можно ли его пометить прочитанным.
// Битые сообщения помечаются (повтор не поможет), ошибки БД - нет, чтобы Kafka отдала их снова.
func (h *ConsumerHandler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) bool {
	var snap model.Snapshot
	if err := json.Unmarshal(msg.Value, &snap); err != nil {
		h.logger.Error("Битый JSON", "offset", msg.Offset, "error", err)
		return true
	}

	if err := h.store.Save(ctx, snap); err != nil {
		h.logger.Error("Ошибка записи в БД", "location", snap.Location, "error", err)
		return false
	}

	h.logger.Info("Снимок сохранен в БД",
		"location", snap.Location,
		"id", snap.ID)
	return true
}
