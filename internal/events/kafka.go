package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
)

// KafkaHandler publishes events to a Kafka topic, keyed by task ID so that
// all events of one task land on the same partition in order.
type KafkaHandler struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewProducerConfig returns the sarama configuration used for task events.
func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "justic-api"
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true
	return cfg
}

// NewKafkaProducer connects a synchronous producer to brokers.
func NewKafkaProducer(brokers []string) (sarama.SyncProducer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}
	p, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return p, nil
}

// NewKafkaHandler creates a KafkaHandler publishing to topic.
func NewKafkaHandler(producer sarama.SyncProducer, topic string, logger *slog.Logger) (*KafkaHandler, error) {
	if producer == nil {
		return nil, errors.New("kafka producer cannot be nil")
	}
	if topic == "" {
		return nil, errors.New("kafka topic cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaHandler{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_event_handler", "topic", topic),
	}, nil
}

// HandleEvent implements EventHandler.
func (h *KafkaHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: h.topic,
		Key:   sarama.StringEncoder(event.TaskID),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
	}

	partition, offset, err := h.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.ID, err)
	}

	h.logger.Debug("event published",
		"event_id", event.ID,
		"event_type", event.Type,
		"partition", partition,
		"offset", offset)
	return nil
}

// Close closes the underlying producer.
func (h *KafkaHandler) Close() error {
	return h.producer.Close()
}
