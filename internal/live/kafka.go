package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes notifications to a topic keyed by match id, so one match stays on one partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *slog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	logger.Info("kafka publisher initialized", "brokers", brokers, "topic", topic)
	return &KafkaPublisher{writer: w, topic: topic, logger: logger}
}

func (p *KafkaPublisher) Notify(ctx context.Context, n match.Notification) error {
	value, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(strconv.FormatUint(uint64(n.MatchID), 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(n.Event)},
			{Key: "routing_key", Value: []byte(routingKey(n))},
		},
		Time: n.OccurredAt,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
