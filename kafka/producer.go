package kafka

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/voyagelab/travel-backend/services"
)

// Producer publishes order events, keyed by user id so one user's events stay
// ordered within a partition.
type Producer struct {
	writer *kafkago.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafkago.Writer{
		Addr:     kafkago.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafkago.LeastBytes{},
	}
	return &Producer{writer: writer, topic: topic}
}

func (p *Producer) PublishOrderCreated(ctx context.Context, event services.OrderCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(event.UserID),
		Value: data,
	})
}

func (p *Producer) Close() {
	_ = p.writer.Close()
}
