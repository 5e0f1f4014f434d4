package producer

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"checkout-service/internal/service"

	"github.com/segmentio/kafka-go"
)

type OrderProducer struct {
	writer *kafka.Writer
}

func NewOrderProducer(brokers []string, topic string) *OrderProducer {
	return &OrderProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// PublishOrderCreated keys messages by order id so per-order events stay
// ordered within a partition.
func (p *OrderProducer) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(e.OrderID, 10)),
		Value: value,
	})
}

func (p *OrderProducer) Close() error {
	return p.writer.Close()
}
