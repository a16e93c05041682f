package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// Producer publishes stored events to the shop's event topic. The event
// store hands it every append, keyed by aggregate ID so a cart's or
// wishlist's events land on one partition and replay in order.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer}
}

// Publish serializes the event and writes it keyed by aggregate ID
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Errorf("[Kafka] Failed to marshal event for %s", key)
		return err
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}); err != nil {
		log.WithError(err).Errorf("[Kafka] Failed to publish event for %s", key)
		return err
	}

	log.Debugf("[Kafka] Published event for %s", key)
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
