package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"ms-checkout/internal/models"
)

type Producer struct {
	Brokers []string

	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		Brokers: brokers,
		writers: make(map[string]*kafka.Writer),
	}
}

// writer returns the writer for a topic, creating it on first use. One
// Producer is shared by the checkout, landing and audit paths, so the
// lazy map must be guarded.
func (p *Producer) writer(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()
	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers: p.Brokers,
		Topic:   topic,
	})
	p.writers[topic] = w
	return w
}

// Publish writes one message to a topic. Callers treat publish errors
// as non-fatal; checkout must not fail because the broker is down.
func (p *Producer) Publish(ctx context.Context, topic, key string, value []byte) error {
	return p.writer(topic).WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

// PublishTransactionCreated streams a successful checkout redirect to
// downstream consumers.
func (p *Producer) PublishTransactionCreated(ctx context.Context, topic string, result models.TransactionResult) error {
	msg, err := json.Marshal(struct {
		models.TransactionResult
		Timestamp time.Time `json:"timestamp"`
	}{result, time.Now().UTC()})
	if err != nil {
		return err
	}
	return p.Publish(ctx, topic, result.PluginTransactionID, msg)
}

// PublishOrderConfirmed streams a landing-page confirmation outcome.
func (p *Producer) PublishOrderConfirmed(ctx context.Context, topic, eventID, orderNumber string) error {
	msg, err := json.Marshal(struct {
		EventID     string    `json:"event_id"`
		OrderNumber string    `json:"order_number"`
		Timestamp   time.Time `json:"timestamp"`
	}{eventID, orderNumber, time.Now().UTC()})
	if err != nil {
		return err
	}
	return p.Publish(ctx, topic, orderNumber, msg)
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for _, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
