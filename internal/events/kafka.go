package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Skotchmaster/inventory_cart/internal/models"
	"github.com/segmentio/kafka-go"
)

const writeTimeout = 5 * time.Second

// MessageWriter is the part of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer        MessageWriter
	productsTopic string
	faultsTopic   string
	now           func() time.Time
}

func NewProducer(brokers []string, productsTopic, faultsTopic string) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return NewProducerWithWriter(w, productsTopic, faultsTopic)
}

func NewProducerWithWriter(w MessageWriter, productsTopic, faultsTopic string) *Producer {
	return &Producer{
		writer:        w,
		productsTopic: productsTopic,
		faultsTopic:   faultsTopic,
		now:           time.Now,
	}
}

func (p *Producer) PublishProducts(ctx context.Context, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	ev := ProductsEvent{Kind: KindProductsUpdated, Products: products, At: p.now().UTC()}
	return p.publish(ctx, p.productsTopic, KindProductsUpdated, ev)
}

func (p *Producer) PublishFault(ctx context.Context, f Fault) error {
	if f.At.IsZero() {
		f.At = p.now().UTC()
	}
	return p.publish(ctx, p.faultsTopic, f.ProductID, f)
}

func (p *Producer) publish(ctx context.Context, topic, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	msg := kafka.Message{Topic: topic, Key: []byte(key), Value: data}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write to %s failed: %w", topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
