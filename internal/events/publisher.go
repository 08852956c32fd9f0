package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mesalista/backend/internal/model"
)

// Publisher is a thin wrapper around a kafka-go Writer publishing protocol
// outcomes, keyed by customer id so one customer's events stay ordered.
type Publisher struct {
	w *kafka.Writer
}

type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration // default 5s
}

func NewPublisher(c Config) *Publisher {
	wt := c.WriteTimeout
	if wt <= 0 {
		wt = 5 * time.Second
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(c.Brokers...),
		Topic:        c.Topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: wt,
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{w: w}
}

func (p *Publisher) Publish(ctx context.Context, op model.Operation) error {
	payload, err := json.Marshal(op)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(op.CustomerID, 10)),
		Value: payload,
	})
}

func (p *Publisher) Close() error { return p.w.Close() }
