package kafka

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"archatara/internal/domain/reservation"
)

// Producer wraps a sarama sync producer with the delivery settings used
// for reservation lifecycle events.
type Producer struct {
	sync sarama.SyncProducer
}

func NewProducer(brokers []string, cfg *sarama.Config) (*Producer, error) {
	sp, err := sarama.NewSyncProducer(brokers, producerConfig(cfg))
	if err != nil {
		return nil, err
	}
	return &Producer{sync: sp}, nil
}

// producerConfig applies the delivery settings for lifecycle events.
// The idempotent producer requires exactly one in-flight request per
// connection; sarama rejects the config otherwise.
func producerConfig(cfg *sarama.Config) *sarama.Config {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1
	return cfg
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}
	_, _, err := p.sync.SendMessage(msg)
	return err
}

func (p *Producer) Close() error {
	if p.sync == nil {
		return nil
	}
	return p.sync.Close()
}

// EventPublisher serializes reservation lifecycle events onto a single
// topic, keyed by reservation id.
type EventPublisher struct {
	Producer *Producer
	Topic    string
}

func (p *EventPublisher) Publish(ctx context.Context, event reservation.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Producer.Publish(ctx, p.Topic, event.ReservationID, payload)
}
