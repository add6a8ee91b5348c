package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	EventSignInSucceeded = "signin_succeeded"
	EventSignInFailed    = "signin_failed"
	EventSignInBlocked   = "signin_blocked"
	EventSignOut         = "signout"
)

// Event is the auth-trail record published for every sign-in outcome.
type Event struct {
	Type     string    `json:"type"`
	Email    string    `json:"email"`
	ActorID  string    `json:"actor_id,omitempty"`
	RemoteIP string    `json:"remote_ip,omitempty"`
	At       time.Time `json:"at"`
}

// Publisher delivers audit events to an external sink. Delivery failures
// must never fail the login path; callers log and move on.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("audit: marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(e.Email),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("audit: publish failed: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// Recorder collects events in memory, for tests.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.Events = append(r.Events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }
