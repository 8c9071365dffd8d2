package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/creatorloop/creatorloop-api/internal/config"
)

const (
	TopicSectionEvents = "section.events"
	TopicInviteEvents  = "invite.events"
)

const (
	SectionEventTypeCreated   = "section.created"
	SectionEventTypeUpdated   = "section.updated"
	SectionEventTypeDeleted   = "section.deleted"
	SectionEventTypeReordered = "section.reordered"

	InviteEventTypeRequested = "invite.requested"
)

type SectionEventPayload struct {
	EventType   string    `json:"event_type"`
	SectionID   uuid.UUID `json:"section_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	SectionType string    `json:"section_type"`
	Username    string    `json:"username,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type InviteEventPayload struct {
	EventType  string    `json:"event_type"`
	RequestID  uuid.UUID `json:"request_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is what the usecases see; KafkaProducerClient is the real one.
type Publisher interface {
	PublishSectionEvent(ctx context.Context, payload SectionEventPayload) error
	PublishInviteEvent(ctx context.Context, payload InviteEventPayload) error
}

type KafkaProducerClient struct {
	SectionEventsWriter *kafka.Writer
	InviteEventsWriter  *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	sectionWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicSectionEvents,
		Balancer: &kafka.LeastBytes{},
	}

	inviteWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicInviteEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		SectionEventsWriter: sectionWriter,
		InviteEventsWriter:  inviteWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishSectionEvent(ctx context.Context, payload SectionEventPayload) error {
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal section event: %w", err)
	}
	return c.SectionEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OwnerID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishInviteEvent(ctx context.Context, payload InviteEventPayload) error {
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal invite event: %w", err)
	}
	return c.InviteEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.Email),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.SectionEventsWriter != nil {
		c.SectionEventsWriter.Close()
	}
	if c.InviteEventsWriter != nil {
		c.InviteEventsWriter.Close()
	}
}
