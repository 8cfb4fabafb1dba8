package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const (
	EventSource  = "attendance-service"
	EventVersion = "1.0"

	TopicAttendance = "attendance.events"

	TypeAttendanceSaved   = "attendance.saved"
	TypeTeacherRegistered = "teacher.registered"
)

// Event is the envelope for every published domain event.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope with id/source/version/timestamp filled in.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// AttendanceSavedEvent is emitted after a day's attendance is persisted.
type AttendanceSavedEvent struct {
	Department   string `json:"department"`
	Course       string `json:"course,omitempty"`
	Date         string `json:"date"`
	PresentCount int    `json:"present_count"`
	AbsentCount  int    `json:"absent_count"`
	SavedBy      uint   `json:"saved_by"`
}

// TeacherRegisteredEvent is emitted after a successful registration.
type TeacherRegisteredEvent struct {
	TeacherID  uint   `json:"teacher_id"`
	Username   string `json:"username"`
	Department string `json:"department"`
}

// EventPublisher publishes domain events. Publishing is fire-and-forget from
// the caller's perspective: failures are logged, never surfaced to requests.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *Event) error
	Close() error
}

// ===== KAFKA PUBLISHER =====

type kafkaEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewKafkaEventPublisher creates a watermill kafka publisher.
func NewKafkaEventPublisher(brokers []string, logger *slog.Logger) (EventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &kafkaEventPublisher{publisher: publisher, logger: logger}, nil
}

func (p *kafkaEventPublisher) Publish(ctx context.Context, topic string, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.Type)
	msg.Metadata.Set("source", event.Source)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}

	p.logger.Debug("event published", "topic", topic, "type", event.Type, "event_id", event.ID)
	return nil
}

func (p *kafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// ===== LOG-ONLY PUBLISHER =====

// logEventPublisher is used when no brokers are configured: events are only
// written to the structured log.
type logEventPublisher struct {
	logger *slog.Logger
}

func NewLogEventPublisher(logger *slog.Logger) EventPublisher {
	return &logEventPublisher{logger: logger}
}

func (p *logEventPublisher) Publish(_ context.Context, topic string, event *Event) error {
	p.logger.Info("event (log only)", "topic", topic, "type", event.Type, "event_id", event.ID)
	return nil
}

func (p *logEventPublisher) Close() error { return nil }
