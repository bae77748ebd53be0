// Package broker announces published events to downstream consumers.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"eventcreator/internal/domain"

	"github.com/segmentio/kafka-go"
)

// EventPublishedType is the message type of a publish announcement.
const EventPublishedType = "event.published"

// EventPublishedMessage is the JSON value written for each published event.
type EventPublishedMessage struct {
	Type        string    `json:"type"`
	EventID     string    `json:"eventId"`
	Title       string    `json:"title"`
	DateTime    string    `json:"dateTime"`
	Location    string    `json:"location,omitempty"`
	EventURL    string    `json:"eventUrl"`
	PublishedAt time.Time `json:"publishedAt"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaStream writes publish announcements to a Kafka topic keyed by event id.
type KafkaStream struct {
	writer messageWriter
	logger *slog.Logger
}

var _ domain.EventStream = (*KafkaStream)(nil)

// NewKafkaStream returns a stream writing to topic on brokers.
func NewKafkaStream(brokers []string, topic string, logger *slog.Logger) *KafkaStream {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return &KafkaStream{writer: w, logger: logger}
}

func (s *KafkaStream) Announce(ctx context.Context, event *domain.Event) error {
	value, err := json.Marshal(EventPublishedMessage{
		Type:        EventPublishedType,
		EventID:     event.EventID,
		Title:       event.Title,
		DateTime:    event.DateTime,
		Location:    event.Location,
		EventURL:    event.EventURL,
		PublishedAt: event.PublishedAt,
	})
	if err != nil {
		return fmt.Errorf("encode announcement: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(EventPublishedType)},
		},
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write announcement: %w", err)
	}
	s.logger.DebugContext(ctx, "event announced", "event_id", event.EventID)
	return nil
}

// Close flushes pending messages and closes the writer.
func (s *KafkaStream) Close() error {
	return s.writer.Close()
}

type noopStream struct {
	logger *slog.Logger
}

// NewNoopStream returns a stream that only logs announcements.
func NewNoopStream(logger *slog.Logger) domain.EventStream {
	return &noopStream{logger: logger}
}

func (s *noopStream) Announce(ctx context.Context, event *domain.Event) error {
	s.logger.DebugContext(ctx, "event announcement skipped (no brokers)", "event_id", event.EventID)
	return nil
}
