package broker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"eventcreator/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaStream_Announce(t *testing.T) {
	w := &fakeWriter{}
	s := &KafkaStream{writer: w, logger: testLogger}
	published := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	err := s.Announce(context.Background(), &domain.Event{
		EventPayload: domain.EventPayload{EventForm: domain.EventForm{Title: "Party", DateTime: "2026-07-01T18:00"}},
		EventID:      "event_1",
		EventURL:     "https://letshang.co/events/event_1",
		PublishedAt:  published,
	})
	require.NoError(t, err)

	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("event_1"), w.msgs[0].Key)
	var got EventPublishedMessage
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, EventPublishedType, got.Type)
	assert.Equal(t, "Party", got.Title)
	assert.True(t, got.PublishedAt.Equal(published))

	require.NoError(t, s.Close())
	assert.True(t, w.closed)
}

func TestKafkaStream_WriteError(t *testing.T) {
	s := &KafkaStream{writer: &fakeWriter{err: errors.New("leader not available")}, logger: testLogger}
	err := s.Announce(context.Background(), &domain.Event{EventID: "event_1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}

func TestNoopStream(t *testing.T) {
	assert.NoError(t, NewNoopStream(testLogger).Announce(context.Background(), &domain.Event{EventID: "e"}))
}
