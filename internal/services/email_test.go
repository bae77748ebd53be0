package services

import (
	"context"
	"errors"
	"testing"

	"eventcreator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailService_SendEventPublished(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewEmailService(mailer, renderer, testLogger)

	require.NoError(t, svc.SendEventPublished(context.Background(), &domain.EventPublishedEmailData{To: "host@example.com"}))
	assert.Equal(t, "event_published", renderer.name)
	assert.Equal(t, "host@example.com", mailer.to)
	assert.Equal(t, "subject", mailer.subject)

	assert.Error(t, svc.SendEventPublished(context.Background(), nil))

	renderer.err = errors.New("bad template")
	assert.Error(t, svc.SendEventPublished(context.Background(), &domain.EventPublishedEmailData{To: "x"}))
}
