package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"eventcreator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftService_SaveDraft(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := NewDraftService(repo, time.Second).(*draftService)
	t0 := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = fixedNow(t0)

	first, err := svc.SaveDraft(context.Background(), domain.EventPayload{EventForm: domain.EventForm{Title: "Party"}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.ID, "draft_"))
	assert.Equal(t, first.ID, first.DraftID)
	assert.Equal(t, t0, first.CreatedAt)

	svc.now = fixedNow(t0.Add(time.Minute))
	second, err := svc.SaveDraft(context.Background(), domain.EventPayload{
		EventForm: domain.EventForm{Title: "Party v2"},
		DraftID:   first.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, t0, second.CreatedAt, "creation time kept")
	assert.Equal(t, t0.Add(time.Minute), second.UpdatedAt)

	got, err := svc.GetDraft(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Party v2", got.Title)
}

func TestDraftService_UnknownIDIsCreated(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := NewDraftService(repo, time.Second)

	d, err := svc.SaveDraft(context.Background(), domain.EventPayload{DraftID: "draft_from_client"})
	require.NoError(t, err)
	assert.Equal(t, "draft_from_client", d.ID)
	assert.Contains(t, repo.byID, "draft_from_client")
}

func TestDraftService_Errors(t *testing.T) {
	t.Run("lookup failure", func(t *testing.T) {
		repo := newFakeDraftRepo()
		repo.getErr = errors.New("connection reset")
		_, err := NewDraftService(repo, time.Second).SaveDraft(context.Background(), domain.EventPayload{DraftID: "draft_1"})
		require.Error(t, err)
	})
	t.Run("upsert failure", func(t *testing.T) {
		repo := newFakeDraftRepo()
		repo.upsertErr = errors.New("disk full")
		_, err := NewDraftService(repo, time.Second).SaveDraft(context.Background(), domain.EventPayload{})
		require.Error(t, err)
	})
	t.Run("missing draft", func(t *testing.T) {
		_, err := NewDraftService(newFakeDraftRepo(), 0).GetDraft(context.Background(), "draft_x")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
