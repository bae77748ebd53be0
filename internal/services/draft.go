package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventcreator/internal/domain"

	"github.com/google/uuid"
)

// DefaultTimeout bounds repository calls when no timeout is configured.
const DefaultTimeout = 10 * time.Second

func orDefaultTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}

type draftService struct {
	repo           domain.DraftRepository
	now            func() time.Time
	contextTimeout time.Duration
}

// NewDraftService returns a DraftService backed by repo.
func NewDraftService(repo domain.DraftRepository, timeout time.Duration) domain.DraftService {
	return &draftService{repo: repo, now: time.Now, contextTimeout: orDefaultTimeout(timeout)}
}

// SaveDraft creates a draft, or overwrites the one named by payload.DraftID
// keeping its creation time.
func (s *draftService) SaveDraft(ctx context.Context, payload domain.EventPayload) (*domain.Draft, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now().UTC()
	created := now
	id := payload.DraftID
	if id == "" {
		id = "draft_" + uuid.NewString()
	} else {
		existing, err := s.repo.GetByID(ctx, id)
		switch {
		case err == nil:
			created = existing.CreatedAt
		case errors.Is(err, domain.ErrNotFound):
		default:
			return nil, fmt.Errorf("load draft %s: %w", id, err)
		}
	}

	payload.DraftID = id
	d := &domain.Draft{EventPayload: payload, ID: id, CreatedAt: created, UpdatedAt: now}
	if err := s.repo.Upsert(ctx, d); err != nil {
		return nil, fmt.Errorf("save draft %s: %w", id, err)
	}
	return d, nil
}

func (s *draftService) GetDraft(ctx context.Context, draftID string) (*domain.Draft, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.repo.GetByID(ctx, draftID)
}
