package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"eventcreator/internal/domain"

	"github.com/lib/pq"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	payload, err := json.Marshal(e.EventPayload)
	if err != nil {
		return fmt.Errorf("encode event payload: %w", err)
	}
	query := `
		INSERT INTO events (id, event_url, payload, published_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = r.DB.ExecContext(ctx, query, e.EventID, e.EventURL, payload, e.PublishedAt)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == uniqueViolation {
			return fmt.Errorf("event %s: %w", e.EventID, domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, event_url, payload, published_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&e.EventID, &e.EventURL, &payload, &e.PublishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(payload, &e.EventPayload); err != nil {
		return nil, fmt.Errorf("decode event %s: %w", id, err)
	}
	return e, nil
}
