package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"eventcreator/internal/domain"
)

type draftRepository struct {
	DB *sql.DB
}

func NewDraftRepository(db *sql.DB) domain.DraftRepository {
	return &draftRepository{
		DB: db,
	}
}

func (r *draftRepository) Upsert(ctx context.Context, d *domain.Draft) error {
	payload, err := json.Marshal(d.EventPayload)
	if err != nil {
		return fmt.Errorf("encode draft payload: %w", err)
	}
	query := `
		INSERT INTO drafts (id, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`
	_, err = r.DB.ExecContext(ctx, query, d.ID, payload, d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *draftRepository) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	query := `
		SELECT id, payload, created_at, updated_at
		FROM drafts
		WHERE id = $1
	`
	d := &domain.Draft{}
	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&d.ID, &payload, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(payload, &d.EventPayload); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", id, err)
	}
	d.DraftID = d.ID
	return d, nil
}

func (r *draftRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM drafts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
