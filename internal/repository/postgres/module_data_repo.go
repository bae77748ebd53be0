package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"eventcreator/internal/domain"
)

type moduleDataRepository struct {
	DB *sql.DB
}

func NewModuleDataRepository(db *sql.DB) domain.ModuleDataRepository {
	return &moduleDataRepository{
		DB: db,
	}
}

func (r *moduleDataRepository) Save(ctx context.Context, moduleID string, data map[string]any, savedAt time.Time) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode module data: %w", err)
	}
	query := `
		INSERT INTO module_data (module_id, data, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (module_id) DO UPDATE
		SET data = EXCLUDED.data, saved_at = EXCLUDED.saved_at
	`
	_, err = r.DB.ExecContext(ctx, query, moduleID, raw, savedAt)
	return err
}
