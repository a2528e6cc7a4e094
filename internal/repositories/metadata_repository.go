package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/learnsphere/backend/internal/models"
	"go.uber.org/zap"
)

// catalogKey identifies the singleton catalog snapshot row
const catalogKey = "coursesCatalog"

type metadataRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMetadataRepository creates a new instance of the metadata repository
func NewMetadataRepository(db *sql.DB, logger *zap.Logger) *metadataRepository {
	return &metadataRepository{
		db:     db,
		logger: logger,
	}
}

// PutCatalog writes or overwrites the catalog snapshot with its capture
// timestamp
func (r *metadataRepository) PutCatalog(ctx context.Context, snapshot *models.CatalogSnapshot) error {
	data, err := json.Marshal(snapshot.Courses)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog snapshot: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO metadata (id, data, captured_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, catalogKey, string(data), snapshot.CapturedAt); err != nil {
		r.logger.Error("failed to put catalog snapshot", zap.Error(err))
		return fmt.Errorf("failed to put catalog snapshot: %w", err)
	}

	return nil
}

// GetCatalog retrieves the catalog snapshot. Returns (nil, nil) when no
// snapshot has been captured.
func (r *metadataRepository) GetCatalog(ctx context.Context) (*models.CatalogSnapshot, error) {
	query := `
		SELECT data, captured_at
		FROM metadata
		WHERE id = ?
	`

	var snapshot models.CatalogSnapshot
	var data string
	err := r.db.QueryRowContext(ctx, query, catalogKey).Scan(&data, &snapshot.CapturedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to query catalog snapshot", zap.Error(err))
		return nil, fmt.Errorf("failed to query catalog snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &snapshot.Courses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog snapshot: %w", err)
	}

	return &snapshot, nil
}

// DeleteCatalog removes the catalog snapshot. Deleting an absent
// snapshot is not an error.
func (r *metadataRepository) DeleteCatalog(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM metadata WHERE id = ?", catalogKey); err != nil {
		r.logger.Error("failed to delete catalog snapshot", zap.Error(err))
		return fmt.Errorf("failed to delete catalog snapshot: %w", err)
	}
	return nil
}

// Clear empties the metadata table
func (r *metadataRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM metadata"); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}
