package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/learnsphere/backend/internal/models"
	"go.uber.org/zap"
)

type syncQueueRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSyncQueueRepository creates a new instance of the sync queue repository
func NewSyncQueueRepository(db *sql.DB, logger *zap.Logger) *syncQueueRepository {
	return &syncQueueRepository{
		db:     db,
		logger: logger,
	}
}

// Enqueue appends a pending operation with an auto-generated key and
// the current timestamp
func (r *syncQueueRepository) Enqueue(ctx context.Context, kind models.OperationKind, collection string, payload []byte) (*models.PendingOperation, error) {
	now := time.Now().UTC()

	query := `
		INSERT INTO sync_queue (kind, collection, payload, enqueued_at, attempts, next_attempt_at, status)
		VALUES (?, ?, ?, ?, 0, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query, kind, collection, string(payload), now, now, models.OperationStatusPending)
	if err != nil {
		r.logger.Error("failed to enqueue operation", zap.Error(err), zap.String("collection", collection))
		return nil, fmt.Errorf("failed to enqueue operation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return &models.PendingOperation{
		ID:            id,
		Kind:          kind,
		Collection:    collection,
		Payload:       payload,
		EnqueuedAt:    now,
		Attempts:      0,
		NextAttemptAt: now,
		Status:        models.OperationStatusPending,
	}, nil
}

// List retrieves all queued operations in insertion (FIFO) order,
// including dead-lettered entries
func (r *syncQueueRepository) List(ctx context.Context) ([]models.PendingOperation, error) {
	query := `
		SELECT id, kind, collection, payload, enqueued_at, attempts, next_attempt_at, status
		FROM sync_queue
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query sync queue", zap.Error(err))
		return nil, fmt.Errorf("failed to query sync queue: %w", err)
	}
	defer rows.Close()

	var ops []models.PendingOperation
	for rows.Next() {
		var op models.PendingOperation
		var payload string
		if err := rows.Scan(
			&op.ID,
			&op.Kind,
			&op.Collection,
			&payload,
			&op.EnqueuedAt,
			&op.Attempts,
			&op.NextAttemptAt,
			&op.Status,
		); err != nil {
			r.logger.Error("failed to scan pending operation", zap.Error(err))
			return nil, fmt.Errorf("failed to scan pending operation: %w", err)
		}
		op.Payload = []byte(payload)
		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ops, nil
}

// Remove deletes a queued operation by its key. Removing an absent key
// is not an error.
func (r *syncQueueRepository) Remove(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sync_queue WHERE id = ?", id); err != nil {
		r.logger.Error("failed to remove operation", zap.Error(err), zap.Int64("operation_id", id))
		return fmt.Errorf("failed to remove operation: %w", err)
	}
	return nil
}

// MarkAttempt records a failed delivery attempt: the attempt count, the
// next eligible attempt time and the resulting status
func (r *syncQueueRepository) MarkAttempt(ctx context.Context, id int64, attempts int, nextAttemptAt time.Time, status models.OperationStatus) error {
	query := `
		UPDATE sync_queue
		SET attempts = ?, next_attempt_at = ?, status = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query, attempts, nextAttemptAt, status, id)
	if err != nil {
		r.logger.Error("failed to mark attempt", zap.Error(err), zap.Int64("operation_id", id))
		return fmt.Errorf("failed to mark attempt: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("operation not found")
	}

	return nil
}

// Clear empties the sync queue
func (r *syncQueueRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sync_queue"); err != nil {
		return fmt.Errorf("failed to clear sync queue: %w", err)
	}
	return nil
}
