package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/learnsphere/backend/internal/models"
	"go.uber.org/zap"
)

// maxBackoff caps the delay between delivery attempts
const maxBackoff = time.Hour

// SyncQueueRepository is the interface that wraps sync queue data access
// in the local store
type SyncQueueRepository interface {
	// Enqueue appends a pending operation with an auto-generated key and
	// the current timestamp.
	Enqueue(ctx context.Context, kind models.OperationKind, collection string, payload []byte) (*models.PendingOperation, error)
	// List returns all queued operations in insertion (FIFO) order.
	List(ctx context.Context) ([]models.PendingOperation, error)
	// Remove deletes a queued operation by its key; absent keys are not an error.
	Remove(ctx context.Context, id int64) error
	// MarkAttempt records a failed delivery attempt.
	MarkAttempt(ctx context.Context, id int64, attempts int, nextAttemptAt time.Time, status models.OperationStatus) error
	// Clear empties the sync queue.
	Clear(ctx context.Context) error
}

// RemoteMutator is the interface that wraps the write side of the
// remote document store, invoked during queue replay
type RemoteMutator interface {
	CreateDocument(ctx context.Context, collection string, payload json.RawMessage) error
	UpdateDocument(ctx context.Context, collection string, payload json.RawMessage) error
	DeleteDocument(ctx context.Context, collection string, payload json.RawMessage) error
}

type syncService struct {
	repo   SyncQueueRepository
	remote RemoteMutator
	logger *zap.Logger

	// mu serializes replay passes so overlapping invocations cannot
	// double-apply an operation before either deletes it.
	mu sync.Mutex

	maxAttempts int
	baseBackoff time.Duration
}

// NewSyncService creates a new sync queue service
func NewSyncService(repo SyncQueueRepository, remote RemoteMutator, maxAttempts int, baseBackoff time.Duration, logger *zap.Logger) *syncService {
	return &syncService{
		repo:        repo,
		remote:      remote,
		maxAttempts: maxAttempts,
		baseBackoff: baseBackoff,
		logger:      logger,
	}
}

// QueueSync records a mutation that must eventually reach the remote store
func (s *syncService) QueueSync(ctx context.Context, kind models.OperationKind, collection string, payload json.RawMessage) (*models.PendingOperation, error) {
	if !models.ValidOperationKind(kind) {
		return nil, fmt.Errorf("invalid operation kind: %s, must be 'create', 'update' or 'delete'", kind)
	}
	if collection == "" {
		return nil, fmt.Errorf("collection is required")
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("payload must be valid JSON")
	}

	op, err := s.repo.Enqueue(ctx, kind, collection, payload)
	if err != nil {
		s.logger.Error("failed to queue operation", zap.Error(err), zap.String("collection", collection))
		return nil, fmt.Errorf("failed to queue operation: %w", err)
	}

	s.logger.Info("operation queued",
		zap.Int64("operation_id", op.ID),
		zap.String("kind", string(kind)),
		zap.String("collection", collection),
	)

	return op, nil
}

// ProcessSyncQueue replays pending operations against the remote store
// in FIFO enqueue order, one at a time. Each operation is removed on
// success; on failure it is rescheduled with exponential backoff and
// moved to the dead status once the retry ceiling is reached. Per-item
// failures never abort the pass. Replaying an empty queue is a no-op.
func (s *syncService) ProcessSyncQueue(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ops, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to read sync queue: %w", err)
	}

	now := time.Now().UTC()
	for _, op := range ops {
		if op.Status == models.OperationStatusDead {
			continue
		}
		if op.NextAttemptAt.After(now) {
			continue
		}

		if err := s.apply(ctx, op); err != nil {
			s.logger.Warn("failed to apply queued operation",
				zap.Error(err),
				zap.Int64("operation_id", op.ID),
				zap.String("kind", string(op.Kind)),
				zap.String("collection", op.Collection),
			)
			if err := s.recordFailure(ctx, op, now); err != nil {
				return err
			}
			continue
		}

		if err := s.repo.Remove(ctx, op.ID); err != nil {
			return fmt.Errorf("failed to remove delivered operation: %w", err)
		}
		s.logger.Info("operation delivered",
			zap.Int64("operation_id", op.ID),
			zap.String("kind", string(op.Kind)),
			zap.String("collection", op.Collection),
		)
	}

	return nil
}

// apply delivers a single operation against the remote store
func (s *syncService) apply(ctx context.Context, op models.PendingOperation) error {
	switch op.Kind {
	case models.OperationKindCreate:
		return s.remote.CreateDocument(ctx, op.Collection, op.Payload)
	case models.OperationKindUpdate:
		return s.remote.UpdateDocument(ctx, op.Collection, op.Payload)
	case models.OperationKindDelete:
		return s.remote.DeleteDocument(ctx, op.Collection, op.Payload)
	default:
		return fmt.Errorf("unknown operation kind: %s", op.Kind)
	}
}

// recordFailure bumps the attempt count, schedules the next attempt and
// dead-letters the operation once the retry ceiling is reached
func (s *syncService) recordFailure(ctx context.Context, op models.PendingOperation, now time.Time) error {
	attempts := op.Attempts + 1
	status := models.OperationStatusPending
	if attempts >= s.maxAttempts {
		status = models.OperationStatusDead
		s.logger.Warn("operation moved to dead-letter state",
			zap.Int64("operation_id", op.ID),
			zap.Int("attempts", attempts),
			zap.String("collection", op.Collection),
		)
	}

	nextAttempt := now.Add(s.backoffDelay(attempts))
	if err := s.repo.MarkAttempt(ctx, op.ID, attempts, nextAttempt, status); err != nil {
		return fmt.Errorf("failed to record delivery attempt: %w", err)
	}

	return nil
}

// backoffDelay returns the exponential backoff with jitter for the
// given attempt count
func (s *syncService) backoffDelay(attempts int) time.Duration {
	delay := s.baseBackoff
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= maxBackoff {
			delay = maxBackoff
			break
		}
	}
	jitter := time.Duration(rand.Int64N(int64(s.baseBackoff) + 1))
	return delay + jitter
}

// ListOperations returns all queued operations in insertion order,
// including dead-lettered entries
func (s *syncService) ListOperations(ctx context.Context) ([]models.PendingOperation, error) {
	ops, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list queued operations", zap.Error(err))
		return nil, fmt.Errorf("failed to list queued operations: %w", err)
	}
	return ops, nil
}
