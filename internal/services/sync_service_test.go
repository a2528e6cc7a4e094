package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/learnsphere/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockSyncQueueRepo is an in-memory mock of SyncQueueRepository that
// preserves insertion order
type mockSyncQueueRepo struct {
	mu      sync.Mutex
	ops     []models.PendingOperation
	nextID  int64
	cleared bool
	listErr error
}

func newMockSyncQueueRepo() *mockSyncQueueRepo {
	return &mockSyncQueueRepo{nextID: 1}
}

func (m *mockSyncQueueRepo) Enqueue(ctx context.Context, kind models.OperationKind, collection string, payload []byte) (*models.PendingOperation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	op := models.PendingOperation{
		ID:            m.nextID,
		Kind:          kind,
		Collection:    collection,
		Payload:       json.RawMessage(payload),
		EnqueuedAt:    time.Now().UTC(),
		NextAttemptAt: time.Now().UTC(),
		Status:        models.OperationStatusPending,
	}
	m.nextID++
	m.ops = append(m.ops, op)
	return &op, nil
}

func (m *mockSyncQueueRepo) List(ctx context.Context) ([]models.PendingOperation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.PendingOperation, len(m.ops))
	copy(out, m.ops)
	return out, nil
}

func (m *mockSyncQueueRepo) Remove(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, op := range m.ops {
		if op.ID == id {
			m.ops = append(m.ops[:i], m.ops[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockSyncQueueRepo) MarkAttempt(ctx context.Context, id int64, attempts int, nextAttemptAt time.Time, status models.OperationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.ops {
		if m.ops[i].ID == id {
			m.ops[i].Attempts = attempts
			m.ops[i].NextAttemptAt = nextAttemptAt
			m.ops[i].Status = status
			return nil
		}
	}
	return errors.New("operation not found")
}

func (m *mockSyncQueueRepo) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cleared = true
	m.ops = nil
	return nil
}

// appliedOp records one delivery seen by the mock remote store
type appliedOp struct {
	kind       models.OperationKind
	collection string
}

// mockRemoteMutator is a mock of RemoteMutator recording deliveries in order
type mockRemoteMutator struct {
	mu      sync.Mutex
	applied []appliedOp
	err     error
	delay   time.Duration
}

func (m *mockRemoteMutator) record(ctx context.Context, kind models.OperationKind, collection string) error {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.applied = append(m.applied, appliedOp{kind: kind, collection: collection})
	return nil
}

func (m *mockRemoteMutator) CreateDocument(ctx context.Context, collection string, payload json.RawMessage) error {
	return m.record(ctx, models.OperationKindCreate, collection)
}

func (m *mockRemoteMutator) UpdateDocument(ctx context.Context, collection string, payload json.RawMessage) error {
	return m.record(ctx, models.OperationKindUpdate, collection)
}

func (m *mockRemoteMutator) DeleteDocument(ctx context.Context, collection string, payload json.RawMessage) error {
	return m.record(ctx, models.OperationKindDelete, collection)
}

func setupSyncService(t *testing.T) (*syncService, *mockSyncQueueRepo, *mockRemoteMutator) {
	t.Helper()
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	repo := newMockSyncQueueRepo()
	remote := &mockRemoteMutator{}
	svc := NewSyncService(repo, remote, 5, 30*time.Second, logger)
	return svc, repo, remote
}

func TestSyncService_QueueSync(t *testing.T) {
	tests := []struct {
		name          string
		kind          models.OperationKind
		collection    string
		payload       string
		expectedError bool
	}{
		{
			name:       "valid create",
			kind:       models.OperationKindCreate,
			collection: "badges",
			payload:    `{"id":"b1"}`,
		},
		{
			name:       "valid update",
			kind:       models.OperationKindUpdate,
			collection: "users",
			payload:    `{"id":"u1","points":50}`,
		},
		{
			name:          "invalid kind",
			kind:          models.OperationKind("upsert"),
			collection:    "users",
			payload:       `{"id":"u1"}`,
			expectedError: true,
		},
		{
			name:          "missing collection",
			kind:          models.OperationKindDelete,
			collection:    "",
			payload:       `{"id":"u1"}`,
			expectedError: true,
		},
		{
			name:          "malformed payload",
			kind:          models.OperationKindCreate,
			collection:    "users",
			payload:       `{"id":`,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := setupSyncService(t)

			op, err := svc.QueueSync(context.Background(), tt.kind, tt.collection, json.RawMessage(tt.payload))

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, op)
				assert.Empty(t, repo.ops)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, op)
			assert.Equal(t, tt.kind, op.Kind)
			assert.Equal(t, models.OperationStatusPending, op.Status)
			assert.Zero(t, op.Attempts)
			assert.Len(t, repo.ops, 1)
		})
	}
}

func TestSyncService_ProcessSyncQueue_EmptyQueue(t *testing.T) {
	svc, _, remote := setupSyncService(t)

	err := svc.ProcessSyncQueue(context.Background())

	require.NoError(t, err)
	assert.Empty(t, remote.applied)
}

func TestSyncService_ProcessSyncQueue_FIFO(t *testing.T) {
	svc, repo, remote := setupSyncService(t)

	ctx := context.Background()
	_, err := svc.QueueSync(ctx, models.OperationKindUpdate, "users", json.RawMessage(`{"id":"u1","points":50}`))
	require.NoError(t, err)
	_, err = svc.QueueSync(ctx, models.OperationKindCreate, "badges", json.RawMessage(`{"id":"b1"}`))
	require.NoError(t, err)

	err = svc.ProcessSyncQueue(ctx)

	require.NoError(t, err)
	require.Len(t, remote.applied, 2)
	assert.Equal(t, appliedOp{kind: models.OperationKindUpdate, collection: "users"}, remote.applied[0])
	assert.Equal(t, appliedOp{kind: models.OperationKindCreate, collection: "badges"}, remote.applied[1])
	assert.Empty(t, repo.ops)
}

func TestSyncService_ProcessSyncQueue_FailureStaysQueued(t *testing.T) {
	svc, repo, remote := setupSyncService(t)

	ctx := context.Background()
	_, err := svc.QueueSync(ctx, models.OperationKindUpdate, "users", json.RawMessage(`{"id":"u1"}`))
	require.NoError(t, err)
	remote.err = errors.New("connection refused")

	err = svc.ProcessSyncQueue(ctx)

	require.NoError(t, err)
	require.Len(t, repo.ops, 1)
	assert.Equal(t, 1, repo.ops[0].Attempts)
	assert.Equal(t, models.OperationStatusPending, repo.ops[0].Status)
	assert.True(t, repo.ops[0].NextAttemptAt.After(time.Now().UTC()))

	// The entry survives and delivers once the remote store recovers and
	// its backoff window has passed
	remote.err = nil
	repo.ops[0].NextAttemptAt = time.Now().UTC().Add(-time.Second)

	err = svc.ProcessSyncQueue(ctx)

	require.NoError(t, err)
	assert.Len(t, remote.applied, 1)
	assert.Empty(t, repo.ops)
}

func TestSyncService_ProcessSyncQueue_DeadLetterAtCeiling(t *testing.T) {
	svc, repo, remote := setupSyncService(t)

	ctx := context.Background()
	_, err := svc.QueueSync(ctx, models.OperationKindDelete, "notes", json.RawMessage(`{"id":"n1"}`))
	require.NoError(t, err)
	remote.err = errors.New("connection refused")

	for i := 0; i < 5; i++ {
		repo.ops[0].NextAttemptAt = time.Now().UTC().Add(-time.Second)
		require.NoError(t, svc.ProcessSyncQueue(ctx))
	}

	require.Len(t, repo.ops, 1)
	assert.Equal(t, 5, repo.ops[0].Attempts)
	assert.Equal(t, models.OperationStatusDead, repo.ops[0].Status)

	// Dead entries are never retried, even after the remote store recovers
	remote.err = nil
	repo.ops[0].NextAttemptAt = time.Now().UTC().Add(-time.Second)

	require.NoError(t, svc.ProcessSyncQueue(ctx))
	assert.Empty(t, remote.applied)
	assert.Len(t, repo.ops, 1)
}

func TestSyncService_ProcessSyncQueue_BackoffWindowRespected(t *testing.T) {
	svc, repo, remote := setupSyncService(t)

	ctx := context.Background()
	_, err := svc.QueueSync(ctx, models.OperationKindCreate, "badges", json.RawMessage(`{"id":"b1"}`))
	require.NoError(t, err)
	repo.ops[0].NextAttemptAt = time.Now().UTC().Add(time.Hour)

	err = svc.ProcessSyncQueue(ctx)

	require.NoError(t, err)
	assert.Empty(t, remote.applied)
	assert.Len(t, repo.ops, 1)
}

func TestSyncService_ProcessSyncQueue_ListError(t *testing.T) {
	svc, repo, _ := setupSyncService(t)

	repo.listErr = errors.New("database is locked")

	err := svc.ProcessSyncQueue(context.Background())

	assert.Error(t, err)
}

func TestSyncService_ProcessSyncQueue_ConcurrentReplayAppliesOnce(t *testing.T) {
	svc, repo, remote := setupSyncService(t)

	ctx := context.Background()
	_, err := svc.QueueSync(ctx, models.OperationKindUpdate, "users", json.RawMessage(`{"id":"u1","points":50}`))
	require.NoError(t, err)
	remote.delay = 20 * time.Millisecond

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.ProcessSyncQueue(ctx))
		}()
	}
	wg.Wait()

	// Overlapping replay passes are serialized, so the single entry is
	// delivered exactly once
	assert.Len(t, remote.applied, 1)
	assert.Empty(t, repo.ops)
}

func TestSyncService_BackoffDelay(t *testing.T) {
	svc, _, _ := setupSyncService(t)

	for attempts, expected := range map[int]time.Duration{
		1: 30 * time.Second,
		2: 60 * time.Second,
		3: 120 * time.Second,
		9: maxBackoff,
	} {
		delay := svc.backoffDelay(attempts)
		assert.GreaterOrEqual(t, delay, expected, "attempts=%d", attempts)
		assert.LessOrEqual(t, delay, expected+svc.baseBackoff, "attempts=%d", attempts)
	}
}

func TestSyncService_ListOperations(t *testing.T) {
	svc, _, _ := setupSyncService(t)

	ctx := context.Background()
	_, err := svc.QueueSync(ctx, models.OperationKindCreate, "badges", json.RawMessage(`{"id":"b1"}`))
	require.NoError(t, err)
	_, err = svc.QueueSync(ctx, models.OperationKindDelete, "notes", json.RawMessage(`{"id":"n1"}`))
	require.NoError(t, err)

	ops, err := svc.ListOperations(ctx)

	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, int64(1), ops[0].ID)
	assert.Equal(t, int64(2), ops[1].ID)
}
