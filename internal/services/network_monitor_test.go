package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockQueueProcessor is a mock of QueueProcessor counting replay triggers
type mockQueueProcessor struct {
	calls     int
	err       error
	onProcess func()
}

func (m *mockQueueProcessor) ProcessSyncQueue(ctx context.Context) error {
	m.calls++
	if m.onProcess != nil {
		m.onProcess()
	}
	return m.err
}

func setupNetworkMonitor(t *testing.T) (*NetworkMonitor, *mockQueueProcessor) {
	t.Helper()
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	syncer := &mockQueueProcessor{}
	return NewNetworkMonitor(syncer, logger), syncer
}

func TestNetworkMonitor_StartsOnline(t *testing.T) {
	monitor, _ := setupNetworkMonitor(t)

	status := monitor.Status()

	assert.True(t, status.IsOnline)
	assert.False(t, status.WasOffline)
}

func TestNetworkMonitor_SetOffline(t *testing.T) {
	monitor, syncer := setupNetworkMonitor(t)

	monitor.SetOffline()

	status := monitor.Status()
	assert.False(t, status.IsOnline)
	assert.True(t, status.WasOffline)
	assert.Zero(t, syncer.calls)
}

func TestNetworkMonitor_ReconnectTriggersReplay(t *testing.T) {
	monitor, syncer := setupNetworkMonitor(t)

	monitor.SetOffline()
	monitor.SetOnline(context.Background())

	assert.Equal(t, 1, syncer.calls)
	status := monitor.Status()
	assert.True(t, status.IsOnline)
	assert.False(t, status.WasOffline)
}

func TestNetworkMonitor_SetOnlineWhileOnline(t *testing.T) {
	monitor, syncer := setupNetworkMonitor(t)

	// Duplicate online events never trigger a replay
	monitor.SetOnline(context.Background())
	monitor.SetOnline(context.Background())

	assert.Zero(t, syncer.calls)
}

func TestNetworkMonitor_SetOfflineWhileOffline(t *testing.T) {
	monitor, syncer := setupNetworkMonitor(t)

	monitor.SetOffline()
	monitor.SetOffline()
	monitor.SetOnline(context.Background())

	assert.Equal(t, 1, syncer.calls)
}

func TestNetworkMonitor_ReplayErrorStillClearsFlag(t *testing.T) {
	monitor, syncer := setupNetworkMonitor(t)

	syncer.err = errors.New("connection refused")
	monitor.SetOffline()
	monitor.SetOnline(context.Background())

	assert.Equal(t, 1, syncer.calls)
	status := monitor.Status()
	assert.True(t, status.IsOnline)
	assert.False(t, status.WasOffline)
}

func TestNetworkMonitor_OfflineDuringReplaySurvives(t *testing.T) {
	monitor, syncer := setupNetworkMonitor(t)

	// Connectivity drops again while the reconnect replay is running.
	// The offline state recorded mid-replay must not be erased, and the
	// following reconnect must fire its own replay.
	syncer.onProcess = func() {
		if syncer.calls == 1 {
			monitor.SetOffline()
		}
	}

	monitor.SetOffline()
	monitor.SetOnline(context.Background())

	status := monitor.Status()
	assert.False(t, status.IsOnline)
	assert.True(t, status.WasOffline)

	monitor.SetOnline(context.Background())

	assert.Equal(t, 2, syncer.calls)
	status = monitor.Status()
	assert.True(t, status.IsOnline)
	assert.False(t, status.WasOffline)
}

func TestNetworkMonitor_RepeatedTransitions(t *testing.T) {
	monitor, syncer := setupNetworkMonitor(t)

	for i := 0; i < 3; i++ {
		monitor.SetOffline()
		monitor.SetOnline(context.Background())
	}

	assert.Equal(t, 3, syncer.calls)
	status := monitor.Status()
	assert.True(t, status.IsOnline)
	assert.False(t, status.WasOffline)
}
