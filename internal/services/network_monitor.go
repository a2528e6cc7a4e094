package services

import (
	"context"
	"sync"

	"github.com/learnsphere/backend/internal/models"
	"go.uber.org/zap"
)

// QueueProcessor is the interface that wraps the replay trigger fired
// on reconnection
type QueueProcessor interface {
	ProcessSyncQueue(ctx context.Context) error
}

// NetworkMonitor tracks the connectivity state pushed by the platform's
// signal source and triggers one queue replay on each offline-to-online
// transition.
type NetworkMonitor struct {
	mu         sync.Mutex
	online     bool
	wasOffline bool
	syncer     QueueProcessor
	logger     *zap.Logger
}

// NewNetworkMonitor creates a new network monitor. The monitor starts
// in the online state.
func NewNetworkMonitor(syncer QueueProcessor, logger *zap.Logger) *NetworkMonitor {
	return &NetworkMonitor{
		online: true,
		syncer: syncer,
		logger: logger,
	}
}

// SetOnline records an online transition. If the monitor had been
// offline, it fires one replay pass and clears the wasOffline flag
// after the replay call returns, regardless of the replay's outcome.
func (m *NetworkMonitor) SetOnline(ctx context.Context) {
	m.mu.Lock()
	if m.online {
		m.mu.Unlock()
		return
	}
	m.online = true
	trigger := m.wasOffline
	m.mu.Unlock()

	if trigger {
		m.logger.Info("connectivity restored, replaying sync queue")
		if err := m.syncer.ProcessSyncQueue(ctx); err != nil {
			m.logger.Error("sync queue replay failed after reconnect", zap.Error(err))
		}
	}

	// An offline transition observed while the replay was in flight must
	// survive the clear, or the next reconnect would skip its replay.
	m.mu.Lock()
	if m.online {
		m.wasOffline = false
	}
	m.mu.Unlock()
}

// SetOffline records an offline transition
func (m *NetworkMonitor) SetOffline() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.online {
		return
	}
	m.online = false
	m.wasOffline = true
	m.logger.Info("connectivity lost")
}

// Status returns the current connectivity state and its most recent
// transition
func (m *NetworkMonitor) Status() models.NetworkStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	return models.NetworkStatus{
		IsOnline:   m.online,
		WasOffline: m.wasOffline,
	}
}
