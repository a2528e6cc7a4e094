package models

import (
	"encoding/json"
	"time"
)

// OperationKind represents the kind of a pending remote mutation
type OperationKind string

const (
	OperationKindCreate OperationKind = "create"
	OperationKindUpdate OperationKind = "update"
	OperationKindDelete OperationKind = "delete"
)

// ValidOperationKind reports whether k is a known operation kind
func ValidOperationKind(k OperationKind) bool {
	return k == OperationKindCreate || k == OperationKindUpdate || k == OperationKindDelete
}

// OperationStatus represents the delivery state of a pending operation
type OperationStatus string

const (
	// OperationStatusPending marks an operation awaiting delivery.
	OperationStatusPending OperationStatus = "pending"
	// OperationStatusDead marks an operation that exhausted its retry
	// budget and will not be attempted again automatically.
	OperationStatusDead OperationStatus = "dead"
)

// PendingOperation represents an intended mutation against a named
// remote collection, recorded while the app cannot confirm immediate
// remote persistence. Consumed on successful replay.
type PendingOperation struct {
	ID            int64           `json:"id"`
	Kind          OperationKind   `json:"kind"`
	Collection    string          `json:"collection"`
	Payload       json.RawMessage `json:"payload"`
	EnqueuedAt    time.Time       `json:"enqueuedAt"`
	Attempts      int             `json:"attempts"`
	NextAttemptAt time.Time       `json:"nextAttemptAt"`
	Status        OperationStatus `json:"status"`
}

// EnqueueOperationRequest represents a request to record a pending
// remote mutation
type EnqueueOperationRequest struct {
	Kind       OperationKind   `json:"kind" validate:"required,oneof=create update delete"`
	Collection string          `json:"collection" validate:"required"`
	Payload    json.RawMessage `json:"payload" validate:"required"`
}

// NetworkStatus represents the current connectivity state exposed to
// the rest of the application
type NetworkStatus struct {
	IsOnline   bool `json:"isOnline"`
	WasOffline bool `json:"wasOffline"`
}

// NetworkEventRequest represents a connectivity transition pushed by
// the platform's signal source
type NetworkEventRequest struct {
	Online *bool `json:"online" validate:"required"`
}
