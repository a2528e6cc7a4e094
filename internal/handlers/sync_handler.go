package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/learnsphere/backend/internal/models"
	"go.uber.org/zap"
)

// SyncService is the interface that wraps the sync queue business logic.
type SyncService interface {
	// Method QueueSync records a mutation that must eventually reach the remote
	// store. The kind must be one of 'create', 'update' or 'delete' and the
	// payload must be valid JSON.
	QueueSync(ctx context.Context, kind models.OperationKind, collection string, payload json.RawMessage) (*models.PendingOperation, error)
	// Method ProcessSyncQueue replays pending operations against the remote store
	// in FIFO order. Per-item failures are logged and left queued for a later pass.
	ProcessSyncQueue(ctx context.Context) error
	// Method ListOperations returns all queued operations in insertion order,
	// including dead-lettered entries.
	ListOperations(ctx context.Context) ([]models.PendingOperation, error)
}

// SyncHandler handles HTTP requests for the sync queue
type SyncHandler struct {
	BaseHandler
	service  SyncService
	validate *validator.Validate
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(svc SyncService, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		service:     svc,
		validate:    validator.New(),
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all sync handler routes
func (h *SyncHandler) RegisterRoutes(r chi.Router) {
	r.Route("/sync", func(r chi.Router) {
		r.Post("/operations", h.Enqueue)
		r.Get("/operations", h.List)
		r.Post("/replay", h.Replay)
	})
}

// Enqueue handles POST /api/v1/sync/operations
// @Summary Queue a remote mutation
// @Description Record a create/update/delete intent against a named remote collection for later replay
// @Tags sync
// @Accept json
// @Produce json
// @Param operation body models.EnqueueOperationRequest true "Operation to queue"
// @Success 201 {object} models.PendingOperation
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sync/operations [post]
func (h *SyncHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	var req models.EnqueueOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "kind, collection and payload are required; kind must be create, update or delete")
		return
	}

	op, err := h.service.QueueSync(r.Context(), req.Kind, req.Collection, req.Payload)
	if err != nil {
		h.logger.Error("failed to queue operation", zap.Error(err), zap.String("collection", req.Collection))
		h.respondError(w, http.StatusInternalServerError, "failed to queue operation")
		return
	}

	h.respondJSON(w, http.StatusCreated, op)
}

// List handles GET /api/v1/sync/operations
// @Summary List queued operations
// @Description List all queued operations in insertion order, including dead-lettered entries
// @Tags sync
// @Produce json
// @Success 200 {array} models.PendingOperation
// @Failure 500 {object} map[string]string
// @Router /sync/operations [get]
func (h *SyncHandler) List(w http.ResponseWriter, r *http.Request) {
	ops, err := h.service.ListOperations(r.Context())
	if err != nil {
		h.logger.Error("failed to list queued operations", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list queued operations")
		return
	}
	if ops == nil {
		ops = []models.PendingOperation{}
	}

	h.respondJSON(w, http.StatusOK, ops)
}

// Replay handles POST /api/v1/sync/replay
// @Summary Replay the sync queue
// @Description Attempt delivery of all pending operations against the remote store
// @Tags sync
// @Success 204
// @Failure 500 {object} map[string]string
// @Router /sync/replay [post]
func (h *SyncHandler) Replay(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ProcessSyncQueue(r.Context()); err != nil {
		h.logger.Error("failed to replay sync queue", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to replay sync queue")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
