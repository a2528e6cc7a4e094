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

// NetworkMonitor is the interface that wraps the connectivity state machine.
type NetworkMonitor interface {
	// Method SetOnline records an online transition and fires a sync queue replay
	// when connectivity had been lost.
	SetOnline(ctx context.Context)
	// Method SetOffline records an offline transition.
	SetOffline()
	// Method Status returns the current connectivity state.
	Status() models.NetworkStatus
}

// NetworkHandler handles HTTP requests for the network monitor
type NetworkHandler struct {
	BaseHandler
	monitor  NetworkMonitor
	validate *validator.Validate
}

// NewNetworkHandler creates a new network handler
func NewNetworkHandler(monitor NetworkMonitor, logger *zap.Logger) *NetworkHandler {
	return &NetworkHandler{
		monitor:     monitor,
		validate:    validator.New(),
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all network handler routes
func (h *NetworkHandler) RegisterRoutes(r chi.Router) {
	r.Route("/network", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Post("/events", h.Event)
	})
}

// Status handles GET /api/v1/network/status
// @Summary Get connectivity state
// @Description Get the current connectivity state and whether the app was offline since the last online transition
// @Tags network
// @Produce json
// @Success 200 {object} models.NetworkStatus
// @Router /network/status [get]
func (h *NetworkHandler) Status(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.monitor.Status())
}

// Event handles POST /api/v1/network/events
// @Summary Push a connectivity transition
// @Description Record an online/offline transition from the platform's connectivity signal source
// @Tags network
// @Accept json
// @Produce json
// @Param event body models.NetworkEventRequest true "Connectivity event"
// @Success 200 {object} models.NetworkStatus
// @Failure 400 {object} map[string]string
// @Router /network/events [post]
func (h *NetworkHandler) Event(w http.ResponseWriter, r *http.Request) {
	var req models.NetworkEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "online field is required")
		return
	}

	if *req.Online {
		h.monitor.SetOnline(r.Context())
	} else {
		h.monitor.SetOffline()
	}

	h.respondJSON(w, http.StatusOK, h.monitor.Status())
}
