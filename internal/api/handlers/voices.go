package handlers

import (
	"context"
	"net/http"

	"github.com/lexiqai/voice-studio/internal/catalog"
	"github.com/lexiqai/voice-studio/internal/observability"
)

// FetchVoicesMessage is returned by the refresh endpoint whatever the outcome
const FetchVoicesMessage = "Voices fetched and stored successfully."

// Refresher refreshes the catalog without reporting failures
type Refresher interface {
	RefreshBestEffort(ctx context.Context, trigger string)
}

// VoicesHandler serves the voice catalog endpoints
type VoicesHandler struct {
	refresher Refresher
	store     catalog.Store
}

// NewVoicesHandler creates a new voices handler
func NewVoicesHandler(refresher Refresher, store catalog.Store) *VoicesHandler {
	return &VoicesHandler{refresher: refresher, store: store}
}

// FetchVoices refreshes the catalog from the provider.
// It always answers 200: refresh failures are logged and counted, not returned.
func (h *VoicesHandler) FetchVoices(w http.ResponseWriter, r *http.Request) {
	// The refresh outlives a client that disconnects mid-request
	h.refresher.RefreshBestEffort(context.WithoutCancel(r.Context()), catalog.TriggerAPI)

	writeJSON(w, http.StatusOK, map[string]string{"message": FetchVoicesMessage})
}

// ListVoices returns the stored catalog.
func (h *VoicesHandler) ListVoices(w http.ResponseWriter, r *http.Request) {
	voices, err := h.store.Load()
	if err != nil {
		logger := observability.WithCorrelationID(requestID(r))
		logger.Warn().Err(err).Msg("Voice catalog unavailable")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, voices)
}
