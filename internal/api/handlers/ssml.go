package handlers

import (
	"net/http"

	"github.com/lexiqai/voice-studio/internal/apperr"
	"github.com/lexiqai/voice-studio/internal/ssml"
)

type generateSSMLRequest struct {
	Text      string `json:"text"`
	VoiceName string `json:"voiceName"`
}

// SSMLHandler serves SSML previews
type SSMLHandler struct{}

// NewSSMLHandler creates a new SSML handler
func NewSSMLHandler() *SSMLHandler {
	return &SSMLHandler{}
}

// GenerateSSML returns the preview markup for text spoken by a voice.
func (h *SSMLHandler) GenerateSSML(w http.ResponseWriter, r *http.Request) {
	var req generateSSMLRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Text == "" || req.VoiceName == "" {
		writeError(w, apperr.NewValidationError("Text and voiceName are required"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"ssml": ssml.BuildPreview(req.Text, req.VoiceName)})
}
