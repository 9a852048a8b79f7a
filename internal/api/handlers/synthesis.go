package handlers

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/spf13/cast"

	"github.com/lexiqai/voice-studio/internal/apperr"
	"github.com/lexiqai/voice-studio/internal/observability"
	"github.com/lexiqai/voice-studio/internal/synthesis"
)

// Synthesizer renders text to audio with word timings
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceName string) (*synthesis.Result, error)
}

// synthesizeRequest carries rate as sent by the browser: a string or a number.
// Rate is required but does not influence synthesis or timing.
type synthesizeRequest struct {
	Text      string      `json:"text"`
	VoiceName string      `json:"voiceName"`
	Rate      interface{} `json:"rate"`
}

type synthesizeResponse struct {
	AudioStream string                 `json:"audioStream"`
	Format      string                 `json:"format"`
	SpeechMarks []synthesis.SpeechMark `json:"speechMarks"`
}

// SynthesisHandler serves speech synthesis requests
type SynthesisHandler struct {
	svc Synthesizer
}

// NewSynthesisHandler creates a new synthesis handler
func NewSynthesisHandler(svc Synthesizer) *SynthesisHandler {
	return &SynthesisHandler{svc: svc}
}

// Synthesize returns base64 MP3 audio with estimated per-word speech marks.
func (h *SynthesisHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Text == "" || req.VoiceName == "" || !present(req.Rate) {
		writeError(w, apperr.NewValidationError("Text, voiceName, and rate are required"))
		return
	}

	logger := observability.WithCorrelationID(requestID(r))

	result, err := h.svc.Synthesize(r.Context(), req.Text, req.VoiceName)
	if err != nil {
		logger.Error().
			Err(err).
			Str("voice", req.VoiceName).
			Str("error_kind", apperr.KindOf(err).String()).
			Msg("Synthesis failed")
		writeError(w, err)
		return
	}

	logger.Info().
		Str("voice", req.VoiceName).
		Str("rate", cast.ToString(req.Rate)).
		Float64("audio_seconds", result.DurationSeconds).
		Int("speech_marks", len(result.SpeechMarks)).
		Msg("Synthesis completed")

	writeJSON(w, http.StatusOK, synthesizeResponse{
		AudioStream: base64.StdEncoding.EncodeToString(result.Audio),
		Format:      result.Format,
		SpeechMarks: result.SpeechMarks,
	})
}

// present treats null, "", 0 and false as absent
func present(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}
