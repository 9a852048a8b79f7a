package tts

import "context"

// Voice is one entry of the provider's voice listing, as returned on the wire.
// Numeric fields arrive as strings from Azure and are coerced by the catalog.
type Voice struct {
	Name            string `json:"Name"`
	DisplayName     string `json:"DisplayName"`
	LocalName       string `json:"LocalName"`
	ShortName       string `json:"ShortName"`
	Gender          string `json:"Gender"`
	Locale          string `json:"Locale"`
	LocaleName      string `json:"LocaleName"`
	SampleRateHertz any    `json:"SampleRateHertz"`
	VoiceType       string `json:"VoiceType"`
	WordsPerMinute  any    `json:"WordsPerMinute,omitempty"`
}

// VoiceLister lists the voices a provider offers
type VoiceLister interface {
	ListVoices(ctx context.Context) ([]Voice, error)
}

// Synthesizer renders SSML into MP3 audio
type Synthesizer interface {
	Synthesize(ctx context.Context, ssml string) ([]byte, error)
}
