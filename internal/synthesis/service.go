package synthesis

import (
	"context"
	"time"

	"github.com/lexiqai/voice-studio/internal/apperr"
	"github.com/lexiqai/voice-studio/internal/audio"
	"github.com/lexiqai/voice-studio/internal/observability"
	"github.com/lexiqai/voice-studio/internal/ssml"
	"github.com/lexiqai/voice-studio/internal/tts"
)

// FormatMP3 is the only audio format produced
const FormatMP3 = "mp3"

// Result is a finished synthesis: the audio plus estimated word timings
type Result struct {
	Audio           []byte       `json:"audio"`
	Format          string       `json:"format"`
	DurationSeconds float64      `json:"durationSeconds"`
	SpeechMarks     []SpeechMark `json:"speechMarks"`
}

// Service renders text to speech through a provider
type Service struct {
	provider tts.Synthesizer
	cache    Cache
	cacheTTL time.Duration
}

// Option configures a Service
type Option func(*Service)

// WithCache enables result caching
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// NewService creates a new synthesis service
func NewService(provider tts.Synthesizer, opts ...Option) *Service {
	s := &Service{provider: provider}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize renders text with the given voice and estimates word timings.
// It either returns audio and marks together or fails as a whole.
func (s *Service) Synthesize(ctx context.Context, text, voiceName string) (*Result, error) {
	if text == "" || voiceName == "" {
		return nil, apperr.NewValidationError("text and voiceName are required")
	}

	logger := observability.Component("synthesis")

	key := CacheKey(voiceName, text)
	if cached := s.lookup(ctx, key); cached != nil {
		logger.Debug().Str("voice", voiceName).Msg("Serving synthesis from cache")
		return cached, nil
	}

	m := observability.NewSynthesisMetrics()

	m.RecordProviderStart()
	data, err := s.provider.Synthesize(ctx, ssml.BuildSynthesis(text, voiceName))
	m.RecordProviderEnd(err == nil)
	if err != nil {
		m.RecordError(apperr.KindOf(err).String(), "synthesis")
		m.RecordEnd(false, 0)
		return nil, err
	}

	seconds, err := audio.Duration(data)
	if err != nil {
		m.RecordError(apperr.KindAudioDecode.String(), "synthesis")
		m.RecordEnd(false, 0)
		return nil, &apperr.AudioDecodeError{Err: err}
	}

	result := &Result{
		Audio:           data,
		Format:          FormatMP3,
		DurationSeconds: seconds,
		SpeechMarks:     EstimateSpeechMarks(text, seconds),
	}
	m.RecordEnd(true, seconds)

	logger.Debug().
		Str("voice", voiceName).
		Int("audio_bytes", len(data)).
		Float64("audio_seconds", seconds).
		Int("words", len(result.SpeechMarks)).
		Msg("Synthesized speech")

	s.store(ctx, key, result)
	return result, nil
}

func (s *Service) lookup(ctx context.Context, key string) *Result {
	if s.cache == nil {
		return nil
	}
	result, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		observability.RecordCacheLookup("error")
		logger := observability.Component("synthesis")
		logger.Warn().Err(err).Msg("Synthesis cache lookup failed")
		return nil
	case !ok:
		observability.RecordCacheLookup("miss")
		return nil
	}
	observability.RecordCacheLookup("hit")
	return result
}

func (s *Service) store(ctx context.Context, key string, result *Result) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
		logger := observability.Component("synthesis")
		logger.Warn().Err(err).Msg("Synthesis cache write failed")
	}
}
