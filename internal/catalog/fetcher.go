package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/lexiqai/voice-studio/internal/apperr"
	"github.com/lexiqai/voice-studio/internal/observability"
	"github.com/lexiqai/voice-studio/internal/tts"
)

// Refresh triggers, used as log fields and metric labels
const (
	TriggerStartup = "startup"
	TriggerAPI     = "api"
)

// Fetcher refreshes the stored catalog from the speech provider
type Fetcher struct {
	lister     tts.VoiceLister
	store      Store
	normalizer Normalizer
}

// NewFetcher creates a new catalog fetcher
func NewFetcher(lister tts.VoiceLister, store Store, normalizer Normalizer) *Fetcher {
	return &Fetcher{
		lister:     lister,
		store:      store,
		normalizer: normalizer,
	}
}

// Refresh lists voices from the provider, normalizes them and replaces the
// stored catalog. Nothing is written unless every voice normalizes.
func (f *Fetcher) Refresh(ctx context.Context) ([]VoiceDescriptor, error) {
	raw, err := f.lister.ListVoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch voices: %w", err)
	}

	voices, err := f.normalizer.NormalizeAll(raw)
	if err != nil {
		return nil, &apperr.StoreError{Op: "normalize", Err: err}
	}

	if err := f.store.Save(voices); err != nil {
		return nil, err
	}
	return voices, nil
}

// RefreshBestEffort runs Refresh and swallows its error.
// Failures are logged and counted; the caller always proceeds as if it succeeded.
func (f *Fetcher) RefreshBestEffort(ctx context.Context, trigger string) {
	logger := observability.Component("catalog").With().Str("trigger", trigger).Logger()
	start := time.Now()

	voices, err := f.Refresh(ctx)
	if err != nil {
		observability.RecordCatalogRefresh(trigger, false, 0)
		observability.RecordError(apperr.KindOf(err).String(), "catalog")
		logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("Voice catalog refresh failed")
		return
	}

	observability.RecordCatalogRefresh(trigger, true, len(voices))
	logger.Info().Int("voices", len(voices)).Dur("elapsed", time.Since(start)).Msg("Voice catalog refreshed")
}

// RefreshAsync starts a fire-and-forget refresh in the background.
// The returned channel is closed when it finishes.
func (f *Fetcher) RefreshAsync(trigger string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.RefreshBestEffort(context.Background(), trigger)
	}()
	return done
}
