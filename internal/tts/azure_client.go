package tts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lexiqai/voice-studio/internal/apperr"
	"github.com/lexiqai/voice-studio/internal/config"
	"github.com/lexiqai/voice-studio/internal/observability"
	"github.com/lexiqai/voice-studio/internal/resilience"
)

const (
	// OutputFormat is the audio encoding requested from the synthesis endpoint
	OutputFormat = "audio-16khz-32kbitrate-mono-mp3"

	subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"
	voicesListPath        = "/cognitiveservices/voices/list"
	synthesisPath         = "/cognitiveservices/v1"

	// Provider error bodies are kept for diagnostics up to this size
	maxErrorBody = 64 << 10
)

// ErrProviderNotConfigured is returned when the subscription key or region is missing
var ErrProviderNotConfigured = errors.New("azure speech provider is not configured (set AZURE_SUBSCRIPTION_KEY and AZURE_SERVICE_REGION)")

var (
	_ VoiceLister = (*AzureClient)(nil)
	_ Synthesizer = (*AzureClient)(nil)
)

// AzureClient implements VoiceLister and Synthesizer using the Azure Cognitive Services speech REST API
type AzureClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	breaker    *resilience.CircuitBreaker
}

// NewAzureClient creates a new Azure speech client.
// Missing credentials are reported on the first call, not here.
func NewAzureClient(cfg *config.Config) *AzureClient {
	baseURL := strings.TrimRight(cfg.AzureBaseURL, "/")
	if baseURL == "" && cfg.AzureServiceRegion != "" {
		baseURL = fmt.Sprintf("https://%s.tts.speech.microsoft.com", cfg.AzureServiceRegion)
	}

	return &AzureClient{
		apiKey:  cfg.AzureSubscriptionKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.UpstreamTimeoutDuration(),
		},
		breaker: resilience.NewCircuitBreaker("azure-speech", cfg.CircuitBreakerMaxFailures, cfg.CircuitBreakerResetDuration()),
	}
}

// Breaker exposes the circuit breaker guarding provider calls
func (c *AzureClient) Breaker() *resilience.CircuitBreaker {
	return c.breaker
}

// ListVoices fetches the region's voice listing
func (c *AzureClient) ListVoices(ctx context.Context) ([]Voice, error) {
	const op = "list voices"
	start := time.Now()

	var voices []Voice
	err := c.do(ctx, op, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+voicesListPath, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set(subscriptionKeyHeader, c.apiKey)
		return req, nil
	}, func(body io.Reader) error {
		if err := json.NewDecoder(body).Decode(&voices); err != nil {
			return &apperr.UpstreamError{Op: op, Status: http.StatusOK, Err: fmt.Errorf("decode voice list: %w", err)}
		}
		return nil
	})

	observability.RecordProviderCall("list_voices", err == nil, time.Since(start))
	if err != nil {
		return nil, err
	}
	return voices, nil
}

// Synthesize posts SSML to the synthesis endpoint and returns the MP3 bytes.
// Word boundary marks are requested but only the audio body is consumed.
func (c *AzureClient) Synthesize(ctx context.Context, ssml string) ([]byte, error) {
	const op = "synthesize"

	var audio []byte
	err := c.do(ctx, op, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+synthesisPath, strings.NewReader(ssml))
		if err != nil {
			return nil, err
		}
		req.Header.Set(subscriptionKeyHeader, c.apiKey)
		req.Header.Set("Content-Type", "application/ssml+xml")
		req.Header.Set("X-Microsoft-OutputFormat", OutputFormat)
		req.Header.Set("X-Microsoft-Speech-Marks", "word")
		req.Header.Set("User-Agent", "voice-studio")
		return req, nil
	}, func(body io.Reader) error {
		data, err := io.ReadAll(body)
		if err != nil {
			return &apperr.UpstreamError{Op: op, Status: http.StatusOK, Err: fmt.Errorf("read audio: %w", err)}
		}
		audio = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return audio, nil
}

// do runs one provider round trip behind the circuit breaker.
// Client errors (4xx other than 429) do not count against the circuit.
func (c *AzureClient) do(ctx context.Context, op string, build func() (*http.Request, error), read func(io.Reader) error) error {
	if c.apiKey == "" || c.baseURL == "" {
		return &apperr.UpstreamError{Op: op, Err: ErrProviderNotConfigured}
	}

	logger := observability.Component("azure")

	err := c.breaker.Call(func() error {
		req, err := build()
		if err != nil {
			return &apperr.UpstreamError{Op: op, Err: fmt.Errorf("create request: %w", err)}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return &apperr.UpstreamError{Op: op, Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			return &apperr.UpstreamError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		}

		return read(resp.Body)
	}, countsAgainstCircuit)

	if errors.Is(err, resilience.ErrCircuitOpen) {
		err = &apperr.UpstreamError{Op: op, Err: err}
	}
	if err != nil {
		logger.Warn().Err(err).Str("operation", op).Msg("Speech provider call failed")
	}
	return err
}

func countsAgainstCircuit(err error) bool {
	var upstreamErr *apperr.UpstreamError
	if !errors.As(err, &upstreamErr) || upstreamErr.Status == 0 {
		return true
	}
	return upstreamErr.Status >= 500 || upstreamErr.Status == http.StatusTooManyRequests
}
