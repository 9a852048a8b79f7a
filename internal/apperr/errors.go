package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error for translation into an HTTP status
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUpstream
	KindStore
	KindAudioDecode
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	case KindStore:
		return "store"
	case KindAudioDecode:
		return "audio_decode"
	default:
		return "unknown"
	}
}

// ValidationError reports a missing or malformed request field
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// UpstreamError reports a failed call to the speech provider.
// Body carries the provider's raw error payload when one was returned.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil && e.Body != "":
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Body != "":
		return fmt.Sprintf("%s: provider returned status %d: %s", e.Op, e.Status, e.Body)
	default:
		return fmt.Sprintf("%s: provider returned status %d", e.Op, e.Status)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// StoreError reports an unreadable, missing or unwritable voice catalog
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// AudioDecodeError reports that the synthesized audio could not be measured
type AudioDecodeError struct {
	Err error
}

func (e *AudioDecodeError) Error() string {
	return fmt.Sprintf("decode audio: %v", e.Err)
}

func (e *AudioDecodeError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first typed error in err's chain, or 0
func KindOf(err error) Kind {
	var (
		validationErr *ValidationError
		upstreamErr   *UpstreamError
		storeErr      *StoreError
		decodeErr     *AudioDecodeError
	)
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &upstreamErr):
		return KindUpstream
	case errors.As(err, &storeErr):
		return KindStore
	case errors.As(err, &decodeErr):
		return KindAudioDecode
	}
	return 0
}

// HTTPStatus maps an error to the status code returned to API clients
func HTTPStatus(err error) int {
	if KindOf(err) == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
