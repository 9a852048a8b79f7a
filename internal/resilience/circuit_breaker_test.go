package resilience

import (
	"errors"
	"testing"
	"time"
)

// newTestBreaker returns a breaker whose clock is advanced by the returned func
func newTestBreaker(maxFailures int, reset time.Duration) (*CircuitBreaker, func(time.Duration)) {
	cb := NewCircuitBreaker("test", maxFailures, reset)
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return current }
	return cb, func(d time.Duration) { current = current.Add(d) }
}

func TestCircuitBreaker_StateClosed(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Second)

	if cb.GetState() != StateClosed {
		t.Errorf("Expected initial state to be Closed, got %s", cb.GetState())
	}

	if !cb.allowRequest() {
		t.Error("Expected to allow request in Closed state")
	}
}

func TestCircuitBreaker_OpenAfterFailures(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Second)

	cb.RecordResult(false)
	cb.RecordResult(false)
	if cb.GetState() != StateClosed {
		t.Error("Expected state to still be Closed after 2 failures")
	}

	cb.RecordResult(false)
	if cb.GetState() != StateOpen {
		t.Error("Expected state to be Open after 3 failures")
	}

	if cb.allowRequest() {
		t.Error("Expected to not allow request in Open state")
	}
}

func TestCircuitBreaker_HalfOpenAllowsSingleTrial(t *testing.T) {
	cb, advance := newTestBreaker(1, 100*time.Millisecond)

	cb.RecordResult(false)
	advance(150 * time.Millisecond)

	if !cb.allowRequest() {
		t.Fatal("Expected to allow trial request after reset timeout")
	}
	if cb.GetState() != StateHalfOpen {
		t.Errorf("Expected HalfOpen, got %s", cb.GetState())
	}
	if cb.allowRequest() {
		t.Error("Expected second concurrent trial to be rejected")
	}
}

func TestCircuitBreaker_CloseAfterSuccess(t *testing.T) {
	cb, advance := newTestBreaker(1, 100*time.Millisecond)

	cb.RecordResult(false)
	advance(150 * time.Millisecond)

	err := cb.Call(func() error { return nil }, nil)
	if err != nil {
		t.Fatalf("Expected trial call to succeed, got %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Errorf("Expected Closed after successful trial, got %s", cb.GetState())
	}
}

func TestCircuitBreaker_OpenAfterFailureInHalfOpen(t *testing.T) {
	cb, advance := newTestBreaker(1, 100*time.Millisecond)

	cb.RecordResult(false)
	advance(150 * time.Millisecond)

	_ = cb.Call(func() error { return errors.New("still down") }, nil)

	if cb.GetState() != StateOpen {
		t.Errorf("Expected Open after failure in HalfOpen, got %s", cb.GetState())
	}
}

func TestCircuitBreaker_CallOpen(t *testing.T) {
	cb, _ := newTestBreaker(1, time.Second)

	cb.RecordResult(false)

	called := false
	err := cb.Call(func() error {
		called = true
		return nil
	}, nil)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Error("Expected fn not to run while circuit is open")
	}
}

func TestCircuitBreaker_IgnoresNonFailures(t *testing.T) {
	cb, _ := newTestBreaker(1, time.Second)

	clientErr := errors.New("bad request")
	err := cb.Call(func() error { return clientErr }, func(error) bool { return false })

	if !errors.Is(err, clientErr) {
		t.Errorf("Expected original error, got %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Error("Expected errors filtered by isFailure not to trip the circuit")
	}
}

func TestCircuitBreaker_DisabledWhenMaxFailuresZero(t *testing.T) {
	cb, _ := newTestBreaker(0, time.Second)

	for i := 0; i < 10; i++ {
		cb.RecordResult(false)
	}
	if cb.GetState() != StateClosed {
		t.Error("Expected breaker with maxFailures 0 never to open")
	}
}

func TestCircuitBreaker_GetStats(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Second)

	cb.RecordResult(true)
	cb.RecordResult(true)
	cb.RecordResult(false)

	state, requestCount, failureCount, failureRate := cb.GetStats()

	if state != StateClosed {
		t.Errorf("Expected state Closed, got %s", state)
	}
	if requestCount != 3 {
		t.Errorf("Expected 3 requests, got %d", requestCount)
	}
	if failureCount != 1 {
		t.Errorf("Expected 1 failure, got %d", failureCount)
	}
	if failureRate < 33.0 || failureRate > 34.0 {
		t.Errorf("Expected failure rate around 33.33%%, got %.2f%%", failureRate)
	}
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Second)

	cb.RecordResult(false)
	cb.RecordResult(false)
	cb.RecordResult(false)

	if cb.GetState() != StateOpen {
		t.Fatal("Expected circuit to be Open")
	}

	cb.Reset()

	state, requestCount, failureCount, _ := cb.GetStats()
	if state != StateClosed || requestCount != 0 || failureCount != 0 {
		t.Error("Expected stats to be reset")
	}
}
