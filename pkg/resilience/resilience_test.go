package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"sermonscribe/pkg/fn"
)

func TestBreakerTripsAfterThreshold(t *testing.T) {
	b := NewBreaker(BreakerOpts{FailThreshold: 3, Timeout: time.Minute})
	fail := func(_ context.Context) error { return errors.New("boom") }

	for i := 0; i < 3; i++ {
		if err := b.Call(context.Background(), fail); err == nil {
			t.Fatal("expected failure")
		}
	}
	if b.State() != StateOpen {
		t.Fatalf("state = %v, want open", b.State())
	}
	if err := b.Call(context.Background(), fail); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestBreakerResetsOnSuccess(t *testing.T) {
	b := NewBreaker(BreakerOpts{FailThreshold: 3, Timeout: time.Minute})
	fail := func(_ context.Context) error { return errors.New("boom") }
	ok := func(_ context.Context) error { return nil }

	b.Call(context.Background(), fail)
	b.Call(context.Background(), fail)
	b.Call(context.Background(), ok)
	b.Call(context.Background(), fail)
	b.Call(context.Background(), fail)

	if b.State() != StateClosed {
		t.Fatal("success should reset the failure count")
	}
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	b := NewBreaker(BreakerOpts{FailThreshold: 1, Timeout: 10 * time.Second})
	clock := time.Now()
	b.now = func() time.Time { return clock }

	b.Call(context.Background(), func(_ context.Context) error { return errors.New("boom") })
	if b.State() != StateOpen {
		t.Fatal("should be open")
	}

	clock = clock.Add(11 * time.Second)
	if b.State() != StateHalfOpen {
		t.Fatal("should transition to half-open after timeout")
	}

	if err := b.Call(context.Background(), func(_ context.Context) error { return nil }); err != nil {
		t.Fatal("probe call should be allowed")
	}
	if b.State() != StateClosed {
		t.Fatal("successful probe should close the breaker")
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b := NewBreaker(BreakerOpts{FailThreshold: 1, Timeout: 10 * time.Second})
	clock := time.Now()
	b.now = func() time.Time { return clock }

	b.Call(context.Background(), func(_ context.Context) error { return errors.New("boom") })
	clock = clock.Add(11 * time.Second)

	b.Call(context.Background(), func(_ context.Context) error { return errors.New("still failing") })
	if b.State() != StateOpen {
		t.Fatal("failed probe should reopen the breaker")
	}
}

func TestCallResultPassesThrough(t *testing.T) {
	b := NewBreaker(DefaultBreakerOpts)
	r := CallResult(b, context.Background(), func(_ context.Context) fn.Result[int] {
		return fn.Ok(42)
	})
	if r.Must() != 42 {
		t.Fatal("CallResult should pass value through")
	}
}

func TestCallResultRejectedWhenOpen(t *testing.T) {
	b := NewBreaker(BreakerOpts{FailThreshold: 1, Timeout: time.Minute})
	b.Call(context.Background(), func(_ context.Context) error { return errors.New("boom") })

	r := CallResult(b, context.Background(), func(_ context.Context) fn.Result[int] {
		t.Fatal("f should not run when breaker is open")
		return fn.Ok(0)
	})
	_, err := r.Unwrap()
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestLimiterAllowConsumesTokens(t *testing.T) {
	l := NewLimiter(LimiterOpts{Rate: 1, Burst: 2})
	if !l.Allow() || !l.Allow() {
		t.Fatal("burst tokens should be available")
	}
	if l.Allow() {
		t.Fatal("third call should be limited")
	}
}

func TestLimiterRefills(t *testing.T) {
	l := NewLimiter(LimiterOpts{Rate: 10, Burst: 1})
	clock := time.Now()
	l.now = func() time.Time { return clock }

	if !l.Allow() {
		t.Fatal("first token")
	}
	if l.Allow() {
		t.Fatal("bucket should be empty")
	}

	clock = clock.Add(200 * time.Millisecond)
	if !l.Allow() {
		t.Fatal("token should refill after elapsed time")
	}
}

func TestLimiterWaitCancelled(t *testing.T) {
	l := NewLimiter(LimiterOpts{Rate: 0.001, Burst: 1})
	l.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
