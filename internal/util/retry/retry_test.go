package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := WithExponentialBackoff(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := WithExponentialBackoff(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, WithInitialDelay(time.Millisecond))
	if err != nil {
		t.Fatalf("expected success after retries, got: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestExhaustsRetries(t *testing.T) {
	calls := 0
	err := WithExponentialBackoff(context.Background(), func() error {
		calls++
		return errors.New("always fails")
	}, WithMaxRetries(2), WithInitialDelay(time.Millisecond))
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithExponentialBackoff(ctx, func() error {
		return errors.New("fails")
	}, WithInitialDelay(time.Minute))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestMaxDelayCaps(t *testing.T) {
	start := time.Now()
	_ = WithExponentialBackoff(context.Background(), func() error {
		return errors.New("fails")
	}, WithMaxRetries(3), WithInitialDelay(time.Millisecond), WithMaxDelay(2*time.Millisecond))
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("delays not capped, took %v", elapsed)
	}
}
