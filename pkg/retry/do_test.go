package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	},
		WithMaxAttempts(5),
		WithBackoff(Fixed(time.Millisecond)),
	)
	if err != nil {
		t.Fatalf("Do() = %v, want nil", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDoReturnsLastErrorWhenExhausted(t *testing.T) {
	want := errors.New("still broken")
	calls := 0
	err := Do(context.Background(), func(context.Context) error {
		calls++
		return want
	},
		WithMaxAttempts(3),
		WithBackoff(Fixed(time.Millisecond)),
	)
	if !errors.Is(err, want) {
		t.Fatalf("Do() = %v, want %v", err, want)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDoStopsOnNonRetryableError(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func(context.Context) error {
		calls++
		return context.Canceled
	}, WithMaxAttempts(5))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestDoRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, func(context.Context) error {
		calls++
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Fatalf("calls = %d, want 0", calls)
	}
}

func TestDoCustomRetryIf(t *testing.T) {
	sentinel := errors.New("do not retry")
	calls := 0
	err := Do(context.Background(), func(context.Context) error {
		calls++
		return sentinel
	},
		WithMaxAttempts(5),
		WithRetryIf(func(err error) bool { return !errors.Is(err, sentinel) }),
	)
	if !errors.Is(err, sentinel) {
		t.Fatalf("Do() = %v, want %v", err, sentinel)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestExponentialBackoffCapped(t *testing.T) {
	b := Exponential(10*time.Millisecond, 40*time.Millisecond)
	got := []time.Duration{b.Next(0), b.Next(1), b.Next(2), b.Next(5)}
	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond, 40 * time.Millisecond}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Next(%d) = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFullJitterBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		d := FullJitter(50 * time.Millisecond)
		if d < 0 || d >= 50*time.Millisecond {
			t.Fatalf("FullJitter out of range: %v", d)
		}
	}
	if FullJitter(0) != 0 {
		t.Fatalf("FullJitter(0) != 0")
	}
}
