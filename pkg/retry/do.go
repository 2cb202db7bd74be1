// Package retry provides a small retry helper with configurable backoff,
// jitter, and context cancellation, used for best-effort side channels.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Func defines a retryable function. The function must respect the
// provided context.
type Func func(ctx context.Context) error

// RetryIf determines whether an error should trigger a retry.
type RetryIf func(error) bool

// Backoff defines how long to wait before the next retry. attempt starts
// from 0.
type Backoff interface {
	Next(attempt int) time.Duration
}

type fixedBackoff struct {
	interval time.Duration
}

func (b fixedBackoff) Next(int) time.Duration {
	return b.interval
}

// Fixed returns a fixed backoff strategy.
func Fixed(interval time.Duration) Backoff {
	return fixedBackoff{interval: interval}
}

type exponentialBackoff struct {
	base time.Duration
	max  time.Duration
}

func (b exponentialBackoff) Next(attempt int) time.Duration {
	d := b.base * time.Duration(1<<attempt)
	if b.max > 0 && d > b.max {
		return b.max
	}
	return d
}

// Exponential returns an exponential backoff strategy.
func Exponential(base time.Duration, max ...time.Duration) Backoff {
	var m time.Duration
	if len(max) > 0 {
		m = max[0]
	}
	return exponentialBackoff{base: base, max: m}
}

// Jitter modifies the backoff duration.
type Jitter func(time.Duration) time.Duration

// NoJitter applies no jitter.
func NoJitter(d time.Duration) time.Duration {
	return d
}

// FullJitter picks a random duration in [0, d).
func FullJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(d)))
}

// Config defines retry behavior.
type Config struct {
	maxAttempts int
	backoff     Backoff
	jitter      Jitter
	retryIf     RetryIf
}

func defaultConfig() *Config {
	return &Config{
		maxAttempts: 3,
		backoff:     Fixed(time.Second),
		jitter:      NoJitter,
		retryIf:     IsRetryableError,
	}
}

// Option configures retry behavior.
type Option func(*Config)

// WithMaxAttempts sets the maximum number of attempts, including the first.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff sets the backoff strategy.
func WithBackoff(b Backoff) Option {
	return func(c *Config) {
		if b != nil {
			c.backoff = b
		}
	}
}

// WithJitter sets the jitter strategy.
func WithJitter(j Jitter) Option {
	return func(c *Config) {
		if j != nil {
			c.jitter = j
		}
	}
}

// WithRetryIf sets the retry condition function.
func WithRetryIf(fn RetryIf) Option {
	return func(c *Config) {
		if fn != nil {
			c.retryIf = fn
		}
	}
}

// Do executes fn with retry logic. The context controls cancellation.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var lastErr error

	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !cfg.retryIf(err) {
			return err
		}

		if attempt == cfg.maxAttempts-1 {
			break
		}

		wait := cfg.jitter(cfg.backoff.Next(attempt))
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}

	return lastErr
}

// IsRetryableError is the default retry condition. Context cancellation
// and deadline errors are never retried.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
