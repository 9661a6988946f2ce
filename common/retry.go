package common

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// RetryOptions backoff options
type RetryOptions struct {
	Multiplier float64
	MinDelay   time.Duration
	MaxDelay   time.Duration
	// MaxAttempts of 0 retries until ctx is done
	MaxAttempts int
}

var defaultRetryOptions = RetryOptions{
	Multiplier: 1.5,
	MinDelay:   20 * time.Millisecond,
	MaxDelay:   2 * time.Second,
}

// Retry drives a backoff loop:
//
//	for r := BeginRetry(); r.Continue(ctx); {
//		...
//	}
type Retry struct {
	options RetryOptions
	attempt int
}

// BeginRetry starts a retry loop with the default backoff
func BeginRetry() *Retry {
	return &Retry{options: defaultRetryOptions}
}

// BeginRetryWithOptions starts a retry loop with opts
func BeginRetryWithOptions(opts RetryOptions) *Retry {
	return &Retry{options: opts}
}

// Continue sleeps before every attempt but the first and reports whether another attempt may run
func (r *Retry) Continue(ctx context.Context) bool {
	if r.options.MaxAttempts > 0 && r.attempt >= r.options.MaxAttempts {
		return false
	}
	if r.attempt != 0 {
		sleep(ctx, jitter(backOffDelay(r.attempt, r.options)))
	}
	r.attempt++
	return ctx.Err() == nil
}

// Attempt is the number of attempts started so far
func (r *Retry) Attempt() int {
	return r.attempt
}

func backOffDelay(i int, opts RetryOptions) time.Duration {
	d := time.Duration(float64(opts.MinDelay) * math.Pow(opts.Multiplier, float64(i)))
	if opts.MaxDelay > 0 && d > opts.MaxDelay {
		d = opts.MaxDelay
	}
	return d
}

// jitter keeps 60%-100% of d
func jitter(d time.Duration) time.Duration {
	return time.Duration(float64(d) * (1 - 0.4*rand.Float64()))
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
