package utils

import (
	"errors"
	"math/rand"
	"time"
)

// ErrRetriesExhausted is returned once a Backoff has burned through its
// attempt budget.
var ErrRetriesExhausted = errors.New("retries exhausted")

// Backoff produces exponentially growing delays with jitter. Zero value is
// not usable; construct with NewBackoff.
type Backoff struct {
	Base        time.Duration
	Max         time.Duration
	MaxAttempts int

	attempt int
}

func NewBackoff(base, max time.Duration, maxAttempts int) *Backoff {
	return &Backoff{Base: base, Max: max, MaxAttempts: maxAttempts}
}

// Next returns the delay before the following attempt, or ErrRetriesExhausted
// once MaxAttempts have been consumed. Each delay is the doubled previous
// one plus up to 25% jitter, capped at Max.
func (b *Backoff) Next() (time.Duration, error) {
	if b.MaxAttempts > 0 && b.attempt >= b.MaxAttempts {
		return 0, ErrRetriesExhausted
	}
	d := b.Base << uint(b.attempt)
	if d > b.Max || d <= 0 {
		d = b.Max
	}
	jitter := time.Duration(rand.Int63n(int64(d)/4 + 1))
	b.attempt++
	return d + jitter, nil
}

// Reset rearms the backoff after a success.
func (b *Backoff) Reset() {
	b.attempt = 0
}
