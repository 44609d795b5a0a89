package proxy

import "time"

// Backoff controls the reconnection schedule of a failed upstream.
type Backoff struct {
	Base       time.Duration
	Cap        time.Duration
	MaxRetries int
}

// Delay returns the wait before the given attempt, doubling from Base and
// capped at Cap. The first retry uses attempt 0.
func (b *Backoff) Delay(attempt int) time.Duration {
	delay := b.Base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= b.Cap {
			return b.Cap
		}
	}
	if delay > b.Cap {
		return b.Cap
	}
	return delay
}

// DefaultBackoff retries eight times, from 200ms up to 5s between attempts.
var DefaultBackoff = &Backoff{
	Base:       200 * time.Millisecond,
	Cap:        5 * time.Second,
	MaxRetries: 8,
}
