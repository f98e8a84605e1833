// Package backoff provides the capped exponential delay schedule shared by
// feed retries and push-channel reconnects.
package backoff

import "time"

type Backoff struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
}

func Default() Backoff {
	return Backoff{
		Initial:    time.Second,
		Max:        30 * time.Second,
		Multiplier: 2.0,
	}
}

// Delay returns the wait before the given retry attempt. Attempts are
// 1-based; attempt 1 waits Initial, each further attempt multiplies the wait
// until Max caps it.
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt <= 1 {
		return b.Initial
	}

	delay := float64(b.Initial)
	for i := 1; i < attempt; i++ {
		delay *= b.Multiplier
		if time.Duration(delay) >= b.Max {
			return b.Max
		}
	}

	return time.Duration(delay)
}
