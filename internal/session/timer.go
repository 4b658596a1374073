package session

import (
	"fmt"
	"time"
)

// Countdown is the time left in an exam, in whole minutes and seconds.
// Seconds is always in [0, 59]; Minutes may exceed 59.
type Countdown struct {
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

func (c Countdown) String() string {
	return fmt.Sprintf("%02d:%02d", c.Minutes, c.Seconds)
}

func (c Countdown) Expired() bool {
	return c.Minutes == 0 && c.Seconds == 0
}

// Remaining returns the countdown for an exam of length total after elapsed
// has passed. Partial seconds are dropped and the result never goes below
// zero. Expiry is informational only.
func Remaining(elapsed, total time.Duration) Countdown {
	if elapsed < 0 {
		elapsed = 0
	}
	left := total - elapsed
	if left < 0 {
		left = 0
	}

	secs := int(left / time.Second)
	return Countdown{
		Minutes: secs / 60,
		Seconds: secs % 60,
	}
}
