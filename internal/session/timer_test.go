package session_test

import (
	"testing"
	"time"

	"github.com/Anthya1104/exam-simulator-cli/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	total := 180 * time.Minute

	tests := []struct {
		name    string
		elapsed time.Duration
		want    session.Countdown
		display string
	}{
		{"start", 0, session.Countdown{Minutes: 180}, "180:00"},
		{"one second", time.Second, session.Countdown{Minutes: 179, Seconds: 59}, "179:59"},
		{"partial second is dropped", 1500 * time.Millisecond, session.Countdown{Minutes: 179, Seconds: 58}, "179:58"},
		{"last minute", 179 * time.Minute, session.Countdown{Minutes: 1}, "01:00"},
		{"last second", total - time.Second, session.Countdown{Seconds: 1}, "00:01"},
		{"expired exactly", total, session.Countdown{}, "00:00"},
		{"past expiry", total + 5*time.Minute, session.Countdown{}, "00:00"},
		{"negative elapsed", -time.Minute, session.Countdown{Minutes: 180}, "180:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := session.Remaining(tt.elapsed, total)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.display, got.String())
			assert.GreaterOrEqual(t, got.Seconds, 0)
			assert.Less(t, got.Seconds, 60)
		})
	}
}

func TestCountdownExpired(t *testing.T) {
	assert.True(t, session.Countdown{}.Expired())
	assert.False(t, session.Countdown{Seconds: 1}.Expired())
	assert.False(t, session.Countdown{Minutes: 1}.Expired())
}
