package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventComputeStatus(t *testing.T) {
	starts := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	ends := time.Date(2026, 6, 2, 12, 0, 0, 0, time.UTC)
	event := &Event{StartsAt: starts, EndsAt: ends}

	tests := []struct {
		name     string
		now      time.Time
		expected EventStatus
	}{
		{"before start", starts.Add(-time.Minute), EventStatusUpcoming},
		{"exactly at start", starts, EventStatusActive},
		{"mid event", starts.Add(6 * time.Hour), EventStatusActive},
		{"inside ending-soon window", ends.Add(-30 * time.Minute), EventStatusEndingSoon},
		{"exactly one hour before end", ends.Add(-EndingSoonWindow), EventStatusEndingSoon},
		{"exactly at end", ends, EventStatusEnded},
		{"after end", ends.Add(time.Minute), EventStatusEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, event.ComputeStatus(tt.now))
		})
	}
}

func TestValidEventStatus(t *testing.T) {
	assert.True(t, ValidEventStatus(EventStatusEndingSoon))
	assert.False(t, ValidEventStatus("paused"))
}
