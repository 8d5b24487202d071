package favorite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDDay(t *testing.T) {
	today := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		eventStart time.Time
		expected   string
	}{
		{
			name:       "Event later today is D-Day",
			eventStart: time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC),
			expected:   "D-Day",
		},
		{
			name:       "Event earlier today is still D-Day",
			eventStart: time.Date(2026, 9, 1, 0, 30, 0, 0, time.UTC),
			expected:   "D-Day",
		},
		{
			name:       "Event tomorrow is D-1",
			eventStart: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			expected:   "D-1",
		},
		{
			name:       "Event in ten days is D-10",
			eventStart: time.Date(2026, 9, 11, 9, 0, 0, 0, time.UTC),
			expected:   "D-10",
		},
		{
			name:       "Event yesterday is D+1",
			eventStart: time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC),
			expected:   "D+1",
		},
		{
			name:       "Event a year ago counts the days",
			eventStart: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
			expected:   "D+365",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DDay(tt.eventStart, today))
		})
	}
}
