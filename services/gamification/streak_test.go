package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStreaks(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		dates           []string
		current, longer int
	}{
		{name: "no activity", dates: nil},
		{name: "today only", dates: []string{"2026-10-19"}, current: 1, longer: 1},
		{name: "run ending yesterday still counts", dates: []string{"2026-10-17", "2026-10-18"}, current: 2, longer: 2},
		{name: "run ended three days ago", dates: []string{"2026-10-14", "2026-10-15", "2026-10-16"}, current: 0, longer: 3},
		{name: "duplicates and bad dates ignored", dates: []string{"2026-10-19", "2026-10-19", "bad", "2026-10-18"}, current: 2, longer: 2},
		{
			name:    "longest run is earlier",
			dates:   []string{"2026-10-19", "2026-10-01", "2026-10-03", "2026-10-02", "2026-10-05", "2026-10-04", "2026-10-18"},
			current: 2,
			longer:  5,
		},
		{name: "runs across a month boundary", dates: []string{"2026-09-30", "2026-10-01"}, current: 0, longer: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := ComputeStreaks(tt.dates, now)
			assert.Equal(t, tt.current, current)
			assert.Equal(t, tt.longer, longest)
		})
	}
}

func TestComputeStreaksUsesUTCDay(t *testing.T) {
	// 23:30 in UTC-5 is already the next UTC day.
	loc := time.FixedZone("EST", -5*60*60)
	now := time.Date(2026, 10, 18, 23, 30, 0, 0, loc)

	current, _ := ComputeStreaks([]string{"2026-10-18", "2026-10-19"}, now)
	assert.Equal(t, 2, current)
}
