package gamification

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// ComputeStreaks returns the current and longest runs of consecutive days in dates (YYYY-MM-DD, UTC).
// The current streak only counts if it ends today or yesterday.
func ComputeStreaks(dates []string, now time.Time) (current, longest int) {
	days := make([]time.Time, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		seen[d] = true
		days = append(days, t)
	}
	if len(days) == 0 {
		return 0, 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	today, _ := time.Parse(dateLayout, now.UTC().Format(dateLayout))
	last := days[len(days)-1]
	if gap := today.Sub(last); gap != 0 && gap != 24*time.Hour {
		return 0, longest
	}
	return run, longest
}
