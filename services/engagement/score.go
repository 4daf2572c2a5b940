package engagement

import (
	"math"

	"sacredgreeks/models"
)

// WindowDays is the lookback for every ratio.
const WindowDays = 30

// Targets at which each ratio saturates.
const (
	devotionalTarget  = 20
	prayerTarget      = 15
	communityTarget   = 10
	consistencyTarget = 20
)

const (
	devotionalWeight  = 0.35
	prayerWeight      = 0.25
	communityWeight   = 0.20
	consistencyWeight = 0.20
)

func ratio(n, target int) float64 {
	if n <= 0 {
		return 0
	}
	return math.Min(float64(n)/float64(target), 1)
}

// Compute turns raw counts into a 0-100 score and its label.
func Compute(c models.ActivityCounts) (int, models.EngagementComponents) {
	comp := models.EngagementComponents{
		Devotional:  ratio(c.Devotionals, devotionalTarget),
		Prayer:      ratio(c.PrayerRequests+c.PrayedFor+c.Prayers, prayerTarget),
		Community:   ratio(c.ForumPosts, communityTarget),
		Consistency: ratio(c.ActiveDays, consistencyTarget),
	}
	sum := devotionalWeight*comp.Devotional +
		prayerWeight*comp.Prayer +
		communityWeight*comp.Community +
		consistencyWeight*comp.Consistency
	return int(math.Round(100 * sum)), comp
}

// Label buckets a score.
func Label(score int) string {
	switch {
	case score >= 80:
		return models.EngagementChampion
	case score >= 60:
		return models.EngagementActive
	case score >= 40:
		return models.EngagementEngaged
	case score >= 20:
		return models.EngagementCasual
	case score > 0:
		return models.EngagementAtRisk
	default:
		return models.EngagementInactive
	}
}
