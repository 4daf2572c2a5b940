package gamification

import (
	"testing"
	"time"

	"sacredgreeks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogKeysAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range Achievements() {
		require.False(t, seen[a.Key], "duplicate achievement %s", a.Key)
		seen[a.Key] = true
		assert.Positive(t, a.Points)
		assert.Positive(t, a.Criteria.Threshold)
	}

	seen = map[string]bool{}
	for _, c := range Challenges() {
		require.False(t, seen[c.Key], "duplicate challenge %s", c.Key)
		seen[c.Key] = true
		_, priced := PointValues[c.Action]
		assert.True(t, priced, "challenge %s uses unpriced action %s", c.Key, c.Action)
	}
}

func TestAchievementsReturnsCopy(t *testing.T) {
	list := Achievements()
	list[0].Name = "changed"
	assert.NotEqual(t, "changed", Achievements()[0].Name)
}

func TestActivityActionsExcludeLoginAndBonus(t *testing.T) {
	actions := ActivityActions()
	assert.NotContains(t, actions, models.ActionDailyLogin)
	assert.NotContains(t, actions, models.ActionAchievementBonus)
	assert.Contains(t, actions, models.ActionDevotionalComplete)
}

func TestChallengeForRotatesByDayOfYear(t *testing.T) {
	n := len(Challenges())
	day1 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, Challenges()[1%n].Key, ChallengeFor(day1).Key)
	assert.Equal(t, ChallengeFor(day1).Key, ChallengeFor(day1.Add(14*time.Hour)).Key, "same UTC day, same challenge")
	assert.Equal(t, ChallengeFor(day1).Key, ChallengeFor(day1.AddDate(0, 0, n)).Key, "catalog wraps around")
	assert.NotEqual(t, ChallengeFor(day1).Key, ChallengeFor(day1.AddDate(0, 0, 1)).Key)
}

func TestEligibility(t *testing.T) {
	stats := models.Stats{Devotionals: 1, PrayerRequests: 2, LongestStreak: 7, CurrentStreak: 0, TotalPoints: 120}

	keys := func(list []models.Achievement) []string {
		var out []string
		for _, a := range list {
			out = append(out, a.Key)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"first_devotional", "first_request", "streak_7"}, keys(Eligible(stats)))
	assert.ElementsMatch(t, []string{"streak_7"}, keys(NewlyEligible(stats, map[string]bool{
		"first_devotional": true,
		"first_request":    true,
	})))
	assert.Empty(t, NewlyEligible(models.Stats{}, nil))
}

func TestMetricValue(t *testing.T) {
	stats := models.Stats{
		TotalPoints: 500, Devotionals: 1, PrayedFor: 2, PrayerRequests: 3,
		ForumPosts: 4, StudyGuides: 5, Challenges: 6, CurrentStreak: 1, LongestStreak: 7,
	}
	assert.Equal(t, 500, MetricValue(stats, models.MetricPoints))
	assert.Equal(t, 7, MetricValue(stats, models.MetricStreak))
	assert.Equal(t, 4, MetricValue(stats, models.MetricForumPosts))
	assert.Equal(t, 0, MetricValue(stats, "unknown"))
}
