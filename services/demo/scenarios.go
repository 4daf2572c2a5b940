package demo

import "sacredgreeks/models"

var scenarios = []models.DemoScenario{
	{
		Key:             "new_member",
		Name:            "New Member",
		Description:     "Just joined. Nothing completed yet, onboarding visible.",
		Stats:           models.Stats{},
		EngagementScore: 0,
		EngagementLabel: models.EngagementInactive,
		ShowOnboarding:  true,
	},
	{
		Key:         "active_member",
		Name:        "Active Member",
		Description: "Reads most days and prays for others on the wall.",
		Stats: models.Stats{
			TotalPoints: 420, Devotionals: 24, Prayers: 9, PrayedFor: 31, PrayerRequests: 4,
			ForumPosts: 6, StudyGuides: 2, Challenges: 8, CurrentStreak: 6, LongestStreak: 14,
		},
		EngagementScore: 68,
		EngagementLabel: models.EngagementActive,
	},
	{
		Key:         "chapter_leader",
		Name:        "Chapter Leader",
		Description: "Leads study, posts often, premium subscriber.",
		Stats: models.Stats{
			TotalPoints: 1860, Devotionals: 95, Prayers: 40, PrayedFor: 120, PrayerRequests: 12,
			ForumPosts: 48, StudyGuides: 11, Challenges: 37, CurrentStreak: 32, LongestStreak: 45,
		},
		EngagementScore: 94,
		EngagementLabel: models.EngagementChampion,
		Premium:         true,
	},
	{
		Key:         "lapsed_member",
		Name:        "Lapsed Member",
		Description: "Was active last semester, quiet for weeks.",
		Stats: models.Stats{
			TotalPoints: 150, Devotionals: 11, Prayers: 2, PrayedFor: 5, PrayerRequests: 1,
			ForumPosts: 1, StudyGuides: 0, Challenges: 2, CurrentStreak: 0, LongestStreak: 5,
		},
		EngagementScore: 8,
		EngagementLabel: models.EngagementAtRisk,
	},
}

// Scenarios lists the catalog in display order.
func Scenarios() []models.DemoScenario {
	out := make([]models.DemoScenario, len(scenarios))
	copy(out, scenarios)
	return out
}

func FindScenario(key string) (models.DemoScenario, bool) {
	for _, s := range scenarios {
		if s.Key == key {
			return s, true
		}
	}
	return models.DemoScenario{}, false
}
