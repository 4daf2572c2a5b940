package gamification

import (
	"time"

	"sacredgreeks/models"
)

// PointValues is the fixed points table. achievement_bonus is priced per achievement.
var PointValues = map[string]int{
	models.ActionDailyLogin:         1,
	models.ActionDevotionalComplete: 10,
	models.ActionPrayerComplete:     5,
	models.ActionStudyGuideComplete: 20,
	models.ActionPrayerRequest:      5,
	models.ActionPrayFor:            2,
	models.ActionForumTopic:         5,
	models.ActionForumReply:         3,
	models.ActionDailyChallenge:     15,
}

// activityActions mark a day as active. daily_login and achievement_bonus do not.
var activityActions = []string{
	models.ActionDevotionalComplete,
	models.ActionPrayerComplete,
	models.ActionStudyGuideComplete,
	models.ActionPrayerRequest,
	models.ActionPrayFor,
	models.ActionForumTopic,
	models.ActionForumReply,
	models.ActionDailyChallenge,
}

func ActivityActions() []string {
	out := make([]string, len(activityActions))
	copy(out, activityActions)
	return out
}

var achievementCatalog = []models.Achievement{
	{Key: "first_devotional", Name: "First Steps", Description: "Complete your first devotional", Icon: "sunrise", Points: 10,
		Criteria: models.AchievementCriteria{Metric: models.MetricDevotionals, Threshold: 1}},
	{Key: "devotional_30", Name: "Faithful Reader", Description: "Complete 30 devotionals", Icon: "book-open", Points: 50,
		Criteria: models.AchievementCriteria{Metric: models.MetricDevotionals, Threshold: 30}},
	{Key: "first_request", Name: "Open Heart", Description: "Share your first prayer request", Icon: "heart", Points: 5,
		Criteria: models.AchievementCriteria{Metric: models.MetricPrayerRequests, Threshold: 1}},
	{Key: "prayer_warrior", Name: "Prayer Warrior", Description: "Pray for 25 requests on the prayer wall", Icon: "hands", Points: 30,
		Criteria: models.AchievementCriteria{Metric: models.MetricPrayedFor, Threshold: 25}},
	{Key: "community_voice", Name: "Community Voice", Description: "Write 10 forum posts", Icon: "message-circle", Points: 25,
		Criteria: models.AchievementCriteria{Metric: models.MetricForumPosts, Threshold: 10}},
	{Key: "scholar", Name: "Scholar", Description: "Finish 5 study guides", Icon: "graduation-cap", Points: 40,
		Criteria: models.AchievementCriteria{Metric: models.MetricStudyGuides, Threshold: 5}},
	{Key: "streak_7", Name: "Week Strong", Description: "Stay active 7 days in a row", Icon: "flame", Points: 25,
		Criteria: models.AchievementCriteria{Metric: models.MetricStreak, Threshold: 7}},
	{Key: "streak_30", Name: "Unshakable", Description: "Stay active 30 days in a row", Icon: "mountain", Points: 100,
		Criteria: models.AchievementCriteria{Metric: models.MetricStreak, Threshold: 30}},
	{Key: "challenger", Name: "Challenger", Description: "Complete 10 daily challenges", Icon: "target", Points: 30,
		Criteria: models.AchievementCriteria{Metric: models.MetricChallenges, Threshold: 10}},
	{Key: "points_500", Name: "Rising Light", Description: "Earn 500 points", Icon: "star", Points: 50,
		Criteria: models.AchievementCriteria{Metric: models.MetricPoints, Threshold: 500}},
}

var challengeCatalog = []models.DailyChallenge{
	{Key: "read_devotional", Title: "Daily Bread", Description: "Read today's devotional and reflect on one verse.", Action: models.ActionDevotionalComplete, Points: 15},
	{Key: "pray_for_three", Title: "Stand in the Gap", Description: "Pray for three requests on the prayer wall.", Action: models.ActionPrayFor, Points: 15},
	{Key: "encourage_member", Title: "Encourager", Description: "Reply to a forum topic with a word of encouragement.", Action: models.ActionForumReply, Points: 15},
	{Key: "pray_along", Title: "Pray Along", Description: "Complete a guided pray-along from start to finish.", Action: models.ActionPrayerComplete, Points: 15},
	{Key: "study_section", Title: "Dig Deeper", Description: "Work through a study guide section and its questions.", Action: models.ActionStudyGuideComplete, Points: 15},
	{Key: "share_request", Title: "Ask Boldly", Description: "Share a prayer request with your community.", Action: models.ActionPrayerRequest, Points: 15},
	{Key: "start_conversation", Title: "Start a Conversation", Description: "Open a new forum topic about faith and Greek life.", Action: models.ActionForumTopic, Points: 15},
}

func Achievements() []models.Achievement {
	out := make([]models.Achievement, len(achievementCatalog))
	copy(out, achievementCatalog)
	return out
}

func Challenges() []models.DailyChallenge {
	out := make([]models.DailyChallenge, len(challengeCatalog))
	copy(out, challengeCatalog)
	return out
}

func FindAchievement(key string) (models.Achievement, bool) {
	for _, a := range achievementCatalog {
		if a.Key == key {
			return a, true
		}
	}
	return models.Achievement{}, false
}

// ChallengeFor picks the challenge of the UTC day containing t.
func ChallengeFor(t time.Time) models.DailyChallenge {
	day := t.UTC().YearDay()
	return challengeCatalog[day%len(challengeCatalog)]
}

// MetricValue reads the stat an achievement criterion refers to.
func MetricValue(stats models.Stats, metric string) int {
	switch metric {
	case models.MetricDevotionals:
		return stats.Devotionals
	case models.MetricStreak:
		return stats.LongestStreak
	case models.MetricPrayedFor:
		return stats.PrayedFor
	case models.MetricPrayerRequests:
		return stats.PrayerRequests
	case models.MetricForumPosts:
		return stats.ForumPosts
	case models.MetricStudyGuides:
		return stats.StudyGuides
	case models.MetricPoints:
		return stats.TotalPoints
	case models.MetricChallenges:
		return stats.Challenges
	default:
		return 0
	}
}

// Eligible returns the catalog entries whose criteria the stats satisfy.
func Eligible(stats models.Stats) []models.Achievement {
	var out []models.Achievement
	for _, a := range achievementCatalog {
		if MetricValue(stats, a.Criteria.Metric) >= a.Criteria.Threshold {
			out = append(out, a)
		}
	}
	return out
}

// NewlyEligible is Eligible minus the keys already unlocked.
func NewlyEligible(stats models.Stats, unlocked map[string]bool) []models.Achievement {
	var out []models.Achievement
	for _, a := range Eligible(stats) {
		if !unlocked[a.Key] {
			out = append(out, a)
		}
	}
	return out
}
