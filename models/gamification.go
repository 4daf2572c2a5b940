package models

import "time"

// Point actions.
const (
	ActionDailyLogin         = "daily_login"
	ActionDevotionalComplete = "devotional_complete"
	ActionPrayerComplete     = "prayer_complete"
	ActionStudyGuideComplete = "study_guide_complete"
	ActionPrayerRequest      = "prayer_request"
	ActionPrayFor            = "prayer_pray_for"
	ActionForumTopic         = "forum_topic"
	ActionForumReply         = "forum_reply"
	ActionDailyChallenge     = "daily_challenge"
	ActionAchievementBonus   = "achievement_bonus"
)

// PointEvent is one row of the points ledger.
type PointEvent struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Action    string    `bson:"action" json:"action"`
	Points    int       `bson:"points" json:"points"`
	RefID     string    `bson:"refId,omitempty" json:"refId,omitempty"`
	Date      string    `bson:"date" json:"date"` // YYYY-MM-DD (UTC)
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Achievement metrics.
const (
	MetricDevotionals    = "devotionals"
	MetricStreak         = "streak"
	MetricPrayedFor      = "prayed_for"
	MetricPrayerRequests = "prayer_requests"
	MetricForumPosts     = "forum_posts"
	MetricStudyGuides    = "study_guides"
	MetricPoints         = "points"
	MetricChallenges     = "challenges"
)

type AchievementCriteria struct {
	Metric    string `json:"metric"`
	Threshold int    `json:"threshold"`
}

type Achievement struct {
	Key         string              `json:"key"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Points      int                 `json:"points"`
	Criteria    AchievementCriteria `json:"criteria"`
}

type UserAchievement struct {
	UserID     string    `bson:"userId" json:"userId"`
	Key        string    `bson:"key" json:"key"`
	UnlockedAt time.Time `bson:"unlockedAt" json:"unlockedAt"`
}

// AchievementStatus is a catalog entry annotated with the caller's progress.
type AchievementStatus struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
	Progress   int        `json:"progress"`
}

type DailyChallenge struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Points      int    `json:"points"`
}

type ChallengeCompletion struct {
	UserID       string    `bson:"userId" json:"userId"`
	ChallengeKey string    `bson:"challengeKey" json:"challengeKey"`
	Date         string    `bson:"date" json:"date"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

type TodayChallenge struct {
	Challenge DailyChallenge `json:"challenge"`
	Date      string         `json:"date"`
	Completed bool           `json:"completed"`
}

// Stats aggregates a member's activity for achievements and display.
type Stats struct {
	TotalPoints    int `json:"totalPoints"`
	Devotionals    int `json:"devotionals"`
	Prayers        int `json:"prayers"`
	PrayedFor      int `json:"prayedFor"`
	PrayerRequests int `json:"prayerRequests"`
	ForumPosts     int `json:"forumPosts"`
	StudyGuides    int `json:"studyGuides"`
	Challenges     int `json:"challenges"`
	CurrentStreak  int `json:"currentStreak"`
	LongestStreak  int `json:"longestStreak"`
}

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Points      int    `json:"points"`
}
