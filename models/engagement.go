package models

import "time"

// Engagement labels, highest first.
const (
	EngagementChampion = "champion"
	EngagementActive   = "active"
	EngagementEngaged  = "engaged"
	EngagementCasual   = "casual"
	EngagementAtRisk   = "at_risk"
	EngagementInactive = "inactive"
)

// ActivityCounts are raw counts over the scoring window.
type ActivityCounts struct {
	Devotionals    int `json:"devotionals"`
	Prayers        int `json:"prayers"`
	PrayerRequests int `json:"prayerRequests"`
	PrayedFor      int `json:"prayedFor"`
	ForumPosts     int `json:"forumPosts"`
	ActiveDays     int `json:"activeDays"`
}

type EngagementComponents struct {
	Devotional  float64 `json:"devotional"`
	Prayer      float64 `json:"prayer"`
	Community   float64 `json:"community"`
	Consistency float64 `json:"consistency"`
}

type EngagementScore struct {
	UserID     string               `json:"userId"`
	Score      int                  `json:"score"`
	Label      string               `json:"label"`
	Components EngagementComponents `json:"components"`
	Counts     ActivityCounts       `json:"counts"`
	WindowDays int                  `json:"windowDays"`
	Demo       bool                 `json:"demo,omitempty"`
	ComputedAt time.Time            `json:"computedAt"`
}
