package models

import "time"

type GuidedPrayerRequest struct {
	Intention string `json:"intention" binding:"required,max=500"`
	Pillar    string `json:"pillar"`
}

type GuidedPrayer struct {
	Title        string          `json:"title"`
	Pillar       string          `json:"pillar,omitempty"`
	Lines        []PrayAlongLine `json:"lines"`
	TotalSeconds int             `json:"totalSeconds"`
}

// AIContext is the short-lived conversation memory kept per user.
type AIContext struct {
	LastIntention string    `json:"lastIntention"`
	LastPrayer    string    `json:"lastPrayer"`
	Requests      int       `json:"requests"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
