package models

import "time"

type PrayerRequest struct {
	ID          string     `bson:"id" json:"id"`
	UserID      string     `bson:"userId" json:"userId,omitempty"`
	AuthorName  string     `bson:"authorName" json:"authorName,omitempty"`
	Title       string     `bson:"title" json:"title"`
	Body        string     `bson:"body" json:"body"`
	Category    string     `bson:"category,omitempty" json:"category,omitempty"`
	IsPrivate   bool       `bson:"isPrivate" json:"isPrivate"`
	IsAnonymous bool       `bson:"isAnonymous" json:"isAnonymous"`
	IsAnswered  bool       `bson:"isAnswered" json:"isAnswered"`
	AnsweredAt  *time.Time `bson:"answeredAt,omitempty" json:"answeredAt,omitempty"`
	Testimony   string     `bson:"testimony,omitempty" json:"testimony,omitempty"`
	PrayerCount int        `bson:"prayerCount" json:"prayerCount"`
	PrayedBy    []string   `bson:"prayedBy" json:"-"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

type CreatePrayerRequest struct {
	Title       string `json:"title" binding:"required"`
	Body        string `json:"body" binding:"required"`
	Category    string `json:"category"`
	IsPrivate   bool   `json:"isPrivate"`
	IsAnonymous bool   `json:"isAnonymous"`
}

type WallFilter struct {
	Category string
	Answered *bool
	Limit    int
	Offset   int
}

type PrayForResult struct {
	PrayerCount   int  `json:"prayerCount"`
	AlreadyPrayed bool `json:"alreadyPrayed"`
	PointsEarned  int  `json:"pointsEarned"`
}

const (
	WallEventCreated  = "created"
	WallEventPrayed   = "prayed"
	WallEventAnswered = "answered"
	WallEventDeleted  = "deleted"
)

// WallEvent is pushed to prayer-wall subscribers whenever a public request changes.
type WallEvent struct {
	Type        string         `json:"type"`
	RequestID   string         `json:"requestId"`
	PrayerCount int            `json:"prayerCount,omitempty"`
	Request     *PrayerRequest `json:"request,omitempty"`
	At          time.Time      `json:"at"`
}
