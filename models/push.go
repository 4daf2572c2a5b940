package models

import "time"

type PushSubscription struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"userId" json:"userId"`
	Token      string    `bson:"token" json:"-"`
	Platform   string    `bson:"platform" json:"platform"`
	UserAgent  string    `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	LastSeenAt time.Time `bson:"lastSeenAt" json:"lastSeenAt"`
}

type PushSubscribeRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform" binding:"required,oneof=web ios android"`
}

type PushUnsubscribeRequest struct {
	Token string `json:"token" binding:"required"`
}
