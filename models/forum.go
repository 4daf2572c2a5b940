package models

import "time"

type ForumCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Topic struct {
	ID          string    `bson:"id" json:"id"`
	CategoryID  string    `bson:"categoryId" json:"categoryId"`
	UserID      string    `bson:"userId" json:"userId"`
	AuthorName  string    `bson:"authorName" json:"authorName"`
	Title       string    `bson:"title" json:"title"`
	Body        string    `bson:"body" json:"body"`
	ReplyCount  int       `bson:"replyCount" json:"replyCount"`
	LastReplyAt time.Time `bson:"lastReplyAt" json:"lastReplyAt"`
	Pinned      bool      `bson:"pinned" json:"pinned"`
	Locked      bool      `bson:"locked" json:"locked"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Reply struct {
	ID         string    `bson:"id" json:"id"`
	TopicID    string    `bson:"topicId" json:"topicId"`
	UserID     string    `bson:"userId" json:"userId"`
	AuthorName string    `bson:"authorName" json:"authorName"`
	Body       string    `bson:"body" json:"body"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

type TopicWithReplies struct {
	Topic   Topic   `json:"topic"`
	Replies []Reply `json:"replies"`
}

type CreateTopicRequest struct {
	CategoryID string `json:"categoryId" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

type CreateReplyRequest struct {
	Body string `json:"body" binding:"required,max=5000"`
}
