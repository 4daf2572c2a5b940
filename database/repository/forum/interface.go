package forumRepo

import (
	"context"
	"errors"

	"sacredgreeks/models"
)

var ErrNotFound = errors.New("forum entry not found")

type ForumRepository interface {
	CreateTopic(ctx context.Context, t *models.Topic) error
	GetTopic(ctx context.Context, id string) (*models.Topic, error)
	// ListTopics returns pinned topics first, then by most recent activity.
	ListTopics(ctx context.Context, categoryID string, limit, offset int) ([]models.Topic, error)
	SetTopicFlag(ctx context.Context, id, flag string, value bool) error
	DeleteTopic(ctx context.Context, id string) error

	// AddReply inserts the reply and bumps the topic's counters.
	AddReply(ctx context.Context, r *models.Reply) error
	GetReply(ctx context.Context, id string) (*models.Reply, error)
	ListReplies(ctx context.Context, topicID string) ([]models.Reply, error)
	DeleteReply(ctx context.Context, reply *models.Reply) error
}
