package forum

import (
	"context"
	"time"

	forumRepo "sacredgreeks/database/repository/forum"
	userRepo "sacredgreeks/database/repository/user"
	"sacredgreeks/models"
	"sacredgreeks/services/tasks"
)

type ForumService interface {
	Categories() []models.ForumCategory
	CreateTopic(ctx context.Context, userID string, req models.CreateTopicRequest) (*models.Topic, error)
	ListTopics(ctx context.Context, categoryID string, limit, offset int) ([]models.Topic, error)
	GetTopic(ctx context.Context, id string) (*models.TopicWithReplies, error)
	Reply(ctx context.Context, userID, topicID, body string) (*models.Reply, error)
	DeleteTopic(ctx context.Context, userID, topicID string, isAdmin bool) error
	DeleteReply(ctx context.Context, userID, replyID string, isAdmin bool) error
	SetPinned(ctx context.Context, topicID string, pinned bool) error
	SetLocked(ctx context.Context, topicID string, locked bool) error
}

type PointAwarder interface {
	Award(ctx context.Context, userID, action, refID string) (int, error)
}

type DefaultForumService struct {
	Repo   forumRepo.ForumRepository
	Users  userRepo.UserRepository
	Points PointAwarder
	Queue  tasks.Enqueuer
	NowFn  func() time.Time
}

func (s *DefaultForumService) now() time.Time {
	if s.NowFn != nil {
		return s.NowFn()
	}
	return time.Now()
}
