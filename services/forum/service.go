package forum

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	forumRepo "sacredgreeks/database/repository/forum"
	"sacredgreeks/models"
	"sacredgreeks/services/tasks"
	"sacredgreeks/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const (
	minTitleLen = 3
	maxTitleLen = 150
	maxBodyLen  = 10000
)

func (s *DefaultForumService) Categories() []models.ForumCategory {
	return Categories()
}

func (s *DefaultForumService) authorName(ctx context.Context, userID string) string {
	if s.Users == nil {
		return "Member"
	}
	u, err := s.Users.GetByIDWithProjection(ctx, userID, bson.M{"id": 1, "displayName": 1})
	if err != nil || u == nil || u.DisplayName == "" {
		return "Member"
	}
	return u.DisplayName
}

func (s *DefaultForumService) reward(ctx context.Context, userID, action, refID string) {
	logger := utils.GetLogger()
	if s.Points != nil {
		if _, err := s.Points.Award(ctx, userID, action, refID); err != nil {
			logger.Warn("forum: award failed", zap.String("userID", userID), zap.Error(err))
		}
	}
	if err := tasks.EnqueueAchievementEvaluation(ctx, s.Queue, userID); err != nil {
		logger.Warn("forum: enqueue evaluation failed", zap.String("userID", userID), zap.Error(err))
	}
}

func (s *DefaultForumService) CreateTopic(ctx context.Context, userID string, req models.CreateTopicRequest) (*models.Topic, error) {
	if !categoryExists(req.CategoryID) {
		return nil, ErrUnknownCategory
	}
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	n := utf8.RuneCountInString(title)
	if n < minTitleLen || n > maxTitleLen || body == "" || utf8.RuneCountInString(body) > maxBodyLen {
		return nil, ErrInvalidInput
	}

	now := s.now()
	t := &models.Topic{
		ID:          uuid.New().String(),
		CategoryID:  req.CategoryID,
		UserID:      userID,
		AuthorName:  s.authorName(ctx, userID),
		Title:       title,
		Body:        body,
		LastReplyAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateTopic(ctx, t); err != nil {
		utils.GetLogger().Error("forum: create topic failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to create topic")
	}
	s.reward(ctx, userID, models.ActionForumTopic, t.ID)
	return t, nil
}

func (s *DefaultForumService) ListTopics(ctx context.Context, categoryID string, limit, offset int) ([]models.Topic, error) {
	if categoryID != "" && !categoryExists(categoryID) {
		return nil, ErrUnknownCategory
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	topics, err := s.Repo.ListTopics(ctx, categoryID, limit, offset)
	if err != nil {
		utils.GetLogger().Error("forum: list topics failed", zap.Error(err))
		return nil, fmt.Errorf("failed to list topics")
	}
	return topics, nil
}

func (s *DefaultForumService) loadTopic(ctx context.Context, id string) (*models.Topic, error) {
	t, err := s.Repo.GetTopic(ctx, id)
	if err != nil {
		utils.GetLogger().Error("forum: topic lookup failed", zap.String("topicID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to load topic")
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *DefaultForumService) GetTopic(ctx context.Context, id string) (*models.TopicWithReplies, error) {
	t, err := s.loadTopic(ctx, id)
	if err != nil {
		return nil, err
	}
	replies, err := s.Repo.ListReplies(ctx, id)
	if err != nil {
		utils.GetLogger().Error("forum: list replies failed", zap.String("topicID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to load replies")
	}
	return &models.TopicWithReplies{Topic: *t, Replies: replies}, nil
}

func (s *DefaultForumService) Reply(ctx context.Context, userID, topicID, body string) (*models.Reply, error) {
	body = strings.TrimSpace(body)
	if body == "" || utf8.RuneCountInString(body) > maxBodyLen {
		return nil, ErrInvalidInput
	}
	t, err := s.loadTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if t.Locked {
		return nil, ErrTopicLocked
	}

	r := &models.Reply{
		ID:         uuid.New().String(),
		TopicID:    topicID,
		UserID:     userID,
		AuthorName: s.authorName(ctx, userID),
		Body:       body,
		CreatedAt:  s.now(),
	}
	if err := s.Repo.AddReply(ctx, r); err != nil {
		if errors.Is(err, forumRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		utils.GetLogger().Error("forum: reply failed", zap.String("topicID", topicID), zap.Error(err))
		return nil, fmt.Errorf("failed to post reply")
	}
	s.reward(ctx, userID, models.ActionForumReply, r.ID)
	return r, nil
}

func (s *DefaultForumService) DeleteTopic(ctx context.Context, userID, topicID string, isAdmin bool) error {
	t, err := s.loadTopic(ctx, topicID)
	if err != nil {
		return err
	}
	if t.UserID != userID && !isAdmin {
		return ErrForbidden
	}
	if err := s.Repo.DeleteTopic(ctx, topicID); err != nil {
		if errors.Is(err, forumRepo.ErrNotFound) {
			return ErrNotFound
		}
		utils.GetLogger().Error("forum: delete topic failed", zap.String("topicID", topicID), zap.Error(err))
		return fmt.Errorf("failed to delete topic")
	}
	return nil
}

func (s *DefaultForumService) DeleteReply(ctx context.Context, userID, replyID string, isAdmin bool) error {
	r, err := s.Repo.GetReply(ctx, replyID)
	if err != nil {
		utils.GetLogger().Error("forum: reply lookup failed", zap.String("replyID", replyID), zap.Error(err))
		return fmt.Errorf("failed to load reply")
	}
	if r == nil {
		return ErrNotFound
	}
	if r.UserID != userID && !isAdmin {
		return ErrForbidden
	}
	if err := s.Repo.DeleteReply(ctx, r); err != nil {
		if errors.Is(err, forumRepo.ErrNotFound) {
			return ErrNotFound
		}
		utils.GetLogger().Error("forum: delete reply failed", zap.String("replyID", replyID), zap.Error(err))
		return fmt.Errorf("failed to delete reply")
	}
	return nil
}

func (s *DefaultForumService) setFlag(ctx context.Context, topicID, flag string, v bool) error {
	if err := s.Repo.SetTopicFlag(ctx, topicID, flag, v); err != nil {
		if errors.Is(err, forumRepo.ErrNotFound) {
			return ErrNotFound
		}
		utils.GetLogger().Error("forum: set flag failed", zap.String("topicID", topicID), zap.String("flag", flag), zap.Error(err))
		return fmt.Errorf("failed to update topic")
	}
	return nil
}

func (s *DefaultForumService) SetPinned(ctx context.Context, topicID string, pinned bool) error {
	return s.setFlag(ctx, topicID, "pinned", pinned)
}

func (s *DefaultForumService) SetLocked(ctx context.Context, topicID string, locked bool) error {
	return s.setFlag(ctx, topicID, "locked", locked)
}
