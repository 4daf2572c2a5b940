package prayer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	prayerRepo "sacredgreeks/database/repository/prayer"
	"sacredgreeks/models"
	"sacredgreeks/services/tasks"
	"sacredgreeks/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func validCategory(c string) bool {
	for _, x := range Categories {
		if x == c {
			return true
		}
	}
	return false
}

// publicView hides who prayed and, for anonymous requests, who asked.
func publicView(p models.PrayerRequest) models.PrayerRequest {
	p.PrayedBy = nil
	if p.IsAnonymous {
		p.AuthorName = ""
		p.UserID = ""
	}
	return p
}

func (s *DefaultPrayerService) authorName(ctx context.Context, userID string) string {
	if s.Users == nil {
		return ""
	}
	u, err := s.Users.GetByIDWithProjection(ctx, userID, bson.M{"id": 1, "displayName": 1})
	if err != nil || u == nil {
		return ""
	}
	return u.DisplayName
}

func (s *DefaultPrayerService) Create(ctx context.Context, userID string, req models.CreatePrayerRequest) (*models.PrayerRequest, error) {
	logger := utils.GetLogger()

	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	category := strings.TrimSpace(strings.ToLower(req.Category))
	if category == "" {
		category = "general"
	}
	if title == "" || body == "" ||
		utf8.RuneCountInString(title) > maxTitleLen ||
		utf8.RuneCountInString(body) > maxBodyLen ||
		!validCategory(category) {
		return nil, ErrInvalidInput
	}

	now := s.now()
	p := &models.PrayerRequest{
		ID:          uuid.New().String(),
		UserID:      userID,
		AuthorName:  s.authorName(ctx, userID),
		Title:       title,
		Body:        body,
		Category:    category,
		IsPrivate:   req.IsPrivate,
		IsAnonymous: req.IsAnonymous,
		PrayedBy:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		logger.Error("prayer: create failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to create prayer request")
	}

	if s.Points != nil {
		if _, err := s.Points.Award(ctx, userID, models.ActionPrayerRequest, p.ID); err != nil {
			logger.Warn("prayer: award failed", zap.String("userID", userID), zap.Error(err))
		}
	}
	if err := tasks.EnqueueAchievementEvaluation(ctx, s.Queue, userID); err != nil {
		logger.Warn("prayer: enqueue evaluation failed", zap.String("userID", userID), zap.Error(err))
	}

	if !p.IsPrivate {
		view := publicView(*p)
		s.publish(ctx, models.WallEvent{Type: models.WallEventCreated, RequestID: p.ID, Request: &view, At: now})
	}
	return p, nil
}

func (s *DefaultPrayerService) Wall(ctx context.Context, f models.WallFilter) ([]models.PrayerRequest, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))

	items, err := s.Repo.ListPublic(ctx, f)
	if err != nil {
		utils.GetLogger().Error("prayer: wall query failed", zap.Error(err))
		return nil, fmt.Errorf("failed to load prayer wall")
	}
	out := make([]models.PrayerRequest, 0, len(items))
	for _, p := range items {
		out = append(out, publicView(p))
	}
	return out, nil
}

func (s *DefaultPrayerService) Mine(ctx context.Context, userID string) ([]models.PrayerRequest, error) {
	items, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		utils.GetLogger().Error("prayer: list mine failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to load prayer requests")
	}
	for i := range items {
		items[i].PrayedBy = nil
	}
	return items, nil
}

func (s *DefaultPrayerService) load(ctx context.Context, id string) (*models.PrayerRequest, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		utils.GetLogger().Error("prayer: lookup failed", zap.String("requestID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to load prayer request")
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// PrayFor records that userID prayed. Only the first prayer per user counts.
func (s *DefaultPrayerService) PrayFor(ctx context.Context, userID, requestID string) (*models.PrayForResult, error) {
	logger := utils.GetLogger()

	p, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if p.IsPrivate && p.UserID != userID {
		return nil, ErrNotFound
	}

	count, added, err := s.Repo.AddPrayer(ctx, requestID, userID)
	if err != nil {
		if errors.Is(err, prayerRepo.ErrPrayerNotFound) {
			return nil, ErrNotFound
		}
		logger.Error("prayer: pray failed", zap.String("requestID", requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to record prayer")
	}
	if !added {
		return &models.PrayForResult{PrayerCount: count, AlreadyPrayed: true}, nil
	}

	res := &models.PrayForResult{PrayerCount: count}
	if s.Points != nil {
		pts, err := s.Points.Award(ctx, userID, models.ActionPrayFor, requestID)
		if err != nil {
			logger.Warn("prayer: award failed", zap.String("userID", userID), zap.Error(err))
		}
		res.PointsEarned = pts
	}
	if err := tasks.EnqueueAchievementEvaluation(ctx, s.Queue, userID); err != nil {
		logger.Warn("prayer: enqueue evaluation failed", zap.String("userID", userID), zap.Error(err))
	}
	if !p.IsPrivate {
		s.publish(ctx, models.WallEvent{Type: models.WallEventPrayed, RequestID: requestID, PrayerCount: count, At: s.now()})
	}
	return res, nil
}

func (s *DefaultPrayerService) MarkAnswered(ctx context.Context, userID, requestID, testimony string) (*models.PrayerRequest, error) {
	p, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrForbidden
	}
	testimony = strings.TrimSpace(testimony)
	if utf8.RuneCountInString(testimony) > maxTestimonyLen {
		return nil, ErrInvalidInput
	}

	updated, err := s.Repo.MarkAnswered(ctx, requestID, testimony)
	if err != nil {
		if errors.Is(err, prayerRepo.ErrPrayerNotFound) {
			return nil, ErrNotFound
		}
		utils.GetLogger().Error("prayer: mark answered failed", zap.String("requestID", requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to update prayer request")
	}

	if !updated.IsPrivate {
		view := publicView(*updated)
		s.publish(ctx, models.WallEvent{Type: models.WallEventAnswered, RequestID: requestID, PrayerCount: updated.PrayerCount, Request: &view, At: s.now()})
	}
	return updated, nil
}

func (s *DefaultPrayerService) Delete(ctx context.Context, userID, requestID string, isAdmin bool) error {
	p, err := s.load(ctx, requestID)
	if err != nil {
		return err
	}
	if p.UserID != userID && !isAdmin {
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, requestID); err != nil {
		if errors.Is(err, prayerRepo.ErrPrayerNotFound) {
			return ErrNotFound
		}
		utils.GetLogger().Error("prayer: delete failed", zap.String("requestID", requestID), zap.Error(err))
		return fmt.Errorf("failed to delete prayer request")
	}
	if !p.IsPrivate {
		s.publish(ctx, models.WallEvent{Type: models.WallEventDeleted, RequestID: requestID, At: s.now()})
	}
	return nil
}
