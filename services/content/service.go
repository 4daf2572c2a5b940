package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	contentRepo "sacredgreeks/database/repository/content"
	"sacredgreeks/models"
	"sacredgreeks/services/tasks"
	"sacredgreeks/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

var completionActions = map[string]string{
	models.KindDevotional: models.ActionDevotionalComplete,
	models.KindPrayer:     models.ActionPrayerComplete,
	models.KindStudyGuide: models.ActionStudyGuideComplete,
}

func (s *DefaultContentService) List(ctx context.Context, f models.ContentFilter) ([]models.Content, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	items, err := s.Repo.List(ctx, f)
	if err != nil {
		utils.GetLogger().Error("content: list failed", zap.Error(err))
		return nil, fmt.Errorf("failed to list content")
	}
	return items, nil
}

func (s *DefaultContentService) load(ctx context.Context, id string) (*models.Content, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		utils.GetLogger().Error("content: lookup failed", zap.String("contentID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to load content")
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *DefaultContentService) checkAccess(ctx context.Context, c *models.Content, viewer Viewer) error {
	if !c.Premium || viewer.Admin {
		return nil
	}
	if viewer.ID == "" || s.Premium == nil {
		return ErrPremiumRequired
	}
	ok, err := s.Premium.IsPremium(ctx, viewer.ID)
	if err != nil {
		utils.GetLogger().Error("content: premium check failed", zap.String("userID", viewer.ID), zap.Error(err))
		return fmt.Errorf("failed to verify subscription")
	}
	if !ok {
		return ErrPremiumRequired
	}
	return nil
}

func (s *DefaultContentService) Get(ctx context.Context, id string, viewer Viewer) (*models.Content, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(ctx, c, viewer); err != nil {
		return nil, err
	}
	return c, nil
}

// DailyDevotional returns the devotional published on date, or the latest one before it.
// Premium devotionals are gated like any other content.
func (s *DefaultContentService) DailyDevotional(ctx context.Context, date string, viewer Viewer) (*models.Content, error) {
	if date == "" {
		date = s.now().UTC().Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidInput
	}
	c, err := s.Repo.LatestDevotionalOnOrBefore(ctx, date)
	if err != nil {
		utils.GetLogger().Error("content: devotional lookup failed", zap.String("date", date), zap.Error(err))
		return nil, fmt.Errorf("failed to load devotional")
	}
	if c == nil {
		return nil, ErrNotFound
	}
	if err := s.checkAccess(ctx, c, viewer); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *DefaultContentService) PrayAlong(ctx context.Context, id string, viewer Viewer) (*models.PrayAlongScript, error) {
	c, err := s.Get(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	if c.Kind != models.KindPrayer {
		return nil, ErrNotAPrayer
	}
	lines, total := Timeline(c.Lines)
	return &models.PrayAlongScript{ContentID: c.ID, Title: c.Title, TotalSeconds: total, Lines: lines}, nil
}

// Complete records one completion per user, content and UTC day. Repeats earn nothing.
func (s *DefaultContentService) Complete(ctx context.Context, viewer Viewer, contentID string) (*models.CompletionResult, error) {
	logger := utils.GetLogger()
	userID := viewer.ID

	c, err := s.Get(ctx, contentID, viewer)
	if err != nil {
		return nil, err
	}

	now := s.now()
	err = s.Repo.AddCompletion(ctx, &models.Completion{
		UserID:    userID,
		ContentID: c.ID,
		Kind:      c.Kind,
		Date:      now.UTC().Format(dateLayout),
		CreatedAt: now,
	})
	if errors.Is(err, contentRepo.ErrDuplicate) {
		return &models.CompletionResult{Completed: false}, nil
	}
	if err != nil {
		logger.Error("content: completion failed", zap.String("userID", userID), zap.String("contentID", contentID), zap.Error(err))
		return nil, fmt.Errorf("failed to record completion")
	}

	res := &models.CompletionResult{Completed: true}
	if action, ok := completionActions[c.Kind]; ok && s.Points != nil {
		pts, err := s.Points.Award(ctx, userID, action, c.ID)
		if err != nil {
			logger.Warn("content: award failed", zap.String("userID", userID), zap.Error(err))
		}
		res.PointsEarned = pts
	}
	if err := tasks.EnqueueAchievementEvaluation(ctx, s.Queue, userID); err != nil {
		logger.Warn("content: enqueue evaluation failed", zap.String("userID", userID), zap.Error(err))
	}
	return res, nil
}

func (s *DefaultContentService) AddBookmark(ctx context.Context, userID, contentID string) (*models.Bookmark, error) {
	c, err := s.load(ctx, contentID)
	if err != nil {
		return nil, err
	}
	b := &models.Bookmark{
		ID:        uuid.New().String(),
		UserID:    userID,
		ContentID: c.ID,
		Kind:      c.Kind,
		Title:     c.Title,
		CreatedAt: s.now(),
	}
	if err := s.Repo.AddBookmark(ctx, b); err != nil && !errors.Is(err, contentRepo.ErrDuplicate) {
		utils.GetLogger().Error("content: bookmark failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to add bookmark")
	}
	return b, nil
}

func (s *DefaultContentService) RemoveBookmark(ctx context.Context, userID, contentID string) error {
	if err := s.Repo.RemoveBookmark(ctx, userID, contentID); err != nil {
		utils.GetLogger().Error("content: unbookmark failed", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to remove bookmark")
	}
	return nil
}

func (s *DefaultContentService) ListBookmarks(ctx context.Context, userID, kind string) ([]models.Bookmark, error) {
	if kind != "" && !contains(models.ContentKinds, kind) {
		return nil, ErrInvalidInput
	}
	out, err := s.Repo.ListBookmarks(ctx, userID, kind)
	if err != nil {
		utils.GetLogger().Error("content: list bookmarks failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list bookmarks")
	}
	return out, nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// validate normalizes the input and checks kind, pillar and publish date.
func validate(in *models.ContentInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Kind = strings.TrimSpace(in.Kind)
	if in.Title == "" || !contains(models.ContentKinds, in.Kind) {
		return ErrInvalidInput
	}
	if in.ProofPillar != "" && !contains(models.ProofPillars, in.ProofPillar) {
		return ErrInvalidInput
	}
	if in.PublishDate != "" {
		if _, err := time.Parse(dateLayout, in.PublishDate); err != nil {
			return ErrInvalidInput
		}
	}
	if in.Kind == models.KindDevotional && in.PublishDate == "" {
		return ErrInvalidInput
	}
	if in.Kind == models.KindPrayer && len(in.Lines) == 0 && strings.TrimSpace(in.Body) == "" {
		return ErrInvalidInput
	}
	in.Slug = Slugify(in.Slug)
	if in.Slug == "" {
		in.Slug = Slugify(in.Title)
	}
	if in.Slug == "" {
		return ErrInvalidInput
	}
	return nil
}

func apply(c *models.Content, in models.ContentInput) {
	c.Kind = in.Kind
	c.Title = in.Title
	c.Slug = in.Slug
	c.Summary = in.Summary
	c.Body = in.Body
	c.Scripture = in.Scripture
	c.ProofPillar = in.ProofPillar
	c.PublishDate = in.PublishDate
	c.Lines = in.Lines
	c.Sections = in.Sections
	c.Premium = in.Premium
	c.Tags = in.Tags
	c.ImageURL = in.ImageURL
}

func (s *DefaultContentService) Create(ctx context.Context, in models.ContentInput) (*models.Content, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	now := s.now()
	c := &models.Content{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	apply(c, in)

	if err := s.Repo.Create(ctx, c); err != nil {
		if errors.Is(err, contentRepo.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		utils.GetLogger().Error("content: create failed", zap.Error(err))
		return nil, fmt.Errorf("failed to create content")
	}
	return c, nil
}

func (s *DefaultContentService) Update(ctx context.Context, id string, in models.ContentInput) (*models.Content, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(c, in)
	c.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, contentRepo.ErrDuplicate):
			return nil, ErrSlugTaken
		case errors.Is(err, contentRepo.ErrContentNotFound):
			return nil, ErrNotFound
		}
		utils.GetLogger().Error("content: update failed", zap.String("contentID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update content")
	}
	return c, nil
}

func (s *DefaultContentService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, contentRepo.ErrContentNotFound) {
			return ErrNotFound
		}
		utils.GetLogger().Error("content: delete failed", zap.String("contentID", id), zap.Error(err))
		return fmt.Errorf("failed to delete content")
	}
	return nil
}
