package content

import (
	"context"
	"time"

	contentRepo "sacredgreeks/database/repository/content"
	"sacredgreeks/models"
	"sacredgreeks/services/tasks"
)

// Viewer identifies who is reading content. An empty ID is an anonymous reader.
type Viewer struct {
	ID    string
	Admin bool
}

type ContentService interface {
	List(ctx context.Context, filter models.ContentFilter) ([]models.Content, error)
	Get(ctx context.Context, id string, viewer Viewer) (*models.Content, error)
	DailyDevotional(ctx context.Context, date string, viewer Viewer) (*models.Content, error)
	PrayAlong(ctx context.Context, id string, viewer Viewer) (*models.PrayAlongScript, error)
	Complete(ctx context.Context, viewer Viewer, contentID string) (*models.CompletionResult, error)

	AddBookmark(ctx context.Context, userID, contentID string) (*models.Bookmark, error)
	RemoveBookmark(ctx context.Context, userID, contentID string) error
	ListBookmarks(ctx context.Context, userID, kind string) ([]models.Bookmark, error)

	Create(ctx context.Context, in models.ContentInput) (*models.Content, error)
	Update(ctx context.Context, id string, in models.ContentInput) (*models.Content, error)
	Delete(ctx context.Context, id string) error
}

// PremiumChecker reports whether a member currently has premium access.
type PremiumChecker interface {
	IsPremium(ctx context.Context, userID string) (bool, error)
}

// PointAwarder credits activity points.
type PointAwarder interface {
	Award(ctx context.Context, userID, action, refID string) (int, error)
}

type DefaultContentService struct {
	Repo    contentRepo.ContentRepository
	Premium PremiumChecker
	Points  PointAwarder
	Queue   tasks.Enqueuer
	NowFn   func() time.Time
}

func (s *DefaultContentService) now() time.Time {
	if s.NowFn != nil {
		return s.NowFn()
	}
	return time.Now()
}
