package contentRepo

import (
	"context"
	"errors"

	"sacredgreeks/models"
)

var (
	ErrContentNotFound = errors.New("content not found")
	ErrDuplicate       = errors.New("duplicate entry")
)

// ContentRepository stores devotionals, prayers and study guides, plus the
// per-user bookmarks and completions that reference them.
type ContentRepository interface {
	Create(ctx context.Context, c *models.Content) error
	Update(ctx context.Context, c *models.Content) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Content, error)
	List(ctx context.Context, filter models.ContentFilter) ([]models.Content, error)
	// LatestDevotionalOnOrBefore returns the devotional with the greatest publishDate <= date.
	LatestDevotionalOnOrBefore(ctx context.Context, date string) (*models.Content, error)

	AddBookmark(ctx context.Context, b *models.Bookmark) error
	RemoveBookmark(ctx context.Context, userID, contentID string) error
	ListBookmarks(ctx context.Context, userID, kind string) ([]models.Bookmark, error)

	// AddCompletion returns ErrDuplicate when the user already completed the content that day.
	AddCompletion(ctx context.Context, c *models.Completion) error
}
