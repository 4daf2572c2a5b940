package content

import (
	"context"

	"sacredgreeks/models"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, c *models.Content) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepo) Update(ctx context.Context, c *models.Content) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*models.Content, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Content)
	return c, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, f models.ContentFilter) ([]models.Content, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]models.Content)
	return out, args.Error(1)
}

func (m *mockRepo) LatestDevotionalOnOrBefore(ctx context.Context, date string) (*models.Content, error) {
	args := m.Called(ctx, date)
	c, _ := args.Get(0).(*models.Content)
	return c, args.Error(1)
}

func (m *mockRepo) AddBookmark(ctx context.Context, b *models.Bookmark) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepo) RemoveBookmark(ctx context.Context, userID, contentID string) error {
	return m.Called(ctx, userID, contentID).Error(0)
}

func (m *mockRepo) ListBookmarks(ctx context.Context, userID, kind string) ([]models.Bookmark, error) {
	args := m.Called(ctx, userID, kind)
	out, _ := args.Get(0).([]models.Bookmark)
	return out, args.Error(1)
}

func (m *mockRepo) AddCompletion(ctx context.Context, c *models.Completion) error {
	return m.Called(ctx, c).Error(0)
}

type stubPremium map[string]bool

func (p stubPremium) IsPremium(_ context.Context, userID string) (bool, error) {
	return p[userID], nil
}

type mockPoints struct {
	mock.Mock
}

func (m *mockPoints) Award(ctx context.Context, userID, action, refID string) (int, error) {
	args := m.Called(ctx, userID, action, refID)
	return args.Int(0), args.Error(1)
}
