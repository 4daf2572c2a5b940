package prayer

import (
	"context"

	"sacredgreeks/models"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, p *models.PrayerRequest) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*models.PrayerRequest, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.PrayerRequest)
	return p, args.Error(1)
}

func (m *mockRepo) ListPublic(ctx context.Context, f models.WallFilter) ([]models.PrayerRequest, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]models.PrayerRequest)
	return out, args.Error(1)
}

func (m *mockRepo) ListByUser(ctx context.Context, userID string) ([]models.PrayerRequest, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]models.PrayerRequest)
	return out, args.Error(1)
}

func (m *mockRepo) AddPrayer(ctx context.Context, requestID, userID string) (int, bool, error) {
	args := m.Called(ctx, requestID, userID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *mockRepo) MarkAnswered(ctx context.Context, requestID, testimony string) (*models.PrayerRequest, error) {
	args := m.Called(ctx, requestID, testimony)
	p, _ := args.Get(0).(*models.PrayerRequest)
	return p, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockPoints struct {
	mock.Mock
}

func (m *mockPoints) Award(ctx context.Context, userID, action, refID string) (int, error) {
	args := m.Called(ctx, userID, action, refID)
	return args.Int(0), args.Error(1)
}
