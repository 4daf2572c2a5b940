package gamification

import (
	"context"

	userRepo "sacredgreeks/database/repository/user"
	"sacredgreeks/models"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) InsertPointEvent(ctx context.Context, e *models.PointEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockRepo) TotalPoints(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockRepo) CountByAction(ctx context.Context, userID, sinceDate string) (map[string]int, error) {
	args := m.Called(ctx, userID, sinceDate)
	out, _ := args.Get(0).(map[string]int)
	return out, args.Error(1)
}

func (m *mockRepo) ActivityDates(ctx context.Context, userID, sinceDate string, actions []string) ([]string, error) {
	args := m.Called(ctx, userID, sinceDate, actions)
	out, _ := args.Get(0).([]string)
	return out, args.Error(1)
}

func (m *mockRepo) ListUserAchievements(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]models.UserAchievement)
	return out, args.Error(1)
}

func (m *mockRepo) InsertUserAchievement(ctx context.Context, ua *models.UserAchievement) error {
	return m.Called(ctx, ua).Error(0)
}

func (m *mockRepo) InsertChallengeCompletion(ctx context.Context, c *models.ChallengeCompletion) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepo) HasChallengeCompletion(ctx context.Context, userID, date string) (bool, error) {
	args := m.Called(ctx, userID, date)
	return args.Bool(0), args.Error(1)
}

// mockUsers implements the lookups the service uses; other methods panic.
type mockUsers struct {
	userRepo.UserRepository
	mock.Mock
}

func (m *mockUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) GetManyByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).([]models.User)
	return out, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendToUser(ctx context.Context, userID, title, body string, data map[string]string) error {
	return m.Called(ctx, userID, title, body, data).Error(0)
}

type mockMail struct {
	mock.Mock
}

func (m *mockMail) Enqueue(ctx context.Context, msg models.EmailMessage) error {
	return m.Called(ctx, msg).Error(0)
}
