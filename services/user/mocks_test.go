package user

import (
	"context"

	"sacredgreeks/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockRepo) GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error) {
	args := m.Called(ctx, id, projection)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockRepo) GetManyByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).([]models.User)
	return out, args.Error(1)
}

func (m *mockRepo) GetAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]models.User)
	return out, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepo) UpdateSetDocument(ctx context.Context, id string, fields bson.M) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockMail struct {
	mock.Mock
}

func (m *mockMail) Enqueue(ctx context.Context, msg models.EmailMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type mockPoints struct {
	mock.Mock
}

func (m *mockPoints) Award(ctx context.Context, userID, action, refID string) (int, error) {
	args := m.Called(ctx, userID, action, refID)
	return args.Int(0), args.Error(1)
}

type mockRankings struct {
	mock.Mock
}

func (m *mockRankings) RemoveFromLeaderboard(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockMedia struct {
	mock.Mock
}

func (m *mockMedia) Delete(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}
