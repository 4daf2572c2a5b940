package engagement

import (
	"context"
	"testing"
	"time"

	gamificationRepo "sacredgreeks/database/repository/gamification"
	"sacredgreeks/models"
	"sacredgreeks/services/gamification"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockRepo implements the ledger queries the service uses; other methods panic.
type mockRepo struct {
	gamificationRepo.GamificationRepository
	mock.Mock
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

type stubDemo struct {
	scenario *models.DemoScenario
}

func (d stubDemo) Scenarios() []models.DemoScenario { return nil }

func (d stubDemo) Load(context.Context, string) (models.DemoSettings, error) {
	return models.DemoSettings{}, nil
}

func (d stubDemo) Save(_ context.Context, _ string, s models.DemoSettings) (models.DemoSettings, error) {
	return s, nil
}

func (d stubDemo) Current(context.Context, string) (*models.DemoScenario, error) {
	return d.scenario, nil
}

var now = time.Date(2026, 9, 30, 12, 0, 0, 0, time.UTC)

func expectCounts(repo *mockRepo, since string) {
	repo.On("CountByAction", mock.Anything, "u1", since).Return(map[string]int{
		models.ActionDevotionalComplete: 20,
		models.ActionForumReply:         10,
	}, nil)
	repo.On("ActivityDates", mock.Anything, "u1", since, gamification.ActivityActions()).
		Return([]string{"2026-09-29", "2026-09-30"}, nil)
}

func TestScoreComputesOverWindow(t *testing.T) {
	repo := new(mockRepo)
	since := now.AddDate(0, 0, -(WindowDays - 1)).Format("2006-01-02")
	expectCounts(repo, since)

	got, err := (&DefaultEngagementService{Repo: repo}).Score(context.Background(), "u1", now)
	require.NoError(t, err)

	want, _ := Compute(models.ActivityCounts{Devotionals: 20, ForumPosts: 10, ActiveDays: 2})
	assert.Equal(t, want, got.Score)
	assert.Equal(t, Label(want), got.Label)
	assert.Equal(t, 2, got.Counts.ActiveDays)
	assert.False(t, got.Demo)
}

func TestScoreIsCachedUntilInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	repo := new(mockRepo)
	expectCounts(repo, now.AddDate(0, 0, -(WindowDays-1)).Format("2006-01-02"))

	svc := &DefaultEngagementService{Repo: repo, Cache: cache}

	first, err := svc.Score(context.Background(), "u1", now)
	require.NoError(t, err)
	assert.True(t, mr.Exists("engagement:u1"))
	assert.Equal(t, cacheTTL, mr.TTL("engagement:u1"))

	second, err := svc.Score(context.Background(), "u1", now)
	require.NoError(t, err)
	assert.Equal(t, first.Score, second.Score)
	repo.AssertNumberOfCalls(t, "CountByAction", 1)

	require.NoError(t, svc.Invalidate(context.Background(), "u1"))
	assert.False(t, mr.Exists("engagement:u1"))

	_, err = svc.Score(context.Background(), "u1", now)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "CountByAction", 2)
}

func TestScoreUsesDemoScenario(t *testing.T) {
	repo := new(mockRepo)
	svc := &DefaultEngagementService{
		Repo: repo,
		Demo: stubDemo{scenario: &models.DemoScenario{Key: "active_member", EngagementScore: 68, EngagementLabel: models.EngagementActive}},
	}

	got, err := svc.Score(context.Background(), "u1", now)
	require.NoError(t, err)
	assert.True(t, got.Demo)
	assert.Equal(t, 68, got.Score)
	assert.Equal(t, models.EngagementActive, got.Label)
	repo.AssertNotCalled(t, "CountByAction", mock.Anything, mock.Anything, mock.Anything)
}
