package gamification

import (
	"context"
	"time"

	gamificationRepo "sacredgreeks/database/repository/gamification"
	userRepo "sacredgreeks/database/repository/user"
	"sacredgreeks/models"
	"sacredgreeks/services/email"
	"sacredgreeks/services/tasks"

	"github.com/go-redis/redis/v8"
)

// LeaderboardKey is the sorted set of total points per user.
const LeaderboardKey = "leaderboard:points"

type GamificationService interface {
	Award(ctx context.Context, userID, action, refID string) (int, error)
	TotalPoints(ctx context.Context, userID string) (int, error)
	Stats(ctx context.Context, userID string) (*models.Stats, error)

	EvaluateAchievements(ctx context.Context, userID string) ([]models.Achievement, error)
	Achievements(ctx context.Context, userID string) ([]models.AchievementStatus, error)
	UnlockAchievement(ctx context.Context, userID, key string) (*models.Achievement, bool, error)

	TodayChallenge(ctx context.Context, userID string, now time.Time) (*models.TodayChallenge, error)
	CompleteChallenge(ctx context.Context, userID string, now time.Time) (*models.CompletionResult, error)

	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	RemoveFromLeaderboard(ctx context.Context, userID string) error
}

// Notifier pushes a message to every device a user subscribed.
type Notifier interface {
	SendToUser(ctx context.Context, userID, title, body string, data map[string]string) error
}

type DefaultGamificationService struct {
	Repo  gamificationRepo.GamificationRepository
	Users userRepo.UserRepository
	Cache *redis.Client
	Push  Notifier
	Mail  email.Queue
	Queue tasks.Enqueuer
	NowFn func() time.Time
}

func (s *DefaultGamificationService) now() time.Time {
	if s.NowFn != nil {
		return s.NowFn()
	}
	return time.Now()
}
