package gamificationRepo

import (
	"context"
	"errors"

	"sacredgreeks/models"
)

// ErrDuplicate signals that a unique (per user/day or per user/key) row already exists.
var ErrDuplicate = errors.New("duplicate entry")

type GamificationRepository interface {
	InsertPointEvent(ctx context.Context, e *models.PointEvent) error
	// TotalPoints sums every ledger row for the user.
	TotalPoints(ctx context.Context, userID string) (int, error)
	// CountByAction counts ledger rows per action dated on or after sinceDate ("" for all time).
	CountByAction(ctx context.Context, userID, sinceDate string) (map[string]int, error)
	// ActivityDates returns the distinct days on which the user earned points for any of the actions.
	ActivityDates(ctx context.Context, userID, sinceDate string, actions []string) ([]string, error)

	ListUserAchievements(ctx context.Context, userID string) ([]models.UserAchievement, error)
	InsertUserAchievement(ctx context.Context, ua *models.UserAchievement) error

	InsertChallengeCompletion(ctx context.Context, c *models.ChallengeCompletion) error
	HasChallengeCompletion(ctx context.Context, userID, date string) (bool, error)
}
