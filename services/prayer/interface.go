package prayer

import (
	"context"
	"time"

	prayerRepo "sacredgreeks/database/repository/prayer"
	userRepo "sacredgreeks/database/repository/user"
	"sacredgreeks/models"
	"sacredgreeks/services/tasks"

	"github.com/go-redis/redis/v8"
)

// WallChannel is the Redis channel carrying prayer wall events.
const WallChannel = "prayerwall:events"

const (
	maxTitleLen     = 120
	maxBodyLen      = 2000
	maxTestimonyLen = 2000
)

var Categories = []string{"general", "health", "family", "academics", "chapter", "guidance", "praise"}

type PrayerService interface {
	Create(ctx context.Context, userID string, req models.CreatePrayerRequest) (*models.PrayerRequest, error)
	Wall(ctx context.Context, filter models.WallFilter) ([]models.PrayerRequest, error)
	Mine(ctx context.Context, userID string) ([]models.PrayerRequest, error)
	PrayFor(ctx context.Context, userID, requestID string) (*models.PrayForResult, error)
	MarkAnswered(ctx context.Context, userID, requestID, testimony string) (*models.PrayerRequest, error)
	Delete(ctx context.Context, userID, requestID string, isAdmin bool) error
	// Subscribe streams wall events until ctx is cancelled.
	Subscribe(ctx context.Context) (<-chan models.WallEvent, error)
}

type PointAwarder interface {
	Award(ctx context.Context, userID, action, refID string) (int, error)
}

type DefaultPrayerService struct {
	Repo   prayerRepo.PrayerRepository
	Users  userRepo.UserRepository
	PubSub *redis.Client
	Points PointAwarder
	Queue  tasks.Enqueuer
	NowFn  func() time.Time
}

func (s *DefaultPrayerService) now() time.Time {
	if s.NowFn != nil {
		return s.NowFn()
	}
	return time.Now()
}
