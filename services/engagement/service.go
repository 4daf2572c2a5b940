package engagement

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gamificationRepo "sacredgreeks/database/repository/gamification"
	"sacredgreeks/models"
	"sacredgreeks/services/demo"
	"sacredgreeks/services/gamification"
	"sacredgreeks/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheTTL = 15 * time.Minute

type EngagementService interface {
	Score(ctx context.Context, userID string, now time.Time) (*models.EngagementScore, error)
	Invalidate(ctx context.Context, userID string) error
}

type DefaultEngagementService struct {
	Repo  gamificationRepo.GamificationRepository
	Cache *redis.Client
	Demo  demo.DemoService
}

func cacheKey(userID string) string {
	return "engagement:" + userID
}

func (s *DefaultEngagementService) Score(ctx context.Context, userID string, now time.Time) (*models.EngagementScore, error) {
	logger := utils.GetLogger()

	if s.Demo != nil {
		sc, err := s.Demo.Current(ctx, userID)
		if err != nil {
			logger.Warn("engagement: demo lookup failed", zap.String("userID", userID), zap.Error(err))
		} else if sc != nil {
			return &models.EngagementScore{
				UserID:     userID,
				Score:      sc.EngagementScore,
				Label:      sc.EngagementLabel,
				WindowDays: WindowDays,
				Demo:       true,
				ComputedAt: now,
			}, nil
		}
	}

	if cached := s.readCache(ctx, userID); cached != nil {
		return cached, nil
	}

	counts, err := s.counts(ctx, userID, now)
	if err != nil {
		logger.Error("engagement: count failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to compute engagement")
	}

	score, comp := Compute(counts)
	out := &models.EngagementScore{
		UserID:     userID,
		Score:      score,
		Label:      Label(score),
		Components: comp,
		Counts:     counts,
		WindowDays: WindowDays,
		ComputedAt: now,
	}
	s.writeCache(ctx, out)
	return out, nil
}

func (s *DefaultEngagementService) counts(ctx context.Context, userID string, now time.Time) (models.ActivityCounts, error) {
	since := now.UTC().AddDate(0, 0, -(WindowDays - 1)).Format("2006-01-02")

	byAction, err := s.Repo.CountByAction(ctx, userID, since)
	if err != nil {
		return models.ActivityCounts{}, err
	}
	days, err := s.Repo.ActivityDates(ctx, userID, since, gamification.ActivityActions())
	if err != nil {
		return models.ActivityCounts{}, err
	}

	return models.ActivityCounts{
		Devotionals:    byAction[models.ActionDevotionalComplete],
		Prayers:        byAction[models.ActionPrayerComplete],
		PrayerRequests: byAction[models.ActionPrayerRequest],
		PrayedFor:      byAction[models.ActionPrayFor],
		ForumPosts:     byAction[models.ActionForumTopic] + byAction[models.ActionForumReply],
		ActiveDays:     len(days),
	}, nil
}

func (s *DefaultEngagementService) readCache(ctx context.Context, userID string) *models.EngagementScore {
	if s.Cache == nil {
		return nil
	}
	raw, err := s.Cache.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("engagement: cache read failed", zap.String("userID", userID), zap.Error(err))
		}
		return nil
	}
	var out models.EngagementScore
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return &out
}

func (s *DefaultEngagementService) writeCache(ctx context.Context, score *models.EngagementScore) {
	if s.Cache == nil {
		return
	}
	b, err := json.Marshal(score)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, cacheKey(score.UserID), b, cacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("engagement: cache write failed", zap.String("userID", score.UserID), zap.Error(err))
	}
}

func (s *DefaultEngagementService) Invalidate(ctx context.Context, userID string) error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Del(ctx, cacheKey(userID)).Err()
}
