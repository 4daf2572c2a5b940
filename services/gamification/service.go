package gamification

import (
	"context"
	"errors"
	"fmt"
	"time"

	gamificationRepo "sacredgreeks/database/repository/gamification"
	"sacredgreeks/models"
	"sacredgreeks/services/email"
	"sacredgreeks/services/tasks"
	"sacredgreeks/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func pointsFor(action, refID string) (int, error) {
	if action == models.ActionAchievementBonus {
		a, ok := FindAchievement(refID)
		if !ok {
			return 0, ErrUnknownAction
		}
		return a.Points, nil
	}
	pts, ok := PointValues[action]
	if !ok {
		return 0, ErrUnknownAction
	}
	return pts, nil
}

// Award appends a ledger row and bumps the leaderboard. A repeated daily_login
// for the same day is absorbed by the unique index and earns 0.
func (s *DefaultGamificationService) Award(ctx context.Context, userID, action, refID string) (int, error) {
	pts, err := pointsFor(action, refID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	ev := &models.PointEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Points:    pts,
		RefID:     refID,
		Date:      now.UTC().Format(dateLayout),
		CreatedAt: now,
	}
	if err := s.Repo.InsertPointEvent(ctx, ev); err != nil {
		if errors.Is(err, gamificationRepo.ErrDuplicate) {
			return 0, nil
		}
		utils.GetLogger().Error("Award: failed to record points",
			zap.String("userID", userID), zap.String("action", action), zap.Error(err))
		return 0, fmt.Errorf("failed to award points")
	}

	if s.Cache != nil {
		if err := s.Cache.ZIncrBy(ctx, LeaderboardKey, float64(pts), userID).Err(); err != nil {
			utils.GetLogger().Warn("Award: leaderboard update failed", zap.String("userID", userID), zap.Error(err))
		}
	}
	return pts, nil
}

func (s *DefaultGamificationService) TotalPoints(ctx context.Context, userID string) (int, error) {
	total, err := s.Repo.TotalPoints(ctx, userID)
	if err != nil {
		utils.GetLogger().Error("TotalPoints: aggregation failed", zap.String("userID", userID), zap.Error(err))
		return 0, fmt.Errorf("failed to load points")
	}
	return total, nil
}

func (s *DefaultGamificationService) Stats(ctx context.Context, userID string) (*models.Stats, error) {
	logger := utils.GetLogger()

	total, err := s.TotalPoints(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts, err := s.Repo.CountByAction(ctx, userID, "")
	if err != nil {
		logger.Error("Stats: count failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to load stats")
	}
	dates, err := s.Repo.ActivityDates(ctx, userID, "", ActivityActions())
	if err != nil {
		logger.Error("Stats: activity dates failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to load stats")
	}

	current, longest := ComputeStreaks(dates, s.now())
	return &models.Stats{
		TotalPoints:    total,
		Devotionals:    counts[models.ActionDevotionalComplete],
		Prayers:        counts[models.ActionPrayerComplete],
		PrayedFor:      counts[models.ActionPrayFor],
		PrayerRequests: counts[models.ActionPrayerRequest],
		ForumPosts:     counts[models.ActionForumTopic] + counts[models.ActionForumReply],
		StudyGuides:    counts[models.ActionStudyGuideComplete],
		Challenges:     counts[models.ActionDailyChallenge],
		CurrentStreak:  current,
		LongestStreak:  longest,
	}, nil
}

func (s *DefaultGamificationService) unlockedKeys(ctx context.Context, userID string) (map[string]time.Time, error) {
	rows, err := s.Repo.ListUserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]time.Time, len(rows))
	for _, r := range rows {
		out[r.Key] = r.UnlockedAt
	}
	return out, nil
}

// EvaluateAchievements unlocks every eligible achievement the user does not hold yet.
func (s *DefaultGamificationService) EvaluateAchievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	stats, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	held, err := s.unlockedKeys(ctx, userID)
	if err != nil {
		utils.GetLogger().Error("EvaluateAchievements: list failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to evaluate achievements")
	}
	unlocked := make(map[string]bool, len(held))
	for k := range held {
		unlocked[k] = true
	}

	var newly []models.Achievement
	for _, a := range NewlyEligible(*stats, unlocked) {
		ok, err := s.unlock(ctx, userID, a)
		if err != nil {
			return newly, err
		}
		if ok {
			newly = append(newly, a)
		}
	}
	return newly, nil
}

// unlock inserts the achievement row and reports false when another writer got there first.
func (s *DefaultGamificationService) unlock(ctx context.Context, userID string, a models.Achievement) (bool, error) {
	logger := utils.GetLogger()

	err := s.Repo.InsertUserAchievement(ctx, &models.UserAchievement{
		UserID:     userID,
		Key:        a.Key,
		UnlockedAt: s.now(),
	})
	if errors.Is(err, gamificationRepo.ErrDuplicate) {
		return false, nil
	}
	if err != nil {
		logger.Error("unlock: insert failed", zap.String("userID", userID), zap.String("key", a.Key), zap.Error(err))
		return false, fmt.Errorf("failed to unlock achievement")
	}

	if _, err := s.Award(ctx, userID, models.ActionAchievementBonus, a.Key); err != nil {
		logger.Warn("unlock: bonus award failed", zap.String("userID", userID), zap.String("key", a.Key), zap.Error(err))
	}
	s.announce(ctx, userID, a)
	return true, nil
}

func (s *DefaultGamificationService) announce(ctx context.Context, userID string, a models.Achievement) {
	logger := utils.GetLogger()

	if s.Push != nil {
		data := map[string]string{"type": "achievement", "key": a.Key}
		if err := s.Push.SendToUser(ctx, userID, "Achievement unlocked", a.Name, data); err != nil {
			logger.Warn("announce: push failed", zap.String("userID", userID), zap.Error(err))
		}
	}

	if s.Mail == nil || s.Users == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil || !u.EmailUpdates {
		return
	}
	if err := s.Mail.Enqueue(ctx, email.RenderAchievement(u.DisplayName, u.Email, a)); err != nil {
		logger.Warn("announce: email enqueue failed", zap.String("userID", userID), zap.Error(err))
	}
}

func (s *DefaultGamificationService) Achievements(ctx context.Context, userID string) ([]models.AchievementStatus, error) {
	stats, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	held, err := s.unlockedKeys(ctx, userID)
	if err != nil {
		utils.GetLogger().Error("Achievements: list failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to load achievements")
	}

	out := make([]models.AchievementStatus, 0, len(achievementCatalog))
	for _, a := range achievementCatalog {
		st := models.AchievementStatus{Achievement: a, Progress: MetricValue(*stats, a.Criteria.Metric)}
		if at, ok := held[a.Key]; ok {
			at := at
			st.Unlocked = true
			st.UnlockedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

// UnlockAchievement unlocks one named achievement after re-checking its criteria.
// The bool is false when the user already held it.
func (s *DefaultGamificationService) UnlockAchievement(ctx context.Context, userID, key string) (*models.Achievement, bool, error) {
	a, ok := FindAchievement(key)
	if !ok {
		return nil, false, ErrUnknownAchievement
	}
	stats, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if MetricValue(*stats, a.Criteria.Metric) < a.Criteria.Threshold {
		return nil, false, ErrCriteriaNotMet
	}
	created, err := s.unlock(ctx, userID, a)
	if err != nil {
		return nil, false, err
	}
	return &a, created, nil
}

func (s *DefaultGamificationService) TodayChallenge(ctx context.Context, userID string, now time.Time) (*models.TodayChallenge, error) {
	date := now.UTC().Format(dateLayout)
	done, err := s.Repo.HasChallengeCompletion(ctx, userID, date)
	if err != nil {
		utils.GetLogger().Error("TodayChallenge: lookup failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to load challenge")
	}
	return &models.TodayChallenge{Challenge: ChallengeFor(now), Date: date, Completed: done}, nil
}

func (s *DefaultGamificationService) CompleteChallenge(ctx context.Context, userID string, now time.Time) (*models.CompletionResult, error) {
	ch := ChallengeFor(now)
	date := now.UTC().Format(dateLayout)

	err := s.Repo.InsertChallengeCompletion(ctx, &models.ChallengeCompletion{
		UserID:       userID,
		ChallengeKey: ch.Key,
		Date:         date,
		CreatedAt:    now,
	})
	if errors.Is(err, gamificationRepo.ErrDuplicate) {
		return nil, ErrChallengeDone
	}
	if err != nil {
		utils.GetLogger().Error("CompleteChallenge: insert failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to complete challenge")
	}

	// The day is already claimed, so a failed award still reports completion.
	pts, err := s.Award(ctx, userID, models.ActionDailyChallenge, date)
	if err != nil {
		utils.GetLogger().Warn("CompleteChallenge: award failed", zap.String("userID", userID), zap.Error(err))
		pts = 0
	}
	if err := tasks.EnqueueAchievementEvaluation(ctx, s.Queue, userID); err != nil {
		utils.GetLogger().Warn("CompleteChallenge: enqueue evaluation failed", zap.String("userID", userID), zap.Error(err))
	}
	return &models.CompletionResult{Completed: true, PointsEarned: pts}, nil
}

// RemoveFromLeaderboard drops userID from the ranking. Without a cache it is a no-op.
func (s *DefaultGamificationService) RemoveFromLeaderboard(ctx context.Context, userID string) error {
	if s.Cache == nil {
		return nil
	}
	if err := s.Cache.ZRem(ctx, LeaderboardKey, userID).Err(); err != nil {
		return fmt.Errorf("remove %s from leaderboard: %w", userID, err)
	}
	return nil
}

func (s *DefaultGamificationService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if s.Cache == nil {
		return nil, ErrLeaderboardUnavailable
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	rows, err := s.Cache.ZRevRangeWithScores(ctx, LeaderboardKey, 0, int64(limit-1)).Result()
	if err != nil && err != redis.Nil {
		utils.GetLogger().Error("Leaderboard: redis query failed", zap.Error(err))
		return nil, ErrLeaderboardUnavailable
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		if id, ok := r.Member.(string); ok {
			ids = append(ids, id)
		}
	}

	names := map[string]models.User{}
	if s.Users != nil && len(ids) > 0 {
		users, err := s.Users.GetManyByIDs(ctx, ids)
		if err != nil {
			utils.GetLogger().Warn("Leaderboard: name lookup failed", zap.Error(err))
		}
		for _, u := range users {
			names[u.ID] = u
		}
	}

	out := make([]models.LeaderboardEntry, 0, len(rows))
	for i, r := range rows {
		id, _ := r.Member.(string)
		entry := models.LeaderboardEntry{Rank: i + 1, UserID: id, Points: int(r.Score)}
		if u, ok := names[id]; ok {
			entry.DisplayName = u.DisplayName
			entry.AvatarURL = u.AvatarURL
		} else {
			entry.DisplayName = "Member"
		}
		out = append(out, entry)
	}
	return out, nil
}
