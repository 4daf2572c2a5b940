package gamification

import (
	"context"
	"errors"
	"testing"
	"time"

	gamificationRepo "sacredgreeks/database/repository/gamification"
	"sacredgreeks/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 4, 10, 18, 0, 0, 0, time.UTC)

func newCache(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func newService(repo *mockRepo) *DefaultGamificationService {
	return &DefaultGamificationService{Repo: repo, NowFn: func() time.Time { return fixedNow }}
}

func TestAward(t *testing.T) {
	cache, mr := newCache(t)

	repo := new(mockRepo)
	repo.On("InsertPointEvent", mock.Anything, mock.MatchedBy(func(e *models.PointEvent) bool {
		return e.Action == models.ActionDevotionalComplete && e.Points == 10 && e.Date == "2026-04-10"
	})).Return(nil).Once()

	svc := newService(repo)
	svc.Cache = cache

	pts, err := svc.Award(context.Background(), "u1", models.ActionDevotionalComplete, "d1")
	require.NoError(t, err)
	assert.Equal(t, 10, pts)

	score, err := mr.ZScore(LeaderboardKey, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, score)
}

func TestAwardRepeatedLoginEarnsNothing(t *testing.T) {
	cache, mr := newCache(t)

	repo := new(mockRepo)
	repo.On("InsertPointEvent", mock.Anything, mock.Anything).Return(gamificationRepo.ErrDuplicate)

	svc := newService(repo)
	svc.Cache = cache

	pts, err := svc.Award(context.Background(), "u1", models.ActionDailyLogin, "")
	require.NoError(t, err)
	assert.Zero(t, pts)
	assert.False(t, mr.Exists(LeaderboardKey))
}

func TestAwardPricing(t *testing.T) {
	repo := new(mockRepo)
	repo.On("InsertPointEvent", mock.Anything, mock.Anything).Return(nil)
	svc := newService(repo)

	pts, err := svc.Award(context.Background(), "u1", models.ActionAchievementBonus, "streak_30")
	require.NoError(t, err)
	assert.Equal(t, 100, pts)

	_, err = svc.Award(context.Background(), "u1", models.ActionAchievementBonus, "nope")
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = svc.Award(context.Background(), "u1", "teleport", "")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func expectStats(repo *mockRepo, total int, counts map[string]int, dates []string) {
	repo.On("TotalPoints", mock.Anything, "u1").Return(total, nil)
	repo.On("CountByAction", mock.Anything, "u1", "").Return(counts, nil)
	repo.On("ActivityDates", mock.Anything, "u1", "", ActivityActions()).Return(dates, nil)
}

func TestStats(t *testing.T) {
	repo := new(mockRepo)
	expectStats(repo, 42, map[string]int{
		models.ActionDevotionalComplete: 3,
		models.ActionForumTopic:         1,
		models.ActionForumReply:         2,
		models.ActionDailyChallenge:     1,
	}, []string{"2026-04-08", "2026-04-09", "2026-04-10"})

	stats, err := newService(repo).Stats(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, &models.Stats{
		TotalPoints:   42,
		Devotionals:   3,
		ForumPosts:    3,
		Challenges:    1,
		CurrentStreak: 3,
		LongestStreak: 3,
	}, stats)
}

func TestEvaluateAchievementsUnlocksAndAnnounces(t *testing.T) {
	repo := new(mockRepo)
	expectStats(repo, 10, map[string]int{models.ActionDevotionalComplete: 1, models.ActionPrayerRequest: 1}, []string{"2026-04-10"})
	repo.On("ListUserAchievements", mock.Anything, "u1").
		Return([]models.UserAchievement{{UserID: "u1", Key: "first_request"}}, nil)
	repo.On("InsertUserAchievement", mock.Anything, mock.MatchedBy(func(ua *models.UserAchievement) bool {
		return ua.Key == "first_devotional"
	})).Return(nil).Once()
	repo.On("InsertPointEvent", mock.Anything, mock.MatchedBy(func(e *models.PointEvent) bool {
		return e.Action == models.ActionAchievementBonus && e.RefID == "first_devotional"
	})).Return(nil).Once()

	push := new(mockNotifier)
	push.On("SendToUser", mock.Anything, "u1", "Achievement unlocked", "First Steps",
		map[string]string{"type": "achievement", "key": "first_devotional"}).Return(nil).Once()

	users := new(mockUsers)
	users.On("GetByID", mock.Anything, "u1").
		Return(&models.User{ID: "u1", Email: "u1@example.org", DisplayName: "Uma", EmailUpdates: true}, nil)
	mail := new(mockMail)
	mail.On("Enqueue", mock.Anything, mock.MatchedBy(func(msg models.EmailMessage) bool {
		return msg.To[0] == "u1@example.org" && msg.Subject == "Achievement unlocked: First Steps"
	})).Return(nil).Once()

	svc := newService(repo)
	svc.Push = push
	svc.Users = users
	svc.Mail = mail

	newly, err := svc.EvaluateAchievements(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, newly, 1)
	assert.Equal(t, "first_devotional", newly[0].Key)

	repo.AssertExpectations(t)
	push.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestEvaluateAchievementsLosesRace(t *testing.T) {
	repo := new(mockRepo)
	expectStats(repo, 10, map[string]int{models.ActionDevotionalComplete: 1}, nil)
	repo.On("ListUserAchievements", mock.Anything, "u1").Return([]models.UserAchievement{}, nil)
	repo.On("InsertUserAchievement", mock.Anything, mock.Anything).Return(gamificationRepo.ErrDuplicate)

	newly, err := newService(repo).EvaluateAchievements(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, newly)
	repo.AssertNotCalled(t, "InsertPointEvent", mock.Anything, mock.Anything)
}

func TestUnlockAchievement(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		_, _, err := newService(new(mockRepo)).UnlockAchievement(context.Background(), "u1", "nope")
		assert.ErrorIs(t, err, ErrUnknownAchievement)
	})

	t.Run("criteria not met", func(t *testing.T) {
		repo := new(mockRepo)
		expectStats(repo, 0, map[string]int{}, nil)

		_, _, err := newService(repo).UnlockAchievement(context.Background(), "u1", "first_devotional")
		assert.ErrorIs(t, err, ErrCriteriaNotMet)
	})

	t.Run("already held", func(t *testing.T) {
		repo := new(mockRepo)
		expectStats(repo, 10, map[string]int{models.ActionDevotionalComplete: 1}, nil)
		repo.On("InsertUserAchievement", mock.Anything, mock.Anything).Return(gamificationRepo.ErrDuplicate)

		a, created, err := newService(repo).UnlockAchievement(context.Background(), "u1", "first_devotional")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "first_devotional", a.Key)
	})
}

func TestAchievementsProgress(t *testing.T) {
	unlockedAt := fixedNow.Add(-time.Hour)

	repo := new(mockRepo)
	expectStats(repo, 10, map[string]int{models.ActionDevotionalComplete: 4}, nil)
	repo.On("ListUserAchievements", mock.Anything, "u1").
		Return([]models.UserAchievement{{UserID: "u1", Key: "first_devotional", UnlockedAt: unlockedAt}}, nil)

	list, err := newService(repo).Achievements(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, len(Achievements()))

	byKey := map[string]models.AchievementStatus{}
	for _, st := range list {
		byKey[st.Key] = st
	}
	assert.True(t, byKey["first_devotional"].Unlocked)
	assert.Equal(t, unlockedAt, *byKey["first_devotional"].UnlockedAt)
	assert.False(t, byKey["devotional_30"].Unlocked)
	assert.Equal(t, 4, byKey["devotional_30"].Progress)
}

func TestCompleteChallenge(t *testing.T) {
	repo := new(mockRepo)
	repo.On("InsertChallengeCompletion", mock.Anything, mock.MatchedBy(func(c *models.ChallengeCompletion) bool {
		return c.Date == "2026-04-10" && c.ChallengeKey == ChallengeFor(fixedNow).Key
	})).Return(nil).Once()
	repo.On("InsertChallengeCompletion", mock.Anything, mock.Anything).Return(gamificationRepo.ErrDuplicate)
	repo.On("InsertPointEvent", mock.Anything, mock.Anything).Return(nil)

	svc := newService(repo)

	res, err := svc.CompleteChallenge(context.Background(), "u1", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, &models.CompletionResult{Completed: true, PointsEarned: 15}, res)

	_, err = svc.CompleteChallenge(context.Background(), "u1", fixedNow)
	assert.ErrorIs(t, err, ErrChallengeDone)
}

func TestCompleteChallengeSurvivesAwardFailure(t *testing.T) {
	repo := new(mockRepo)
	repo.On("InsertChallengeCompletion", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("InsertPointEvent", mock.Anything, mock.Anything).Return(errors.New("mongo down")).Once()

	res, err := newService(repo).CompleteChallenge(context.Background(), "u1", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, &models.CompletionResult{Completed: true, PointsEarned: 0}, res)
	repo.AssertExpectations(t)
}

func TestRemoveFromLeaderboard(t *testing.T) {
	cache, mr := newCache(t)
	_, _ = mr.ZAdd(LeaderboardKey, 50, "u1")
	_, _ = mr.ZAdd(LeaderboardKey, 70, "u2")

	svc := newService(new(mockRepo))
	svc.Cache = cache
	require.NoError(t, svc.RemoveFromLeaderboard(context.Background(), "u1"))

	members, err := mr.ZMembers(LeaderboardKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, members)

	assert.NoError(t, newService(new(mockRepo)).RemoveFromLeaderboard(context.Background(), "u1"))
}

func TestTodayChallenge(t *testing.T) {
	repo := new(mockRepo)
	repo.On("HasChallengeCompletion", mock.Anything, "u1", "2026-04-10").Return(true, nil)

	today, err := newService(repo).TodayChallenge(context.Background(), "u1", fixedNow)
	require.NoError(t, err)
	assert.True(t, today.Completed)
	assert.Equal(t, ChallengeFor(fixedNow), today.Challenge)
}

func TestLeaderboard(t *testing.T) {
	cache, mr := newCache(t)
	_, _ = mr.ZAdd(LeaderboardKey, 120, "u1")
	_, _ = mr.ZAdd(LeaderboardKey, 300, "u2")
	_, _ = mr.ZAdd(LeaderboardKey, 45, "u3")

	users := new(mockUsers)
	users.On("GetManyByIDs", mock.Anything, []string{"u2", "u1"}).
		Return([]models.User{{ID: "u2", DisplayName: "Grace"}}, nil)

	svc := newService(new(mockRepo))
	svc.Cache = cache
	svc.Users = users

	board, err := svc.Leaderboard(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []models.LeaderboardEntry{
		{Rank: 1, UserID: "u2", DisplayName: "Grace", Points: 300},
		{Rank: 2, UserID: "u1", DisplayName: "Member", Points: 120},
	}, board)
}

func TestLeaderboardWithoutCache(t *testing.T) {
	_, err := newService(new(mockRepo)).Leaderboard(context.Background(), 10)
	assert.ErrorIs(t, err, ErrLeaderboardUnavailable)
}
