package handlers

import (
	"net/http"
	"time"

	"sacredgreeks/services/demo"
	"sacredgreeks/services/gamification"
	"sacredgreeks/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GamificationHandler struct {
	Gamification gamification.GamificationService
	Demo         demo.DemoService
	NowFn        func() time.Time
}

func NewGamificationHandler(svc gamification.GamificationService, demoSvc demo.DemoService) *GamificationHandler {
	return &GamificationHandler{Gamification: svc, Demo: demoSvc}
}

func (h *GamificationHandler) now() time.Time {
	if h.NowFn != nil {
		return h.NowFn()
	}
	return time.Now()
}

func (h *GamificationHandler) AchievementCatalogHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"achievements": gamification.Achievements()})
}

func (h *GamificationHandler) ChallengeCatalogHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"challenges": gamification.Challenges()})
}

func (h *GamificationHandler) PointsHandler(c *gin.Context) {
	total, err := h.Gamification.TotalPoints(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err, "Failed to load points")
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalPoints": total})
}

// StatsHandler returns the member's stats, or the active demo scenario's canned stats.
func (h *GamificationHandler) StatsHandler(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	if h.Demo != nil {
		sc, err := h.Demo.Current(ctx, userID)
		if err != nil {
			utils.GetLogger().Warn("Demo lookup failed", zap.String("userID", userID), zap.Error(err))
		} else if sc != nil {
			c.JSON(http.StatusOK, gin.H{"stats": sc.Stats, "demo": true, "scenario": sc.Key})
			return
		}
	}

	stats, err := h.Gamification.Stats(ctx, userID)
	if err != nil {
		respondError(c, err, "Failed to load stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats, "demo": false})
}

func (h *GamificationHandler) AchievementsHandler(c *gin.Context) {
	list, err := h.Gamification.Achievements(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err, "Failed to load achievements")
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": list})
}

// UnlockAchievementHandler handles POST /api/achievements/:key/unlock.
func (h *GamificationHandler) UnlockAchievementHandler(c *gin.Context) {
	a, created, err := h.Gamification.UnlockAchievement(c.Request.Context(), currentUserID(c), c.Param("key"))
	if err != nil {
		respondError(c, err, "Failed to unlock achievement")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"achievement": a, "unlocked": created})
}

func (h *GamificationHandler) EvaluateAchievementsHandler(c *gin.Context) {
	unlocked, err := h.Gamification.EvaluateAchievements(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err, "Failed to evaluate achievements")
		return
	}
	c.JSON(http.StatusOK, gin.H{"unlocked": unlocked})
}

func (h *GamificationHandler) TodayChallengeHandler(c *gin.Context) {
	tc, err := h.Gamification.TodayChallenge(c.Request.Context(), currentUserID(c), h.now())
	if err != nil {
		respondError(c, err, "Failed to load today's challenge")
		return
	}
	c.JSON(http.StatusOK, tc)
}

func (h *GamificationHandler) CompleteChallengeHandler(c *gin.Context) {
	res, err := h.Gamification.CompleteChallenge(c.Request.Context(), currentUserID(c), h.now())
	if err != nil {
		respondError(c, err, "Failed to complete challenge")
		return
	}
	c.JSON(http.StatusOK, res)
}

// LeaderboardHandler handles GET /api/leaderboard?limit=.
func (h *GamificationHandler) LeaderboardHandler(c *gin.Context) {
	entries, err := h.Gamification.Leaderboard(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		respondError(c, err, "Failed to load leaderboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
