package handlers

import (
	"net/http"
	"time"

	"sacredgreeks/services/engagement"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	Engagement engagement.EngagementService
}

func NewEngagementHandler(svc engagement.EngagementService) *EngagementHandler {
	return &EngagementHandler{Engagement: svc}
}

func (h *EngagementHandler) ScoreHandler(c *gin.Context) {
	score, err := h.Engagement.Score(c.Request.Context(), currentUserID(c), time.Now())
	if err != nil {
		respondError(c, err, "Failed to compute engagement")
		return
	}
	c.JSON(http.StatusOK, score)
}
