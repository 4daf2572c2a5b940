package handlers

import (
	"net/http"

	"sacredgreeks/models"
	"sacredgreeks/services/intelligence"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	AI intelligence.IntelligenceService
}

func NewAIHandler(svc intelligence.IntelligenceService) *AIHandler {
	return &AIHandler{AI: svc}
}

func (h *AIHandler) GuidedPrayerHandler(c *gin.Context) {
	var req models.GuidedPrayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	prayer, err := h.AI.GuidedPrayer(c.Request.Context(), currentUserID(c), req.Intention, req.Pillar)
	if err != nil {
		respondError(c, err, "Failed to generate prayer")
		return
	}
	c.JSON(http.StatusOK, prayer)
}
