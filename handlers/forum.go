package handlers

import (
	"net/http"

	"sacredgreeks/models"
	"sacredgreeks/services/forum"

	"github.com/gin-gonic/gin"
)

type ForumHandler struct {
	ForumService forum.ForumService
}

func NewForumHandler(svc forum.ForumService) *ForumHandler {
	return &ForumHandler{ForumService: svc}
}

type pinRequest struct {
	Pinned *bool `json:"pinned" binding:"required"`
}

type lockRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

func (h *ForumHandler) CategoriesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.ForumService.Categories()})
}

// ListTopicsHandler handles GET /api/forum/topics?category=&limit=&offset=.
func (h *ForumHandler) ListTopicsHandler(c *gin.Context) {
	topics, err := h.ForumService.ListTopics(c.Request.Context(), c.Query("category"), queryInt(c, "limit", 0), queryInt(c, "offset", 0))
	if err != nil {
		respondError(c, err, "Failed to list topics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

func (h *ForumHandler) GetTopicHandler(c *gin.Context) {
	t, err := h.ForumService.GetTopic(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load topic")
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *ForumHandler) CreateTopicHandler(c *gin.Context) {
	var req models.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	t, err := h.ForumService.CreateTopic(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err, "Failed to create topic")
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *ForumHandler) ReplyHandler(c *gin.Context) {
	var req models.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	r, err := h.ForumService.Reply(c.Request.Context(), currentUserID(c), c.Param("id"), req.Body)
	if err != nil {
		respondError(c, err, "Failed to post reply")
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *ForumHandler) DeleteTopicHandler(c *gin.Context) {
	if err := h.ForumService.DeleteTopic(c.Request.Context(), currentUserID(c), c.Param("id"), isAdmin(c)); err != nil {
		respondError(c, err, "Failed to delete topic")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ForumHandler) DeleteReplyHandler(c *gin.Context) {
	if err := h.ForumService.DeleteReply(c.Request.Context(), currentUserID(c), c.Param("id"), isAdmin(c)); err != nil {
		respondError(c, err, "Failed to delete reply")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ForumHandler) SetPinnedHandler(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.ForumService.SetPinned(c.Request.Context(), c.Param("id"), *req.Pinned); err != nil {
		respondError(c, err, "Failed to update topic")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "pinned": *req.Pinned})
}

func (h *ForumHandler) SetLockedHandler(c *gin.Context) {
	var req lockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.ForumService.SetLocked(c.Request.Context(), c.Param("id"), *req.Locked); err != nil {
		respondError(c, err, "Failed to update topic")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "locked": *req.Locked})
}
