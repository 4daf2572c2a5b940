package handlers

import (
	"net/http"

	"sacredgreeks/models"
	"sacredgreeks/services/notification"

	"github.com/gin-gonic/gin"
)

type PushHandler struct {
	Notifications notification.NotificationService
}

func NewPushHandler(svc notification.NotificationService) *PushHandler {
	return &PushHandler{Notifications: svc}
}

type broadcastRequest struct {
	Title string            `json:"title" binding:"required,max=100"`
	Body  string            `json:"body" binding:"required,max=500"`
	Data  map[string]string `json:"data"`
}

func (h *PushHandler) SubscribeHandler(c *gin.Context) {
	var req models.PushSubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sub, err := h.Notifications.Subscribe(c.Request.Context(), currentUserID(c), req.Token, req.Platform, c.Request.UserAgent())
	if err != nil {
		respondError(c, err, "Failed to save push subscription")
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *PushHandler) UnsubscribeHandler(c *gin.Context) {
	var req models.PushUnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Notifications.Unsubscribe(c.Request.Context(), currentUserID(c), req.Token); err != nil {
		respondError(c, err, "Failed to remove push subscription")
		return
	}
	c.Status(http.StatusNoContent)
}

// BroadcastHandler is the admin path for an ad hoc push to every subscriber.
func (h *PushHandler) BroadcastHandler(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sent, err := h.Notifications.Broadcast(c.Request.Context(), req.Title, req.Body, req.Data)
	if err != nil {
		respondError(c, err, "Broadcast failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent})
}
