package handlers

import (
	"net/http"

	"sacredgreeks/models"
	"sacredgreeks/services/email"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	Queue        email.Queue
	ContactInbox string
}

func NewEmailHandler(q email.Queue, inbox string) *EmailHandler {
	return &EmailHandler{Queue: q, ContactInbox: inbox}
}

// ContactHandler validates a contact form and queues it for delivery to the support inbox.
func (h *EmailHandler) ContactHandler(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Queue.Enqueue(c.Request.Context(), email.RenderContact(req, h.ContactInbox)); err != nil {
		respondError(c, err, "Failed to send message")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Thanks for reaching out. We will get back to you soon."})
}
