package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"sacredgreeks/models"
	"sacredgreeks/services/prayer"

	"github.com/gin-gonic/gin"
)

const defaultKeepAlive = 25 * time.Second

type PrayerHandler struct {
	PrayerService prayer.PrayerService
	KeepAlive     time.Duration
}

func NewPrayerHandler(svc prayer.PrayerService) *PrayerHandler {
	return &PrayerHandler{PrayerService: svc, KeepAlive: defaultKeepAlive}
}

type markAnsweredRequest struct {
	Testimony string `json:"testimony" binding:"max=2000"`
}

func (h *PrayerHandler) CreatePrayerHandler(c *gin.Context) {
	var req models.CreatePrayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.PrayerService.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err, "Failed to create prayer request")
		return
	}
	c.JSON(http.StatusCreated, p)
}

// WallHandler handles GET /api/prayers/wall?category=&answered=&limit=&offset=.
func (h *PrayerHandler) WallHandler(c *gin.Context) {
	filter := models.WallFilter{
		Category: c.Query("category"),
		Limit:    queryInt(c, "limit", 0),
		Offset:   queryInt(c, "offset", 0),
	}
	if v := c.Query("answered"); v != "" {
		answered, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(c, err)
			return
		}
		filter.Answered = &answered
	}
	items, err := h.PrayerService.Wall(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to load prayer wall")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *PrayerHandler) MyPrayersHandler(c *gin.Context) {
	items, err := h.PrayerService.Mine(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err, "Failed to load prayer requests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *PrayerHandler) PrayForHandler(c *gin.Context) {
	res, err := h.PrayerService.PrayFor(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to record prayer")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PrayerHandler) MarkAnsweredHandler(c *gin.Context) {
	var req markAnsweredRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		badRequest(c, err)
		return
	}
	p, err := h.PrayerService.MarkAnswered(c.Request.Context(), currentUserID(c), c.Param("id"), req.Testimony)
	if err != nil {
		respondError(c, err, "Failed to update prayer request")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PrayerHandler) DeletePrayerHandler(c *gin.Context) {
	if err := h.PrayerService.Delete(c.Request.Context(), currentUserID(c), c.Param("id"), isAdmin(c)); err != nil {
		respondError(c, err, "Failed to delete prayer request")
		return
	}
	c.Status(http.StatusNoContent)
}

// StreamHandler relays wall events as Server-Sent Events until the client goes away.
func (h *PrayerHandler) StreamHandler(c *gin.Context) {
	ctx := c.Request.Context()
	events, err := h.PrayerService.Subscribe(ctx)
	if err != nil {
		respondError(c, err, "Prayer wall stream unavailable")
		return
	}

	keepAlive := h.KeepAlive
	if keepAlive <= 0 {
		keepAlive = defaultKeepAlive
	}
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"at": time.Now().UTC()})

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(ev.Type, ev)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		case <-ctx.Done():
			return false
		}
	})
}
