package handlers

import (
	"net/http"
	"time"

	"sacredgreeks/models"
	"sacredgreeks/services/content"
	"sacredgreeks/services/storage"
	"sacredgreeks/utils"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	ContentService content.ContentService
	Storage        storage.StorageService
}

func NewContentHandler(svc content.ContentService, store storage.StorageService) *ContentHandler {
	return &ContentHandler{ContentService: svc, Storage: store}
}

func viewerFrom(c *gin.Context) content.Viewer {
	return content.Viewer{ID: currentUserID(c), Admin: isAdmin(c)}
}

// ListContentHandler handles GET /api/content?kind=&pillar=&tag=&limit=&offset=.
func (h *ContentHandler) ListContentHandler(c *gin.Context) {
	filter := models.ContentFilter{
		Kind:   c.Query("kind"),
		Pillar: c.Query("pillar"),
		Tag:    c.Query("tag"),
		Limit:  queryInt(c, "limit", 0),
		Offset: queryInt(c, "offset", 0),
	}
	items, err := h.ContentService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// TodayDevotionalHandler handles GET /api/devotionals/today. A ?date=YYYY-MM-DD overrides today (UTC).
func (h *ContentHandler) TodayDevotionalHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		badRequest(c, err)
		return
	}
	devo, err := h.ContentService.DailyDevotional(c.Request.Context(), date, viewerFrom(c))
	if err != nil {
		respondError(c, err, "Failed to load devotional")
		return
	}
	c.JSON(http.StatusOK, devo)
}

func (h *ContentHandler) GetContentHandler(c *gin.Context) {
	item, err := h.ContentService.Get(c.Request.Context(), c.Param("id"), viewerFrom(c))
	if err != nil {
		respondError(c, err, "Failed to load content")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) PrayAlongHandler(c *gin.Context) {
	script, err := h.ContentService.PrayAlong(c.Request.Context(), c.Param("id"), viewerFrom(c))
	if err != nil {
		respondError(c, err, "Failed to load prayer")
		return
	}
	c.JSON(http.StatusOK, script)
}

func (h *ContentHandler) CompleteHandler(c *gin.Context) {
	res, err := h.ContentService.Complete(c.Request.Context(), viewerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to record completion")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ContentHandler) AddBookmarkHandler(c *gin.Context) {
	bm, err := h.ContentService.AddBookmark(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to add bookmark")
		return
	}
	c.JSON(http.StatusOK, bm)
}

func (h *ContentHandler) RemoveBookmarkHandler(c *gin.Context) {
	if err := h.ContentService.RemoveBookmark(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err, "Failed to remove bookmark")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) ListBookmarksHandler(c *gin.Context) {
	bms, err := h.ContentService.ListBookmarks(c.Request.Context(), currentUserID(c), c.Query("kind"))
	if err != nil {
		respondError(c, err, "Failed to list bookmarks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": bms})
}

// Admin endpoints.

func (h *ContentHandler) CreateContentHandler(c *gin.Context) {
	var in models.ContentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.ContentService.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create content")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ContentHandler) UpdateContentHandler(c *gin.Context) {
	var in models.ContentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.ContentService.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "Failed to update content")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) DeleteContentHandler(c *gin.Context) {
	if err := h.ContentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete content")
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadContentImageHandler stores a multipart "image" under the content folder and returns its URL.
func (h *ContentHandler) UploadContentImageHandler(c *gin.Context) {
	if h.Storage == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Media storage is not configured", "")
		return
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		badRequest(c, err)
		return
	}
	if fileHeader.Size > storage.MaxImageBytes {
		respondError(c, storage.ErrTooLarge, "Upload failed")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	url, publicID, err := h.Storage.UploadImage(c.Request.Context(), file, storage.ContentFolder, "")
	if err != nil {
		respondError(c, err, "Upload failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url, "publicId": publicID})
}
