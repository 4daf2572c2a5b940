package handlers

import (
	"errors"
	"net/http"

	"sacredgreeks/models"
	"sacredgreeks/services/demo"
	"sacredgreeks/utils"

	"github.com/gin-gonic/gin"
)

type DemoHandler struct {
	Demo demo.DemoService
}

func NewDemoHandler(svc demo.DemoService) *DemoHandler {
	return &DemoHandler{Demo: svc}
}

func (h *DemoHandler) ScenariosHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenarios": h.Demo.Scenarios()})
}

func (h *DemoHandler) GetSettingsHandler(c *gin.Context) {
	settings, err := h.Demo.Load(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *DemoHandler) SaveSettingsHandler(c *gin.Context) {
	var req models.DemoSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	settings, err := h.Demo.Save(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *DemoHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, demo.ErrUnknownScenario):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, demo.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error(), "")
	default:
		respondError(c, err, "Failed to update demo mode")
	}
}
