package handlers

import (
	"net/http"

	"sacredgreeks/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last background health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
