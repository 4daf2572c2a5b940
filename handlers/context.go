package handlers

import (
	"strconv"
	"time"

	"sacredgreeks/models"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) string {
	return c.GetString("userID")
}

func currentDeviceID(c *gin.Context) string {
	return c.GetString("deviceID")
}

func isAdmin(c *gin.Context) bool {
	return c.GetString("role") == models.RoleAdmin
}

// deviceFromContext reads what DeviceDetailsMiddleware recorded.
func deviceFromContext(c *gin.Context) models.Device {
	return models.Device{
		DeviceID:   c.GetString("deviceID"),
		DeviceName: c.GetString("deviceName"),
		IP:         c.GetString("deviceIP"),
		LastLogin:  time.Now(),
	}
}

// queryInt parses a non-negative integer query parameter, falling back to def.
func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 0 {
		return def
	}
	return v
}
