package middleware

import (
	"net"
	"net/http"
	"strings"

	"sacredgreeks/utils"

	"github.com/gin-gonic/gin"
)

const maxDeviceHeaderLen = 128

func getClientIP(c *gin.Context) string {
	// X-Forwarded-For may carry a chain; the first entry is the client.
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 && strings.TrimSpace(ips[0]) != "" {
			return strings.TrimSpace(ips[0])
		}
	}
	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		return host
	}
	return ip
}

// DeviceDetailsMiddleware requires X-Device-ID and records the device details in the context.
// X-Device-Name is optional.
func DeviceDetailsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := strings.TrimSpace(c.GetHeader("X-Device-ID"))
		if deviceID == "" || len(deviceID) > maxDeviceHeaderLen {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Missing required device details: X-Device-ID",
			})
			return
		}
		deviceName := strings.TrimSpace(c.GetHeader("X-Device-Name"))
		if deviceName == "" {
			deviceName = "Unknown device"
		}
		deviceName = utils.TruncateUTF8(deviceName, maxDeviceHeaderLen)

		c.Set("deviceID", deviceID)
		c.Set("deviceName", deviceName)
		c.Set("deviceIP", getClientIP(c))
		c.Next()
	}
}
