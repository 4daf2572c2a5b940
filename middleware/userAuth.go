package middleware

import (
	"net/http"
	"strings"

	userRepo "sacredgreeks/database/repository/user"
	"sacredgreeks/models"
	"sacredgreeks/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "code": 0})
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// cached auth entries are stored as "<role>|<tokenHash>".
func encodeAuthEntry(role, hash string) string {
	return role + "|" + hash
}

func decodeAuthEntry(v string) (role, hash string) {
	if i := strings.IndexByte(v, '|'); i >= 0 {
		return v[:i], v[i+1:]
	}
	return "", v
}

// JWTAuthUserMiddleware validates the bearer token against the device it was issued to.
// authCache may be nil, in which case every request is checked against Mongo.
func JWTAuthUserMiddleware(repo userRepo.UserRepository, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()
		ctx := c.Request.Context()

		tokenString := bearerToken(c)
		if tokenString == "" {
			unauthorized(c, "Insufficient authorization")
			return
		}

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			unauthorized(c, "Insufficient authorization")
			return
		}

		// The device header must match the device the token was issued to.
		if hdr := strings.TrimSpace(c.GetHeader("X-Device-ID")); hdr == "" || hdr != claims.DeviceID {
			unauthorized(c, "Insufficient authorization")
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCacheKey(claims.UserID, claims.DeviceID)

		if authCache != nil {
			cached, err := authCache.Get(ctx, cacheKey).Result()
			switch {
			case err == nil:
				role, hash := decodeAuthEntry(cached)
				if hash != computedHash {
					unauthorized(c, "Token mismatch")
					return
				}
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				setIdentity(c, claims, role)
				c.Next()
				return
			case err != redis.Nil:
				logger.Warn("auth cache lookup failed, falling back to database", zap.Error(err))
			}
		}

		usr, err := repo.GetByIDWithProjection(ctx, claims.UserID, bson.M{"id": 1, "role": 1, "devices": 1})
		if err != nil || usr == nil {
			if err != nil {
				logger.Error("auth: user lookup failed", zap.String("userID", claims.UserID), zap.Error(err))
			}
			unauthorized(c, "Authentication error")
			return
		}

		var deviceTokenHash string
		for _, d := range usr.Devices {
			if d.DeviceID == claims.DeviceID {
				deviceTokenHash = d.TokenHash
				break
			}
		}
		if deviceTokenHash == "" || deviceTokenHash != computedHash {
			unauthorized(c, "Token mismatch")
			return
		}

		role := usr.Role
		if role == "" {
			role = models.RoleMember
		}
		if authCache != nil {
			if err := authCache.Set(ctx, cacheKey, encodeAuthEntry(role, computedHash), utils.AuthCacheTTL).Err(); err != nil {
				logger.Warn("auth cache write failed", zap.Error(err))
			}
		}

		setIdentity(c, claims, role)
		c.Next()
	}
}

func setIdentity(c *gin.Context, claims *utils.TokenClaims, role string) {
	c.Set("userID", claims.UserID)
	c.Set("deviceID", claims.DeviceID)
	c.Set("role", role)
}
