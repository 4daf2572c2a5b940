package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// TokenTTL is the lifetime of an issued session token.
const TokenTTL = 7 * 24 * time.Hour

// MaxDevicesPerUser caps concurrent sessions.
const MaxDevicesPerUser = 5

// AuthCacheKey builds the key holding the token hash for a user's device.
func AuthCacheKey(userID, deviceID string) string {
	return AuthCachePrefix + userID + ":" + deviceID
}
