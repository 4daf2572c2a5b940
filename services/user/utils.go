package user

import (
	"context"
	"strings"
	"unicode"

	"sacredgreeks/models"
	"sacredgreeks/utils"

	"go.uber.org/zap"
)

// VerifyPasswordComplexity requires at least 8 characters with a letter and a digit.
func VerifyPasswordComplexity(pw string) error {
	if len(pw) < 8 {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// issueToken signs a token for the device and returns it with its hash.
func issueToken(u *models.User, deviceID string) (string, string, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, deviceID, utils.TokenTTL)
	if err != nil {
		return "", "", err
	}
	return token, utils.HashToken(token), nil
}

func authResponse(u *models.User, token string) *AuthResponse {
	return &AuthResponse{
		ID:          u.ID,
		Token:       token,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		AvatarURL:   u.AvatarURL,
	}
}

// dropAuthCache clears cached token hashes for the given devices.
func (s *DefaultUserService) dropAuthCache(ctx context.Context, userID string, deviceIDs ...string) {
	if s.AuthCache == nil || len(deviceIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(deviceIDs))
	for _, id := range deviceIDs {
		keys = append(keys, utils.AuthCacheKey(userID, id))
	}
	if err := s.AuthCache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Error("Failed to clear auth cache", zap.String("userID", userID), zap.Error(err))
	}
}
