package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"sacredgreeks/config"

	"github.com/golang-jwt/jwt"
)

// fallbackSecret is only used outside production when JWT_SECRET is unset.
const fallbackSecret = "sacredgreeks-dev-secret"

var ErrInvalidToken = errors.New("invalid token")

func secretKey() []byte {
	if s := config.AppConfig.JWTSecret; s != "" {
		return []byte(s)
	}
	return []byte(fallbackSecret)
}

// TokenClaims are the identifiers carried by a session token.
type TokenClaims struct {
	UserID   string
	Email    string
	DeviceID string
}

// GenerateToken creates a signed JWT bound to one device. The token expires after duration.
func GenerateToken(userID, email, deviceID string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    userID,
		"email":  email,
		"device": deviceID,
		"iat":    now.Unix(),
		"exp":    now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractClaims validates the token and returns its subject, email and device.
func ExtractClaims(tokenString string) (*TokenClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	device, _ := claims["device"].(string)
	if sub == "" || device == "" {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	return &TokenClaims{UserID: sub, Email: email, DeviceID: device}, nil
}
