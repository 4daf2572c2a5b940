package user

import (
	"context"

	userRepo "sacredgreeks/database/repository/user"
	"sacredgreeks/models"
	"sacredgreeks/services/email"

	"github.com/go-redis/redis/v8"
)

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest, device models.Device) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string, device models.Device) (*AuthResponse, error)

	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error)
	DeleteAccount(ctx context.Context, userID string) error
	SetAvatar(ctx context.Context, userID, url, publicID string) (*models.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword, currentDeviceID string) error

	ListDevices(ctx context.Context, userID string) ([]models.Device, error)
	SignOut(ctx context.Context, userID, deviceID string) error
	SignOutOtherDevices(ctx context.Context, userID, currentDeviceID string) error

	ListUsers(ctx context.Context) ([]models.User, error)
}

// PointAwarder credits activity points. Duplicate daily awards return 0 points.
type PointAwarder interface {
	Award(ctx context.Context, userID, action, refID string) (int, error)
}

// RankingRemover drops a user from the points leaderboard.
type RankingRemover interface {
	RemoveFromLeaderboard(ctx context.Context, userID string) error
}

// MediaDeleter removes a previously uploaded asset.
type MediaDeleter interface {
	Delete(ctx context.Context, publicID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	AuthCache *redis.Client
	Mail      email.Queue
	Media     MediaDeleter
	Points    PointAwarder
	Rankings  RankingRemover
	AppURL    string
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	ID          string `json:"id"`
	Token       string `json:"token"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}
