package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userRepo "sacredgreeks/database/repository/user"
	"sacredgreeks/models"
	"sacredgreeks/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		utils.GetLogger().Error("GetProfile: lookup failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to load profile")
	}
	if u == nil {
		return nil, ErrNotFound
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	fields := bson.M{}
	if v := strings.TrimSpace(req.DisplayName); v != "" {
		fields["displayName"] = v
	}
	if v := strings.TrimSpace(req.Organization); v != "" {
		fields["organization"] = v
	}
	if v := strings.TrimSpace(req.Chapter); v != "" {
		fields["chapter"] = v
	}
	if req.InitiationYear != 0 {
		if req.InitiationYear < 1900 || req.InitiationYear > 2100 {
			return nil, ErrInvalidInput
		}
		fields["initiationYear"] = req.InitiationYear
	}
	if v := strings.TrimSpace(req.Bio); v != "" {
		fields["bio"] = v
	}
	if req.EmailUpdates != nil {
		fields["emailUpdates"] = *req.EmailUpdates
	}
	if len(fields) == 0 {
		return s.GetProfile(ctx, userID)
	}

	if err := s.Repo.UpdateSetDocument(ctx, userID, fields); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		utils.GetLogger().Error("UpdateProfile: update failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to update profile")
	}
	return s.GetProfile(ctx, userID)
}

func (s *DefaultUserService) DeleteAccount(ctx context.Context, userID string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		utils.GetLogger().Error("DeleteAccount: lookup failed", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to delete account")
	}
	if u == nil {
		return ErrNotFound
	}

	if err := s.Repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrNotFound
		}
		utils.GetLogger().Error("DeleteAccount: delete failed", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to delete account")
	}

	ids := make([]string, 0, len(u.Devices))
	for _, d := range u.Devices {
		ids = append(ids, d.DeviceID)
	}
	s.dropAuthCache(ctx, userID, ids...)
	s.deleteAvatar(ctx, u.AvatarPublicID)
	if s.Rankings != nil {
		if err := s.Rankings.RemoveFromLeaderboard(ctx, userID); err != nil {
			utils.GetLogger().Warn("DeleteAccount: leaderboard cleanup failed", zap.String("userID", userID), zap.Error(err))
		}
	}
	return nil
}

// SetAvatar records a new avatar and removes the previous asset best-effort.
func (s *DefaultUserService) SetAvatar(ctx context.Context, userID, url, publicID string) (*models.User, error) {
	current, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateSetDocument(ctx, userID, bson.M{"avatarUrl": url, "avatarPublicId": publicID}); err != nil {
		utils.GetLogger().Error("SetAvatar: update failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to update avatar")
	}
	if current.AvatarPublicID != "" && current.AvatarPublicID != publicID {
		s.deleteAvatar(ctx, current.AvatarPublicID)
	}

	current.AvatarURL = url
	current.AvatarPublicID = publicID
	return current, nil
}

func (s *DefaultUserService) deleteAvatar(ctx context.Context, publicID string) {
	if s.Media == nil || publicID == "" {
		return
	}
	if err := s.Media.Delete(ctx, publicID); err != nil {
		utils.GetLogger().Warn("Failed to delete old avatar", zap.String("publicID", publicID), zap.Error(err))
	}
}

func (s *DefaultUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		utils.GetLogger().Error("ListUsers: query failed", zap.Error(err))
		return nil, fmt.Errorf("failed to list users")
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}
