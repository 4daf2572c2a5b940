package user

import (
	"context"
	"fmt"

	"sacredgreeks/models"
	"sacredgreeks/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) ListDevices(ctx context.Context, userID string) ([]models.Device, error) {
	u, err := s.Repo.GetByIDWithProjection(ctx, userID, bson.M{"devices": 1})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u.Devices, nil
}

// SignOut removes one device and its cached token.
func (s *DefaultUserService) SignOut(ctx context.Context, userID, deviceID string) error {
	devices, err := s.ListDevices(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]models.Device, 0, len(devices))
	found := false
	for _, d := range devices {
		if d.DeviceID == deviceID {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return ErrDeviceNotFound
	}

	if err := s.Repo.UpdateSetDocument(ctx, userID, bson.M{"devices": kept}); err != nil {
		utils.GetLogger().Error("SignOut: update failed", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to sign out device")
	}
	s.dropAuthCache(ctx, userID, deviceID)
	return nil
}

func (s *DefaultUserService) SignOutOtherDevices(ctx context.Context, userID, currentDeviceID string) error {
	devices, err := s.ListDevices(ctx, userID)
	if err != nil {
		return err
	}
	return s.keepOnlyDevice(ctx, userID, currentDeviceID, devices)
}

func (s *DefaultUserService) keepOnlyDevice(ctx context.Context, userID, deviceID string, devices []models.Device) error {
	kept := []models.Device{}
	var dropped []string
	for _, d := range devices {
		if d.DeviceID == deviceID {
			kept = append(kept, d)
		} else {
			dropped = append(dropped, d.DeviceID)
		}
	}

	if err := s.Repo.UpdateSetDocument(ctx, userID, bson.M{"devices": kept}); err != nil {
		utils.GetLogger().Error("Failed to update user devices", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to update user devices")
	}
	s.dropAuthCache(ctx, userID, dropped...)
	return nil
}

// ChangePassword verifies the current password, stores the new hash and signs out every other device.
func (s *DefaultUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword, currentDeviceID string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		utils.GetLogger().Error("ChangePassword: lookup failed", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to change password")
	}
	if u == nil {
		return ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if err := VerifyPasswordComplexity(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to change password")
	}
	if err := s.Repo.UpdateSetDocument(ctx, userID, bson.M{"passwordHash": string(hash)}); err != nil {
		utils.GetLogger().Error("ChangePassword: update failed", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to change password")
	}
	return s.keepOnlyDevice(ctx, userID, currentDeviceID, u.Devices)
}
