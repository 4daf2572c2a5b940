package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sacredgreeks/database"
	"sacredgreeks/models"
	"sacredgreeks/services/email"
	"sacredgreeks/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest, device models.Device) (*AuthResponse, error) {
	logger := utils.GetLogger()

	addr := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.DisplayName)
	if addr == "" || name == "" || device.DeviceID == "" {
		return nil, ErrInvalidInput
	}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(ctx, addr)
	if err != nil {
		logger.Error("Register: failed to check existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	u := &models.User{
		ID:             uuid.New().String(),
		Email:          addr,
		PasswordHash:   string(hash),
		DisplayName:    name,
		Organization:   strings.TrimSpace(req.Organization),
		Chapter:        strings.TrimSpace(req.Chapter),
		InitiationYear: req.InitiationYear,
		Role:           models.RoleMember,
		EmailUpdates:   req.EmailUpdates,
		Demo:           models.DemoSettings{Enabled: false, Scenario: models.DefaultDemoScenario},
	}

	token, tokenHash, err := issueToken(u, device.DeviceID)
	if err != nil {
		logger.Error("Register: failed to sign token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	device.TokenHash = tokenHash
	device.LastLogin = time.Now()
	u.Devices = []models.Device{device}

	if err := s.Repo.Create(ctx, u); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, ErrAlreadyExists
		}
		logger.Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	if s.Mail != nil {
		msg := email.RenderWelcome(u.DisplayName, u.Email, s.AppURL)
		if err := s.Mail.Enqueue(ctx, msg); err != nil {
			logger.Warn("Register: failed to enqueue welcome email", zap.String("userID", u.ID), zap.Error(err))
		}
	}

	logger.Info("User registered", zap.String("userID", u.ID))
	return authResponse(u, token), nil
}

func (s *DefaultUserService) Authenticate(ctx context.Context, emailAddr, password string, device models.Device) (*AuthResponse, error) {
	logger := utils.GetLogger()

	if device.DeviceID == "" {
		return nil, ErrInvalidInput
	}

	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		logger.Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	known := false
	for _, d := range u.Devices {
		if d.DeviceID == device.DeviceID {
			known = true
			break
		}
	}
	if !known {
		if len(u.Devices) >= utils.MaxDevicesPerUser {
			return nil, ErrDeviceLimit
		}
		u.Devices = append(u.Devices, models.Device{DeviceID: device.DeviceID})
	}

	s.dropAuthCache(ctx, u.ID, device.DeviceID)

	token, tokenHash, err := issueToken(u, device.DeviceID)
	if err != nil {
		logger.Error("Authenticate: failed to sign token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	now := time.Now()
	for i := range u.Devices {
		if u.Devices[i].DeviceID == device.DeviceID {
			u.Devices[i].DeviceName = device.DeviceName
			u.Devices[i].IP = device.IP
			u.Devices[i].TokenHash = tokenHash
			u.Devices[i].LastLogin = now
			break
		}
	}

	if err := s.Repo.UpdateSetDocument(ctx, u.ID, bson.M{"devices": u.Devices}); err != nil {
		logger.Error("Authenticate: failed to persist device", zap.String("userID", u.ID), zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	if s.Points != nil {
		day := now.UTC().Format("2006-01-02")
		if _, err := s.Points.Award(ctx, u.ID, models.ActionDailyLogin, day); err != nil {
			logger.Warn("Authenticate: daily login award failed", zap.String("userID", u.ID), zap.Error(err))
		}
	}

	return authResponse(u, token), nil
}
