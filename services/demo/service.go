package demo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	userRepo "sacredgreeks/database/repository/user"
	"sacredgreeks/models"
	"sacredgreeks/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var (
	ErrUnknownScenario = errors.New("unknown demo scenario")
	ErrUserNotFound    = errors.New("user not found")
)

const cacheTTL = 24 * time.Hour

type DemoService interface {
	Scenarios() []models.DemoScenario
	Load(ctx context.Context, userID string) (models.DemoSettings, error)
	Save(ctx context.Context, userID string, settings models.DemoSettings) (models.DemoSettings, error)
	// Current returns the active scenario, or nil when demo mode is off.
	Current(ctx context.Context, userID string) (*models.DemoScenario, error)
}

type DefaultDemoService struct {
	Users userRepo.UserRepository
	Cache *redis.Client
}

func cacheKey(userID string) string {
	return "demo:" + userID
}

func defaults() models.DemoSettings {
	return models.DemoSettings{Enabled: false, Scenario: models.DefaultDemoScenario}
}

func (s *DefaultDemoService) Scenarios() []models.DemoScenario {
	return Scenarios()
}

func (s *DefaultDemoService) Load(ctx context.Context, userID string) (models.DemoSettings, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, cacheKey(userID)).Bytes()
		if err == nil {
			var settings models.DemoSettings
			if json.Unmarshal(raw, &settings) == nil {
				return settings, nil
			}
		} else if err != redis.Nil {
			logger.Warn("demo: cache read failed", zap.String("userID", userID), zap.Error(err))
		}
	}

	u, err := s.Users.GetByIDWithProjection(ctx, userID, bson.M{"id": 1, "demo": 1})
	if err != nil {
		logger.Error("demo: user lookup failed", zap.String("userID", userID), zap.Error(err))
		return defaults(), fmt.Errorf("failed to load demo settings")
	}
	if u == nil {
		return defaults(), ErrUserNotFound
	}

	settings := u.Demo
	if settings.Scenario == "" {
		settings.Scenario = models.DefaultDemoScenario
	}
	s.mirror(ctx, userID, settings)
	return settings, nil
}

func (s *DefaultDemoService) Save(ctx context.Context, userID string, settings models.DemoSettings) (models.DemoSettings, error) {
	if settings.Scenario == "" {
		settings.Scenario = models.DefaultDemoScenario
	}
	if _, ok := FindScenario(settings.Scenario); !ok {
		return models.DemoSettings{}, ErrUnknownScenario
	}

	if err := s.Users.UpdateSetDocument(ctx, userID, bson.M{"demo": settings}); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return models.DemoSettings{}, ErrUserNotFound
		}
		utils.GetLogger().Error("demo: save failed", zap.String("userID", userID), zap.Error(err))
		return models.DemoSettings{}, fmt.Errorf("failed to save demo settings")
	}
	s.mirror(ctx, userID, settings)
	return settings, nil
}

func (s *DefaultDemoService) mirror(ctx context.Context, userID string, settings models.DemoSettings) {
	if s.Cache == nil {
		return
	}
	b, _ := json.Marshal(settings)
	if err := s.Cache.Set(ctx, cacheKey(userID), b, cacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("demo: cache write failed", zap.String("userID", userID), zap.Error(err))
	}
}

func (s *DefaultDemoService) Current(ctx context.Context, userID string) (*models.DemoScenario, error) {
	settings, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !settings.Enabled {
		return nil, nil
	}
	sc, ok := FindScenario(settings.Scenario)
	if !ok {
		return nil, nil
	}
	return &sc, nil
}
