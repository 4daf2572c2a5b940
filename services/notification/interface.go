package notification

import (
	"context"
	"time"

	pushRepo "sacredgreeks/database/repository/push"
	"sacredgreeks/models"

	"firebase.google.com/go/v4/messaging"
)

// BatchSize is the FCM multicast limit.
const BatchSize = 500

// NotificationService manages push subscriptions and sends FCM pushes.
type NotificationService interface {
	Subscribe(ctx context.Context, userID, token, platform, userAgent string) (*models.PushSubscription, error)
	Unsubscribe(ctx context.Context, userID, token string) error
	SendToUser(ctx context.Context, userID, title, body string, data map[string]string) error
	Broadcast(ctx context.Context, title, body string, data map[string]string) (int, error)
}

// FCMSender is the part of *messaging.Client used here.
type FCMSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo   pushRepo.PushRepository
	FCM    FCMSender
	AppURL string
	NowFn  func() time.Time
}

func (s *DefaultNotificationService) now() time.Time {
	if s.NowFn != nil {
		return s.NowFn()
	}
	return time.Now()
}
