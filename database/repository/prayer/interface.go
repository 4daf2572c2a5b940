package prayerRepo

import (
	"context"
	"errors"

	"sacredgreeks/models"
)

var ErrPrayerNotFound = errors.New("prayer request not found")

type PrayerRepository interface {
	Create(ctx context.Context, p *models.PrayerRequest) error
	GetByID(ctx context.Context, id string) (*models.PrayerRequest, error)
	// ListPublic returns non-private requests, newest first.
	ListPublic(ctx context.Context, filter models.WallFilter) ([]models.PrayerRequest, error)
	ListByUser(ctx context.Context, userID string) ([]models.PrayerRequest, error)
	// AddPrayer atomically records userID as having prayed for the request.
	// It returns the updated count and false when the user had already prayed.
	AddPrayer(ctx context.Context, requestID, userID string) (count int, added bool, err error)
	MarkAnswered(ctx context.Context, requestID, testimony string) (*models.PrayerRequest, error)
	Delete(ctx context.Context, id string) error
}
