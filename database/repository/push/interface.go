package pushRepo

import (
	"context"

	"sacredgreeks/models"
)

type PushRepository interface {
	// Upsert stores the subscription keyed by its token, moving it to the given user.
	Upsert(ctx context.Context, sub *models.PushSubscription) error
	DeleteForUser(ctx context.Context, userID, token string) (bool, error)
	DeleteTokens(ctx context.Context, tokens []string) error
	TokensForUser(ctx context.Context, userID string) ([]string, error)
	// TokensPage returns tokens ordered by ID after the given cursor.
	TokensPage(ctx context.Context, afterID string, limit int) (tokens []string, lastID string, err error)
}
