package userRepo

import (
	"context"

	"sacredgreeks/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID. Returns nil, nil when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. Returns nil, nil when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error)
	// GetManyByIDs retrieves the public fields of several users at once.
	GetManyByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// GetAll retrieves all users without credential fields.
	GetAll(ctx context.Context) ([]models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// UpdateSetDocument applies a $set of the given fields.
	UpdateSetDocument(ctx context.Context, id string, fields bson.M) error
	// Delete removes a user record by its ID.
	Delete(ctx context.Context, id string) error
}
