package subscriptionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sacredgreeks/database"
	"sacredgreeks/models"
	"sacredgreeks/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MongoSubscriptionRepo struct {
	coll *mongo.Collection
}

func NewMongoSubscriptionRepo() SubscriptionRepository {
	repo := &MongoSubscriptionRepo{coll: database.Collection("subscriptions")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("subscription repo: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoSubscriptionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "stripeCustomerId", Value: 1}}, Options: options.Index().SetSparse(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoSubscriptionRepo) findOne(ctx context.Context, filter bson.M) (*models.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sub models.Subscription
	if err := r.coll.FindOne(ctx, filter).Decode(&sub); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch subscription: %w", err)
	}
	return &sub, nil
}

func (r *MongoSubscriptionRepo) GetByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *MongoSubscriptionRepo) GetByCustomerID(ctx context.Context, customerID string) (*models.Subscription, error) {
	return r.findOne(ctx, bson.M{"stripeCustomerId": customerID})
}

func (r *MongoSubscriptionRepo) Upsert(ctx context.Context, sub *models.Subscription) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sub.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"userId": sub.UserID}, sub, opts); err != nil {
		return fmt.Errorf("failed to upsert subscription for %s: %w", sub.UserID, err)
	}
	return nil
}
