package pushRepo

import (
	"context"
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

type MongoPushRepo struct {
	coll *mongo.Collection
}

func NewMongoPushRepo() PushRepository {
	repo := &MongoPushRepo{coll: database.Collection("push_subscriptions")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("push repo: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoPushRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoPushRepo) Upsert(ctx context.Context, sub *models.PushSubscription) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"userId":     sub.UserID,
			"platform":   sub.Platform,
			"userAgent":  sub.UserAgent,
			"lastSeenAt": sub.LastSeenAt,
		},
		"$setOnInsert": bson.M{
			"id":        sub.ID,
			"token":     sub.Token,
			"createdAt": sub.CreatedAt,
		},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"token": sub.Token}, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to upsert push subscription: %w", err)
	}
	return nil
}

func (r *MongoPushRepo) DeleteForUser(ctx context.Context, userID, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID, "token": token})
	if err != nil {
		return false, fmt.Errorf("failed to delete push subscription: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoPushRepo) DeleteTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"token": bson.M{"$in": tokens}}); err != nil {
		return fmt.Errorf("failed to prune push tokens: %w", err)
	}
	return nil
}

func (r *MongoPushRepo) TokensForUser(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := r.coll.Distinct(ctx, "token", bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list push tokens: %w", err)
	}
	tokens := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			tokens = append(tokens, s)
		}
	}
	return tokens, nil
}

func (r *MongoPushRepo) TokensPage(ctx context.Context, afterID string, limit int) ([]string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if afterID != "" {
		filter["id"] = bson.M{"$gt": afterID}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "id", Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"id": 1, "token": 1})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to page push tokens: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.PushSubscription
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, "", fmt.Errorf("failed to decode push tokens: %w", err)
	}
	tokens := make([]string, 0, len(rows))
	lastID := ""
	for _, row := range rows {
		tokens = append(tokens, row.Token)
		lastID = row.ID
	}
	return tokens, lastID, nil
}
