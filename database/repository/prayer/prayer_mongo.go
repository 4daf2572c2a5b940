package prayerRepo

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

type MongoPrayerRepo struct {
	coll *mongo.Collection
}

func NewMongoPrayerRepo() PrayerRepository {
	repo := &MongoPrayerRepo{coll: database.Collection("prayer_requests")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("prayer repo: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoPrayerRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isPrivate", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoPrayerRepo) Create(ctx context.Context, p *models.PrayerRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if p.PrayedBy == nil {
		p.PrayedBy = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create prayer request: %w", err)
	}
	return nil
}

func (r *MongoPrayerRepo) GetByID(ctx context.Context, id string) (*models.PrayerRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.PrayerRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch prayer request %s: %w", id, err)
	}
	return &p, nil
}

func (r *MongoPrayerRepo) ListPublic(ctx context.Context, f models.WallFilter) ([]models.PrayerRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"isPrivate": false}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Answered != nil {
		filter["isAnswered"] = *f.Answered
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(f.Offset)).
		SetLimit(int64(f.Limit)).
		SetProjection(bson.M{"prayedBy": 0})

	return r.find(ctx, filter, opts)
}

func (r *MongoPrayerRepo) ListByUser(ctx context.Context, userID string) ([]models.PrayerRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetProjection(bson.M{"prayedBy": 0})
	return r.find(ctx, bson.M{"userId": userID}, opts)
}

func (r *MongoPrayerRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.PrayerRequest, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list prayer requests: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.PrayerRequest{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode prayer requests: %w", err)
	}
	return out, nil
}

func (r *MongoPrayerRepo) AddPrayer(ctx context.Context, requestID, userID string) (int, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// The $ne guard makes the add-and-increment a single atomic step per user.
	filter := bson.M{"id": requestID, "prayedBy": bson.M{"$ne": userID}}
	update := bson.M{
		"$addToSet": bson.M{"prayedBy": userID},
		"$inc":      bson.M{"prayerCount": 1},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"prayerCount": 1})

	var updated models.PrayerRequest
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return updated.PrayerCount, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, false, fmt.Errorf("failed to record prayer: %w", err)
	}

	// Either the request is gone or the user already prayed.
	existing, err := r.GetByID(ctx, requestID)
	if err != nil {
		return 0, false, err
	}
	if existing == nil {
		return 0, false, ErrPrayerNotFound
	}
	return existing.PrayerCount, false, nil
}

func (r *MongoPrayerRepo) MarkAnswered(ctx context.Context, requestID, testimony string) (*models.PrayerRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"isAnswered": true,
		"answeredAt": now,
		"testimony":  testimony,
		"updatedAt":  now,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(bson.M{"prayedBy": 0})

	var updated models.PrayerRequest
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": requestID}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPrayerNotFound
		}
		return nil, fmt.Errorf("failed to mark prayer request answered: %w", err)
	}
	return &updated, nil
}

func (r *MongoPrayerRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete prayer request %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrPrayerNotFound
	}
	return nil
}
