package contentRepo

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

type MongoContentRepo struct {
	content     *mongo.Collection
	bookmarks   *mongo.Collection
	completions *mongo.Collection
}

func NewMongoContentRepo() ContentRepository {
	repo := &MongoContentRepo{
		content:     database.Collection("content"),
		bookmarks:   database.Collection("bookmarks"),
		completions: database.Collection("completions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("content repo: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoContentRepo) Create(ctx context.Context, c *models.Content) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.content.InsertOne(ctx, c); err != nil {
		if database.IsDuplicateKey(err) {
			return fmt.Errorf("content slug %q: %w", c.Slug, ErrDuplicate)
		}
		return fmt.Errorf("failed to create content: %w", err)
	}
	return nil
}

func (r *MongoContentRepo) Update(ctx context.Context, c *models.Content) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.content.ReplaceOne(ctx, bson.M{"id": c.ID}, c)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return fmt.Errorf("content slug %q: %w", c.Slug, ErrDuplicate)
		}
		return fmt.Errorf("failed to update content %s: %w", c.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrContentNotFound
	}
	return nil
}

func (r *MongoContentRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.content.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete content %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrContentNotFound
	}
	if _, err := r.bookmarks.DeleteMany(ctx, bson.M{"contentId": id}); err != nil {
		return fmt.Errorf("failed to delete bookmarks for content %s: %w", id, err)
	}
	return nil
}

func (r *MongoContentRepo) GetByID(ctx context.Context, id string) (*models.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c models.Content
	if err := r.content.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch content %s: %w", id, err)
	}
	return &c, nil
}

func (r *MongoContentRepo) List(ctx context.Context, f models.ContentFilter) ([]models.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if f.Kind != "" {
		filter["kind"] = f.Kind
	}
	if f.Pillar != "" {
		filter["proofPillar"] = f.Pillar
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publishDate", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetSkip(int64(f.Offset)).
		SetLimit(int64(f.Limit)).
		SetProjection(bson.M{"body": 0, "lines": 0, "sections": 0})

	cursor, err := r.content.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.Content{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}
	return items, nil
}

func (r *MongoContentRepo) LatestDevotionalOnOrBefore(ctx context.Context, date string) (*models.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"kind": models.KindDevotional, "publishDate": bson.M{"$lte": date}}
	opts := options.FindOne().SetSort(bson.D{{Key: "publishDate", Value: -1}})

	var c models.Content
	if err := r.content.FindOne(ctx, filter, opts).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch devotional for %s: %w", date, err)
	}
	return &c, nil
}

func (r *MongoContentRepo) AddBookmark(ctx context.Context, b *models.Bookmark) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.bookmarks.InsertOne(ctx, b); err != nil {
		if database.IsDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to add bookmark: %w", err)
	}
	return nil
}

func (r *MongoContentRepo) RemoveBookmark(ctx context.Context, userID, contentID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.bookmarks.DeleteOne(ctx, bson.M{"userId": userID, "contentId": contentID}); err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	return nil
}

func (r *MongoContentRepo) ListBookmarks(ctx context.Context, userID, kind string) ([]models.Bookmark, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"userId": userID}
	if kind != "" {
		filter["kind"] = kind
	}
	cursor, err := r.bookmarks.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Bookmark{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode bookmarks: %w", err)
	}
	return out, nil
}

func (r *MongoContentRepo) AddCompletion(ctx context.Context, c *models.Completion) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.completions.InsertOne(ctx, c); err != nil {
		if database.IsDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to record completion: %w", err)
	}
	return nil
}
