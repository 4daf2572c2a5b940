package forumRepo

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

type MongoForumRepo struct {
	topics  *mongo.Collection
	replies *mongo.Collection
}

func NewMongoForumRepo() ForumRepository {
	repo := &MongoForumRepo{
		topics:  database.Collection("forum_topics"),
		replies: database.Collection("forum_replies"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("forum repo: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoForumRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.topics.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "categoryId", Value: 1}, {Key: "pinned", Value: -1}, {Key: "lastReplyAt", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("failed to create topic indexes: %w", err)
	}
	if _, err := r.replies.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "topicId", Value: 1}, {Key: "createdAt", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create reply indexes: %w", err)
	}
	return nil
}

func (r *MongoForumRepo) CreateTopic(ctx context.Context, t *models.Topic) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.topics.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("failed to create topic: %w", err)
	}
	return nil
}

func (r *MongoForumRepo) GetTopic(ctx context.Context, id string) (*models.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var t models.Topic
	if err := r.topics.FindOne(ctx, bson.M{"id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch topic %s: %w", id, err)
	}
	return &t, nil
}

func (r *MongoForumRepo) ListTopics(ctx context.Context, categoryID string, limit, offset int) ([]models.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if categoryID != "" {
		filter["categoryId"] = categoryID
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "pinned", Value: -1}, {Key: "lastReplyAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.topics.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Topic{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode topics: %w", err)
	}
	return out, nil
}

func (r *MongoForumRepo) SetTopicFlag(ctx context.Context, id, flag string, value bool) error {
	if flag != "pinned" && flag != "locked" {
		return fmt.Errorf("unsupported topic flag %q", flag)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.topics.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{flag: value, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to update topic %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoForumRepo) DeleteTopic(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.topics.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete topic %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	if _, err := r.replies.DeleteMany(ctx, bson.M{"topicId": id}); err != nil {
		return fmt.Errorf("failed to delete replies of topic %s: %w", id, err)
	}
	return nil
}

func (r *MongoForumRepo) AddReply(ctx context.Context, reply *models.Reply) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.replies.InsertOne(ctx, reply); err != nil {
		return fmt.Errorf("failed to create reply: %w", err)
	}
	update := bson.M{
		"$inc": bson.M{"replyCount": 1},
		"$set": bson.M{"lastReplyAt": reply.CreatedAt, "updatedAt": reply.CreatedAt},
	}
	if _, err := r.topics.UpdateOne(ctx, bson.M{"id": reply.TopicID}, update); err != nil {
		return fmt.Errorf("failed to bump topic %s: %w", reply.TopicID, err)
	}
	return nil
}

func (r *MongoForumRepo) GetReply(ctx context.Context, id string) (*models.Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var reply models.Reply
	if err := r.replies.FindOne(ctx, bson.M{"id": id}).Decode(&reply); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch reply %s: %w", id, err)
	}
	return &reply, nil
}

func (r *MongoForumRepo) ListReplies(ctx context.Context, topicID string) ([]models.Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.replies.Find(ctx, bson.M{"topicId": topicID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Reply{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode replies: %w", err)
	}
	return out, nil
}

func (r *MongoForumRepo) DeleteReply(ctx context.Context, reply *models.Reply) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.replies.DeleteOne(ctx, bson.M{"id": reply.ID})
	if err != nil {
		return fmt.Errorf("failed to delete reply %s: %w", reply.ID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	filter := bson.M{"id": reply.TopicID, "replyCount": bson.M{"$gt": 0}}
	if _, err := r.topics.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"replyCount": -1}}); err != nil {
		return fmt.Errorf("failed to decrement reply count: %w", err)
	}
	return nil
}
