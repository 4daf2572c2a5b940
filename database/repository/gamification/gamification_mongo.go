package gamificationRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"sacredgreeks/database"
	"sacredgreeks/models"
	"sacredgreeks/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MongoGamificationRepo struct {
	points       *mongo.Collection
	achievements *mongo.Collection
	challenges   *mongo.Collection
}

func NewMongoGamificationRepo() GamificationRepository {
	repo := &MongoGamificationRepo{
		points:       database.Collection("point_events"),
		achievements: database.Collection("user_achievements"),
		challenges:   database.Collection("challenge_completions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("gamification repo: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoGamificationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.points.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "action", Value: 1}}},
		{
			// One daily-login award per day.
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "action", Value: 1}, {Key: "refId", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"action": models.ActionDailyLogin}),
		},
	}); err != nil {
		return fmt.Errorf("failed to create point indexes: %w", err)
	}
	if _, err := r.achievements.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "key", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return fmt.Errorf("failed to create achievement indexes: %w", err)
	}
	if _, err := r.challenges.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return fmt.Errorf("failed to create challenge indexes: %w", err)
	}
	return nil
}

func (r *MongoGamificationRepo) InsertPointEvent(ctx context.Context, e *models.PointEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.points.InsertOne(ctx, e); err != nil {
		if database.IsDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert point event: %w", err)
	}
	return nil
}

func (r *MongoGamificationRepo) TotalPoints(ctx context.Context, userID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$points"}}}},
	}
	cursor, err := r.points.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum points: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total int `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode points total: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *MongoGamificationRepo) CountByAction(ctx context.Context, userID, sinceDate string) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	match := bson.M{"userId": userID}
	if sinceDate != "" {
		match["date"] = bson.M{"$gte": sinceDate}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$action", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.points.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count actions: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Action string `bson:"_id"`
		Count  int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode action counts: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Action] = row.Count
	}
	return counts, nil
}

func (r *MongoGamificationRepo) ActivityDates(ctx context.Context, userID, sinceDate string, actions []string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"userId": userID}
	if sinceDate != "" {
		filter["date"] = bson.M{"$gte": sinceDate}
	}
	if len(actions) > 0 {
		filter["action"] = bson.M{"$in": actions}
	}
	raw, err := r.points.Distinct(ctx, "date", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity dates: %w", err)
	}
	dates := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			dates = append(dates, s)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (r *MongoGamificationRepo) ListUserAchievements(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.achievements.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.UserAchievement{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode achievements: %w", err)
	}
	return out, nil
}

func (r *MongoGamificationRepo) InsertUserAchievement(ctx context.Context, ua *models.UserAchievement) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.achievements.InsertOne(ctx, ua); err != nil {
		if database.IsDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert achievement: %w", err)
	}
	return nil
}

func (r *MongoGamificationRepo) InsertChallengeCompletion(ctx context.Context, c *models.ChallengeCompletion) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.challenges.InsertOne(ctx, c); err != nil {
		if database.IsDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to record challenge completion: %w", err)
	}
	return nil
}

func (r *MongoGamificationRepo) HasChallengeCompletion(ctx context.Context, userID, date string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.challenges.CountDocuments(ctx, bson.M{"userId": userID, "date": date}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check challenge completion: %w", err)
	}
	return n > 0, nil
}
