package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"sacredgreeks/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendEmail            = "email:send"
	TypeDevotionalReminder   = "devotional:reminder"
	TypeEvaluateAchievements = "achievements:evaluate"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// EmailMaxRetry bounds provider retries for a single message.
const EmailMaxRetry = 3

func NewEmailTask(msg models.EmailMessage) (*asynq.Task, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal email payload: %w", err)
	}
	return asynq.NewTask(TypeSendEmail, b, asynq.MaxRetry(EmailMaxRetry), asynq.Queue(QueueCritical)), nil
}

func NewDevotionalReminderTask(date string) (*asynq.Task, error) {
	b, err := json.Marshal(models.DevotionalReminderPayload{Date: date})
	if err != nil {
		return nil, fmt.Errorf("marshal reminder payload: %w", err)
	}
	return asynq.NewTask(TypeDevotionalReminder, b, asynq.MaxRetry(1), asynq.Queue(QueueDefault)), nil
}

func NewEvaluateAchievementsTask(userID string) (*asynq.Task, error) {
	b, err := json.Marshal(models.AchievementEvalPayload{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("marshal achievement payload: %w", err)
	}
	return asynq.NewTask(TypeEvaluateAchievements, b, asynq.MaxRetry(3), asynq.Queue(QueueLow)), nil
}

// Enqueuer is the subset of *asynq.Client used by producers.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EnqueueAchievementEvaluation schedules a background achievement check for userID.
// A nil queue is a no-op.
func EnqueueAchievementEvaluation(ctx context.Context, q Enqueuer, userID string) error {
	if q == nil {
		return nil
	}
	task, err := NewEvaluateAchievementsTask(userID)
	if err != nil {
		return err
	}
	if _, err := q.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeEvaluateAchievements, err)
	}
	return nil
}
