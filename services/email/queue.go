package email

import (
	"context"
	"fmt"

	"sacredgreeks/models"
	"sacredgreeks/services/tasks"
)

// Queue hands messages to the background worker.
type Queue interface {
	Enqueue(ctx context.Context, msg models.EmailMessage) error
}

type AsynqQueue struct {
	client tasks.Enqueuer
}

func NewAsynqQueue(client tasks.Enqueuer) *AsynqQueue {
	return &AsynqQueue{client: client}
}

func (q *AsynqQueue) Enqueue(ctx context.Context, msg models.EmailMessage) error {
	if err := Validate(msg); err != nil {
		return err
	}
	task, err := tasks.NewEmailTask(msg)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue email: %w", err)
	}
	return nil
}
