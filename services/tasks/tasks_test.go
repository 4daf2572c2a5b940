package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"sacredgreeks/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task.Type(), string(task.Payload()))
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func TestTaskPayloads(t *testing.T) {
	task, err := NewEmailTask(models.EmailMessage{To: []string{"a@example.org"}, Subject: "s", HTML: "h"})
	require.NoError(t, err)
	assert.Equal(t, TypeSendEmail, task.Type())

	var msg models.EmailMessage
	require.NoError(t, json.Unmarshal(task.Payload(), &msg))
	assert.Equal(t, []string{"a@example.org"}, msg.To)

	task, err = NewDevotionalReminderTask("2026-10-19")
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-10-19"}`, string(task.Payload()))
}

func TestEnqueueAchievementEvaluation(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, EnqueueAchievementEvaluation(ctx, nil, "u1"))

	q := new(mockEnqueuer)
	q.On("EnqueueContext", mock.Anything, TypeEvaluateAchievements, `{"userId":"u1"}`).Return(&asynq.TaskInfo{ID: "t1"}, nil).Once()
	require.NoError(t, EnqueueAchievementEvaluation(ctx, q, "u1"))
	q.AssertExpectations(t)

	boom := errors.New("redis down")
	q = new(mockEnqueuer)
	q.On("EnqueueContext", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)
	assert.ErrorIs(t, EnqueueAchievementEvaluation(ctx, q, "u1"), boom)
}
