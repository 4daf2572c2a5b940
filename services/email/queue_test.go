package email

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"sacredgreeks/models"
	"sacredgreeks/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func TestAsynqQueueEnqueue(t *testing.T) {
	msg := models.EmailMessage{To: []string{"a@b.org"}, Subject: "Hello", HTML: "<p>hi</p>"}

	enq := new(mockEnqueuer)
	enq.On("EnqueueContext", mock.Anything, mock.MatchedBy(func(task *asynq.Task) bool {
		var got models.EmailMessage
		return task.Type() == tasks.TypeSendEmail &&
			json.Unmarshal(task.Payload(), &got) == nil &&
			got.Subject == "Hello"
	})).Return(&asynq.TaskInfo{ID: "t1"}, nil).Once()

	require.NoError(t, NewAsynqQueue(enq).Enqueue(context.Background(), msg))
	enq.AssertExpectations(t)
}

func TestAsynqQueueRejectsInvalidMessage(t *testing.T) {
	enq := new(mockEnqueuer)

	err := NewAsynqQueue(enq).Enqueue(context.Background(), models.EmailMessage{Subject: "x", HTML: "y"})
	assert.ErrorIs(t, err, ErrNoRecipients)
	enq.AssertNotCalled(t, "EnqueueContext", mock.Anything, mock.Anything)
}

func TestAsynqQueueWrapsBrokerError(t *testing.T) {
	enq := new(mockEnqueuer)
	broker := errors.New("redis down")
	enq.On("EnqueueContext", mock.Anything, mock.Anything).Return(nil, broker)

	err := NewAsynqQueue(enq).Enqueue(context.Background(), models.EmailMessage{To: []string{"a@b.org"}, Subject: "s", HTML: "x"})
	assert.ErrorIs(t, err, broker)
}
