package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sacredgreeks/config"
	"sacredgreeks/models"
	"sacredgreeks/services/content"
	"sacredgreeks/services/email"
	"sacredgreeks/services/engagement"
	"sacredgreeks/services/gamification"
	"sacredgreeks/services/notification"
	"sacredgreeks/services/tasks"
	"sacredgreeks/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Handlers bundles what the background tasks call into.
type Handlers struct {
	Sender       email.Sender
	Content      content.ContentService
	Notifier     notification.NotificationService
	Gamification gamification.GamificationService
	Engagement   engagement.EngagementService
	NowFn        func() time.Time
}

func (h *Handlers) now() time.Time {
	if h.NowFn != nil {
		return h.NowFn()
	}
	return time.Now()
}

// RedisOpt points asynq at the queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewServeMux routes every task type to its handler.
func NewServeMux(h *Handlers) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendEmail, h.handleSendEmail)
	mux.HandleFunc(tasks.TypeDevotionalReminder, h.handleDevotionalReminder)
	mux.HandleFunc(tasks.TypeEvaluateAchievements, h.handleEvaluateAchievements)
	return mux
}

// StartWorker starts the asynq server in the background. Call Shutdown on the result when done.
func StartWorker(opt asynq.RedisConnOpt, h *Handlers) (*asynq.Server, error) {
	logger := utils.GetLogger()
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			tasks.QueueCritical: 6,
			tasks.QueueDefault:  3,
			tasks.QueueLow:      1,
		},
		Logger: logger.Sugar(),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.Error("task failed",
				zap.String("type", task.Type()),
				zap.Int("retried", retried),
				zap.Int("maxRetry", maxRetry),
				zap.Error(err))
		}),
	})

	if err := srv.Start(NewServeMux(h)); err != nil {
		return nil, fmt.Errorf("failed to start task worker: %w", err)
	}
	logger.Info("task worker started")
	return srv, nil
}

// StartScheduler registers the daily devotional reminder on cronSpec, evaluated in UTC.
func StartScheduler(opt asynq.RedisConnOpt, cronSpec string) (*asynq.Scheduler, error) {
	logger := utils.GetLogger()
	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: time.UTC,
		Logger:   logger.Sugar(),
	})

	// An empty date resolves to the day the task runs.
	task, err := tasks.NewDevotionalReminderTask("")
	if err != nil {
		return nil, err
	}
	entryID, err := scheduler.Register(cronSpec, task)
	if err != nil {
		return nil, fmt.Errorf("failed to register devotional reminder: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}
	logger.Info("scheduler started", zap.String("cron", cronSpec), zap.String("entryID", entryID))
	return scheduler, nil
}

func (h *Handlers) handleSendEmail(ctx context.Context, t *asynq.Task) error {
	var msg models.EmailMessage
	if err := json.Unmarshal(t.Payload(), &msg); err != nil {
		return fmt.Errorf("invalid email payload: %v: %w", err, asynq.SkipRetry)
	}
	if err := email.Validate(msg); err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if h.Sender == nil {
		return fmt.Errorf("%v: %w", email.ErrNotConfigured, asynq.SkipRetry)
	}

	id, err := h.Sender.Send(ctx, msg)
	if err != nil {
		return err
	}
	utils.GetLogger().Info("email sent", zap.String("id", id), zap.String("subject", msg.Subject))
	return nil
}

func (h *Handlers) handleDevotionalReminder(ctx context.Context, t *asynq.Task) error {
	logger := utils.GetLogger()
	var p models.DevotionalReminderPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
		}
	}
	if p.Date == "" {
		p.Date = h.now().UTC().Format("2006-01-02")
	}

	// The reminder only carries the title, so premium devotionals are announced too.
	devo, err := h.Content.DailyDevotional(ctx, p.Date, content.Viewer{Admin: true})
	if errors.Is(err, content.ErrNotFound) {
		logger.Info("devotional reminder skipped: nothing published", zap.String("date", p.Date))
		return nil
	}
	if err != nil {
		return err
	}

	data := map[string]string{
		"type":      "devotional",
		"contentId": devo.ID,
		"date":      p.Date,
	}
	sent, err := h.Notifier.Broadcast(ctx, "Today's devotional", devo.Title, data)
	if err != nil {
		return err
	}
	logger.Info("devotional reminder sent", zap.String("date", p.Date), zap.Int("sent", sent))
	return nil
}

func (h *Handlers) handleEvaluateAchievements(ctx context.Context, t *asynq.Task) error {
	var p models.AchievementEvalPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil || p.UserID == "" {
		return fmt.Errorf("invalid achievement payload: %w", asynq.SkipRetry)
	}
	// Evaluation follows every recorded activity, so the cached score is stale too.
	if h.Engagement != nil {
		if err := h.Engagement.Invalidate(ctx, p.UserID); err != nil {
			utils.GetLogger().Warn("engagement cache invalidation failed", zap.String("userID", p.UserID), zap.Error(err))
		}
	}
	unlocked, err := h.Gamification.EvaluateAchievements(ctx, p.UserID)
	if err != nil {
		return err
	}
	if len(unlocked) > 0 {
		utils.GetLogger().Info("achievements unlocked", zap.String("userID", p.UserID), zap.Int("count", len(unlocked)))
	}
	return nil
}
