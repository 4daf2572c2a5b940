package notification

import (
	"context"
	"fmt"
	"strings"

	"sacredgreeks/models"
	"sacredgreeks/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUserAgentBytes = 300

var platforms = map[string]bool{"web": true, "ios": true, "android": true}

func (s *DefaultNotificationService) Subscribe(ctx context.Context, userID, token, platform, userAgent string) (*models.PushSubscription, error) {
	token = strings.TrimSpace(token)
	platform = strings.ToLower(strings.TrimSpace(platform))
	if token == "" || !platforms[platform] {
		return nil, ErrInvalidInput
	}
	userAgent = utils.TruncateUTF8(userAgent, maxUserAgentBytes)

	now := s.now()
	sub := &models.PushSubscription{
		ID:         uuid.New().String(),
		UserID:     userID,
		Token:      token,
		Platform:   platform,
		UserAgent:  userAgent,
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := s.Repo.Upsert(ctx, sub); err != nil {
		utils.GetLogger().Error("push: subscribe failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to save push subscription")
	}
	return sub, nil
}

// Unsubscribe only removes a token owned by userID.
func (s *DefaultNotificationService) Unsubscribe(ctx context.Context, userID, token string) error {
	removed, err := s.Repo.DeleteForUser(ctx, userID, strings.TrimSpace(token))
	if err != nil {
		utils.GetLogger().Error("push: unsubscribe failed", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to remove push subscription")
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func (s *DefaultNotificationService) message(tokens []string, title, body string, data map[string]string) *messaging.MulticastMessage {
	msg := &messaging.MulticastMessage{
		Tokens:       tokens,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
	}
	if s.AppURL != "" {
		msg.Webpush = &messaging.WebpushConfig{
			FCMOptions: &messaging.WebpushFCMOptions{Link: s.AppURL},
		}
	}
	return msg
}

// send delivers one batch and prunes tokens FCM reports as gone. It returns the success count.
func (s *DefaultNotificationService) send(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, error) {
	if s.FCM == nil || len(tokens) == 0 {
		return 0, nil
	}
	resp, err := s.FCM.SendEachForMulticast(ctx, s.message(tokens, title, body, data))
	if err != nil {
		return 0, fmt.Errorf("fcm multicast: %w", err)
	}

	var dead []string
	for i, r := range resp.Responses {
		if r == nil || r.Success || i >= len(tokens) {
			continue
		}
		if messaging.IsUnregistered(r.Error) || messaging.IsInvalidArgument(r.Error) {
			dead = append(dead, tokens[i])
		}
	}
	if len(dead) > 0 {
		if err := s.Repo.DeleteTokens(ctx, dead); err != nil {
			utils.GetLogger().Warn("push: prune failed", zap.Int("count", len(dead)), zap.Error(err))
		}
	}
	return resp.SuccessCount, nil
}

func (s *DefaultNotificationService) SendToUser(ctx context.Context, userID, title, body string, data map[string]string) error {
	tokens, err := s.Repo.TokensForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendToUser: could not list tokens for %s: %w", userID, err)
	}
	if len(tokens) == 0 {
		return nil
	}
	if data == nil {
		data = map[string]string{}
	}
	for start := 0; start < len(tokens); start += BatchSize {
		end := start + BatchSize
		if end > len(tokens) {
			end = len(tokens)
		}
		if _, err := s.send(ctx, tokens[start:end], title, body, data); err != nil {
			return fmt.Errorf("SendToUser: %w", err)
		}
	}
	return nil
}

// Broadcast pages through every subscription in batches and returns the delivered count.
func (s *DefaultNotificationService) Broadcast(ctx context.Context, title, body string, data map[string]string) (int, error) {
	logger := utils.GetLogger()
	sent := 0
	cursor := ""
	for {
		tokens, last, err := s.Repo.TokensPage(ctx, cursor, BatchSize)
		if err != nil {
			return sent, fmt.Errorf("Broadcast: %w", err)
		}
		if len(tokens) == 0 {
			break
		}
		n, err := s.send(ctx, tokens, title, body, data)
		if err != nil {
			logger.Error("push: broadcast batch failed", zap.String("after", cursor), zap.Error(err))
		}
		sent += n
		if len(tokens) < BatchSize {
			break
		}
		cursor = last
	}
	logger.Info("push: broadcast complete", zap.Int("sent", sent))
	return sent, nil
}
