package email

import (
	"context"
	"fmt"

	"sacredgreeks/models"
	"sacredgreeks/utils"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Sender delivers a rendered message through the transactional provider.
type Sender interface {
	Send(ctx context.Context, msg models.EmailMessage) (string, error)
}

type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	return &ResendSender{client: resend.NewClient(apiKey), from: from}, nil
}

func (s *ResendSender) Send(ctx context.Context, msg models.EmailMessage) (string, error) {
	if err := Validate(msg); err != nil {
		return "", err
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}
	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		utils.GetLogger().Error("resend: send failed", zap.Strings("to", msg.To), zap.Error(err))
		return "", fmt.Errorf("send email: %w", err)
	}
	return sent.Id, nil
}
