package utils

import (
	"context"
	"errors"
	"fmt"
	"os"

	"sacredgreeks/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// ErrPushNotConfigured is returned when no service-account file is available.
var ErrPushNotConfigured = errors.New("firebase credentials not configured")

// NewFCMClient builds the Messaging client from FIREBASE_CREDENTIALS_FILE.
func NewFCMClient(ctx context.Context) (*messaging.Client, error) {
	path := config.AppConfig.FirebaseCredentialsFile
	if path == "" {
		return nil, ErrPushNotConfigured
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPushNotConfigured, err)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(path))
	if err != nil {
		return nil, fmt.Errorf("firebase: init app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: messaging client: %w", err)
	}
	return client, nil
}
