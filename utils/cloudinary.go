package utils

import (
	"errors"
	"fmt"

	"sacredgreeks/config"

	"github.com/cloudinary/cloudinary-go/v2"
)

// ErrMediaNotConfigured is returned when any Cloudinary credential is missing.
var ErrMediaNotConfigured = errors.New("cloudinary credentials not configured")

// NewCloudinary builds a client that always hands out https delivery URLs.
func NewCloudinary() (*cloudinary.Cloudinary, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, ErrMediaNotConfigured
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: init client: %w", err)
	}
	cld.Config.URL.Secure = true
	return cld, nil
}
