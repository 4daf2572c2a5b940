package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	AppBaseURL        string `mapstructure:"APP_BASE_URL"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AdminToken        string `mapstructure:"ADMIN_TOKEN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`
	RedisPubSubDB int    `mapstructure:"REDIS_PUBSUB_DB"`

	// Stripe billing.
	StripeKey           string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	StripePriceMonthly  string `mapstructure:"STRIPE_PRICE_PREMIUM_MONTHLY"`
	StripePriceAnnual   string `mapstructure:"STRIPE_PRICE_PREMIUM_ANNUAL"`

	// Transactional email.
	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
	EmailFrom    string `mapstructure:"EMAIL_FROM"`
	ContactInbox string `mapstructure:"CONTACT_INBOX"`

	// Firebase Cloud Messaging.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Cloudinary media storage.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Cron spec for the daily devotional push, evaluated in UTC.
	DevotionalReminderCron string `mapstructure:"DEVOTIONAL_REMINDER_CRON"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_BASE_URL", "http://localhost:5173")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "sacredgreeks")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("ADMIN_TOKEN", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("REDIS_PUBSUB_DB", 3)
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	viper.SetDefault("STRIPE_PRICE_PREMIUM_MONTHLY", "")
	viper.SetDefault("STRIPE_PRICE_PREMIUM_ANNUAL", "")
	viper.SetDefault("RESEND_API_KEY", "")
	viper.SetDefault("EMAIL_FROM", "Sacred Greeks <hello@sacredgreeks.com>")
	viper.SetDefault("CONTACT_INBOX", "support@sacredgreeks.com")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "firebase-service-account.json")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-flash")
	viper.SetDefault("DEVOTIONAL_REMINDER_CRON", "0 11 * * *")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
