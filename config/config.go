package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB          int    `mapstructure:"REDIS_AUTH_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Calendar-meeting function endpoint (serverless collaborator).
	MeetingAPIBaseURL string `mapstructure:"MEETING_API_BASE_URL"`
	// Signing key for the video-conferencing embed room tokens.
	MeetingEmbedSecret string `mapstructure:"MEETING_EMBED_SECRET"`

	// Holiday calendar provider.
	HolidayAPIBaseURL string `mapstructure:"HOLIDAY_API_BASE_URL"`
	HolidayAPIKey     string `mapstructure:"HOLIDAY_API_KEY"`
	HolidayCountry    string `mapstructure:"HOLIDAY_COUNTRY"`

	// IANA name of the office timezone; slot rules evaluate wall-clock
	// checks in this zone regardless of client offsets.
	OfficeTimezone string `mapstructure:"OFFICE_TIMEZONE"`

	// Public portal base URL, used for QR tracking links.
	PortalBaseURL string `mapstructure:"PORTAL_BASE_URL"`

	// Cloudinary blob storage.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Firebase service account for FCM push.
	FirebaseServiceAccountKeyPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
}

var AppConfig Config

// LoadConfig initializes Viper to load config values from env, file, or defaults.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("HOLIDAY_API_BASE_URL", "https://calendarific.com/api/v2")
	viper.SetDefault("HOLIDAY_COUNTRY", "PH")
	viper.SetDefault("OFFICE_TIMEZONE", "Asia/Manila")
	viper.SetDefault("PORTAL_BASE_URL", "http://localhost:3000")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
