package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	ClientJWTSecret   string `mapstructure:"CLIENT_JWT_SECRET"`

	// Reminder store.
	DatabaseURL        string `mapstructure:"DATABASE_URL"`
	DatabaseName       string `mapstructure:"DATABASE_NAME"`
	ReminderCollection string `mapstructure:"REMINDER_COLLECTION"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisNotifyDB int    `mapstructure:"REDIS_NOTIFY_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Firebase Cloud Messaging.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FCMTopic                string `mapstructure:"FCM_TOPIC"`

	// Offline cache.
	CacheName     string   `mapstructure:"CACHE_NAME"`
	CacheDir      string   `mapstructure:"CACHE_DIR"`
	CacheManifest []string `mapstructure:"CACHE_MANIFEST"`
	AssetOrigin   string   `mapstructure:"ASSET_ORIGIN"`

	// Scheduling and sync.
	Timezone                 string        `mapstructure:"TIMEZONE"`
	PeriodicSyncEnabled      bool          `mapstructure:"PERIODIC_SYNC_ENABLED"`
	PeriodicSyncInterval     time.Duration `mapstructure:"PERIODIC_SYNC_INTERVAL"`
	DelayedSchedulingEnabled bool          `mapstructure:"DELAYED_SCHEDULING_ENABLED"`
	DurableScheduling        bool          `mapstructure:"DURABLE_SCHEDULING"`

	// Notification rendering and click routing.
	DashboardPath string `mapstructure:"DASHBOARD_PATH"`
	IconPath      string `mapstructure:"ICON_PATH"`
	BadgePath     string `mapstructure:"BADGE_PATH"`
}

// DefaultManifest is the app shell installed for offline use.
var DefaultManifest = []string{
	"/",
	"/index.html",
	"/vaccination-dashboard",
	"/manifest.json",
	"/icons/icon-192x192.png",
	"/icons/icon-512x512.png",
	"/icons/badge-72x72.png",
}

// LoadConfig reads config.yaml from "." or "./config" (or configFile when set), then the environment.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("LoadConfig: failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("LoadConfig: failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("CLIENT_JWT_SECRET", "")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "vaxremind")
	v.SetDefault("REMINDER_COLLECTION", "vaccination_reminders")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_NOTIFY_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("FCM_TOPIC", "vaccination-reminders")
	v.SetDefault("CACHE_NAME", "vaccination-reminder-v1")
	v.SetDefault("CACHE_DIR", "./data/cache")
	v.SetDefault("CACHE_MANIFEST", DefaultManifest)
	v.SetDefault("ASSET_ORIGIN", "http://localhost:3000")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("PERIODIC_SYNC_ENABLED", true)
	v.SetDefault("PERIODIC_SYNC_INTERVAL", "1h")
	v.SetDefault("DELAYED_SCHEDULING_ENABLED", true)
	v.SetDefault("DURABLE_SCHEDULING", false)
	v.SetDefault("DASHBOARD_PATH", "/vaccination-dashboard")
	v.SetDefault("ICON_PATH", "/icons/icon-192x192.png")
	v.SetDefault("BADGE_PATH", "/icons/badge-72x72.png")
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.CacheName == "" {
		return errors.New("config: CACHE_NAME is required")
	}
	if c.DashboardPath == "" {
		return errors.New("config: DASHBOARD_PATH is required")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config: invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location is the time zone reminder dates and times are compared in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
