package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string
	Port           string
	DB             DBConfig
	RedisAddr      string
	KafkaBroker    string
	Uploads        UploadConfig
	HTTP           HTTPConfig
	RateLimit      RateLimitConfig
	CORSOrigins    []string
	MetricsEnabled bool
	OutboxPoll     time.Duration
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type UploadConfig struct {
	Dir             string
	ResumeMaxBytes  int64
	ImageMaxBytes   int64
	GalleryMaxFiles int
}

type HTTPConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		AppEnv:      v.GetString("APP_ENV"),
		Port:        v.GetString("PORT"),
		RedisAddr:   v.GetString("REDIS_ADDR"),
		KafkaBroker: v.GetString("KAFKA_BROKER"),
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			Port:     v.GetString("DB_PORT"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Uploads: UploadConfig{
			Dir:             v.GetString("UPLOADS_DIR"),
			ResumeMaxBytes:  v.GetInt64("UPLOAD_RESUME_MAX_BYTES"),
			ImageMaxBytes:   v.GetInt64("UPLOAD_IMAGE_MAX_BYTES"),
			GalleryMaxFiles: v.GetInt("UPLOAD_GALLERY_MAX_FILES"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:  v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:  v.GetDuration("HTTP_IDLE_TIMEOUT"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		CORSOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		MetricsEnabled: v.GetBool("METRICS_ENABLED"),
		OutboxPoll:     v.GetDuration("OUTBOX_POLL_INTERVAL"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Uploads.Dir == "" {
		return errors.New("UPLOADS_DIR must not be empty")
	}
	if c.Uploads.ResumeMaxBytes <= 0 || c.Uploads.ImageMaxBytes <= 0 {
		return errors.New("upload size limits must be positive")
	}
	if c.Uploads.GalleryMaxFiles < 0 {
		return fmt.Errorf("UPLOAD_GALLERY_MAX_FILES must not be negative, got %d", c.Uploads.GalleryMaxFiles)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("UPLOADS_DIR", "uploads")
	v.SetDefault("UPLOAD_RESUME_MAX_BYTES", 2<<20)
	v.SetDefault("UPLOAD_IMAGE_MAX_BYTES", 10<<20)
	v.SetDefault("UPLOAD_GALLERY_MAX_FILES", 10)
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "30s")
	v.SetDefault("HTTP_IDLE_TIMEOUT", "60s")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("OUTBOX_POLL_INTERVAL", "3s")
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
