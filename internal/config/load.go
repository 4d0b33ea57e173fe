package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "JUSTIC"

// defaults lists every configuration key with its default value. Keys with a
// nil default are required and are only bound to the environment.
var defaults = map[string]interface{}{
	"server.port":            8000,
	"server.log_level":       "info",
	"server.allowed_origins": []string{},

	"auth.jwt_secret":                nil,
	"auth.token_lifetime_minutes":    60,
	"auth.google_client_id":          nil,
	"auth.google_client_secret":      nil,
	"auth.google_redirect_uri":       nil,
	"auth.frontend_success_url":      nil,
	"auth.frontend_error_url":        nil,
	"auth.state_ttl_seconds":         300,
	"auth.login_session_ttl_seconds": 120,

	"database.url": nil,

	"redis.addr":     "localhost:6379",
	"redis.password": "",
	"redis.db":       0,

	"storage.endpoint":   nil,
	"storage.access_key": nil,
	"storage.secret_key": nil,
	"storage.bucket":     "videos",
	"storage.region":     "us-east-1",
	"storage.use_ssl":    false,

	"storage.upload_timeout_seconds": 300,

	"provider.base_url":               "https://api.kie.ai",
	"provider.api_key":                nil,
	"provider.model":                  "veo3_fast",
	"provider.aspect_ratio":           "9:16",
	"provider.callback_url":           nil,
	"provider.submit_timeout_seconds": 30,
	"provider.fetch_timeout_seconds":  120,
	"provider.max_artifact_bytes":     int64(512 << 20),

	"media.ffmpeg_path":           "ffmpeg",
	"media.thumbnail_offset_ms":   1000,
	"media.thumbnail_width":       0,
	"media.jpeg_quality":          85,
	"media.video_chunk_bytes":     1 << 20,
	"media.thumbnail_chunk_bytes": 256 << 10,
	"media.temp_dir":              "",

	"registry.backend":    "memory",
	"registry.key_prefix": "task:",
	"registry.ttl_hours":  0,

	"events.kafka_brokers": []string{},
	"events.kafka_topic":   "video.task.events",
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		if value != nil {
			v.SetDefault(key, value)
		}
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
