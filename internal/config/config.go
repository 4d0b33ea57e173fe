package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis" validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage" validate:"required"`
	Provider ProviderConfig `mapstructure:"provider" validate:"required"`
	Media    MediaConfig    `mapstructure:"media" validate:"required"`
	Registry RegistryConfig `mapstructure:"registry" validate:"required"`
	Events   EventsConfig   `mapstructure:"events"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel       string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig contains JWT issuance and Google sign-in settings.
type AuthConfig struct {
	JWTSecret              string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes   int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	GoogleClientID         string `mapstructure:"google_client_id" validate:"required"`
	GoogleClientSecret     string `mapstructure:"google_client_secret" validate:"required"`
	GoogleRedirectURI      string `mapstructure:"google_redirect_uri" validate:"required,url"`
	FrontendSuccessURL     string `mapstructure:"frontend_success_url" validate:"required,url"`
	FrontendErrorURL       string `mapstructure:"frontend_error_url" validate:"required,url"`
	StateTTLSeconds        int    `mapstructure:"state_ttl_seconds" validate:"required,gt=0"`
	LoginSessionTTLSeconds int    `mapstructure:"login_session_ttl_seconds" validate:"required,gt=0"`
}

// TokenLifetime returns the access token lifetime as a duration.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// StateTTL returns how long an OAuth state value stays valid.
func (c AuthConfig) StateTTL() time.Duration {
	return time.Duration(c.StateTTLSeconds) * time.Second
}

// LoginSessionTTL returns how long a one-time login session can be redeemed.
func (c AuthConfig) LoginSessionTTL() time.Duration {
	return time.Duration(c.LoginSessionTTLSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// RedisConfig contains the Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required,hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// StorageConfig contains the S3-compatible object store settings.
type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint" validate:"required"`
	AccessKey string `mapstructure:"access_key" validate:"required"`
	SecretKey string `mapstructure:"secret_key" validate:"required"`
	Bucket    string `mapstructure:"bucket" validate:"required"`
	Region    string `mapstructure:"region" validate:"required"`
	UseSSL    bool   `mapstructure:"use_ssl"`

	UploadTimeoutSeconds int `mapstructure:"upload_timeout_seconds" validate:"required,gt=0"`
}

// UploadTimeout bounds storing one artifact.
func (c StorageConfig) UploadTimeout() time.Duration {
	return time.Duration(c.UploadTimeoutSeconds) * time.Second
}

// ProviderConfig contains the video generation provider settings.
type ProviderConfig struct {
	BaseURL              string `mapstructure:"base_url" validate:"required,url"`
	APIKey               string `mapstructure:"api_key" validate:"required"`
	Model                string `mapstructure:"model" validate:"required"`
	AspectRatio          string `mapstructure:"aspect_ratio" validate:"required"`
	CallbackURL          string `mapstructure:"callback_url" validate:"required,url"`
	SubmitTimeoutSeconds int    `mapstructure:"submit_timeout_seconds" validate:"required,gt=0"`
	FetchTimeoutSeconds  int    `mapstructure:"fetch_timeout_seconds" validate:"required,gt=0"`
	MaxArtifactBytes     int64  `mapstructure:"max_artifact_bytes" validate:"required,gt=0"`
}

// SubmitTimeout returns the timeout for a generation request.
func (c ProviderConfig) SubmitTimeout() time.Duration {
	return time.Duration(c.SubmitTimeoutSeconds) * time.Second
}

// FetchTimeout returns the timeout for downloading a finished artifact.
func (c ProviderConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// MediaConfig contains frame extraction and streaming settings.
type MediaConfig struct {
	FFmpegPath          string `mapstructure:"ffmpeg_path" validate:"required"`
	ThumbnailOffsetMS   int    `mapstructure:"thumbnail_offset_ms" validate:"gte=0"`
	ThumbnailWidth      int    `mapstructure:"thumbnail_width" validate:"gte=0"`
	JPEGQuality         int    `mapstructure:"jpeg_quality" validate:"required,gte=1,lte=100"`
	VideoChunkBytes     int    `mapstructure:"video_chunk_bytes" validate:"required,gte=4096"`
	ThumbnailChunkBytes int    `mapstructure:"thumbnail_chunk_bytes" validate:"required,gte=4096"`
	TempDir             string `mapstructure:"temp_dir"`
}

// ThumbnailOffset returns the position of the frame used as thumbnail.
func (c MediaConfig) ThumbnailOffset() time.Duration {
	return time.Duration(c.ThumbnailOffsetMS) * time.Millisecond
}

// RegistryConfig selects the task registry backend.
type RegistryConfig struct {
	Backend   string `mapstructure:"backend" validate:"required,oneof=memory redis"`
	KeyPrefix string `mapstructure:"key_prefix"`
	TTLHours  int    `mapstructure:"ttl_hours" validate:"gte=0"`
}

// TTL returns the expiry of Redis registry entries; zero means no expiry.
func (c RegistryConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// EventsConfig configures publishing of task lifecycle events.
// Publishing to Kafka is disabled when no brokers are configured.
type EventsConfig struct {
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	KafkaTopic   string   `mapstructure:"kafka_topic"`
}
