package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// MaxUploadBytes caps multipart file uploads (default 20 MiB).
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES, default=20971520"`

	Mongo    MongoConfig
	Redis    RedisConfig
	S3       S3Config
	SMTP     SMTPConfig
	Notifier NotifierConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=dochub"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type S3Config struct {
	Endpoint     string `env:"S3_ENDPOINT"`
	Region       string `env:"S3_REGION,        default=us-east-1"`
	Bucket       string `env:"S3_BUCKET,        default=dochub-files"`
	AccessKey    string `env:"S3_ACCESS_KEY"`
	SecretKey    string `env:"S3_SECRET_KEY"`
	UsePathStyle bool   `env:"S3_USE_PATH_STYLE, default=false"`
	// SignedURLTTLSeconds bounds download links issued on resource reads.
	SignedURLTTLSeconds int `env:"S3_SIGNED_URL_TTL_SECONDS, default=900"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=localhost"`
	Port     int    `env:"SMTP_PORT, default=25"`
	From     string `env:"SMTP_FROM, default=dochub@localhost"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
}

type NotifierConfig struct {
	Enabled bool `env:"NOTIFIER_ENABLED, default=true"`
	// Schedule is a cron expression. The once-per-day-per-tool guard holds
	// whatever cadence is configured here.
	Schedule string `env:"NOTIFIER_SCHEDULE, default=0 8 * * *"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
