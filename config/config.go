package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSessionSecret = "change-me-session-secret"

type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Session        SessionConfig
	PasswordPolicy PasswordPolicyConfig
	Storage        StorageConfig
	S3             S3Config
	Redis          RedisConfig
	Upload         UploadConfig
	Scheduler      SchedulerConfig
}

type ServerConfig struct {
	Port               string
	GinMode            string
	Environment        string
	LogFormat          string
	ShutdownTimeout    time.Duration
	MaxMultipartMemory int64
}

type DatabaseConfig struct {
	Driver     string // sqlite or postgres
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	SecureCookie bool
}

// PasswordPolicyConfig toggles each registration password rule independently.
// MinLength 0 disables the length rule.
type PasswordPolicyConfig struct {
	MinLength    int
	RequireDigit bool
	RequireUpper bool
	RequireLower bool
}

type StorageConfig struct {
	Driver    string // local or s3
	StaticDir string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

// RedisConfig is optional; an empty Addr disables session revocation and login throttling.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type UploadConfig struct {
	RequireLoginForShopUpload bool
}

type SchedulerConfig struct {
	PhotoSweepSchedule string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("SERVER_PORT", "5000"),
			GinMode:            getEnv("GIN_MODE", "debug"),
			Environment:        getEnv("ENVIRONMENT", "development"),
			LogFormat:          getEnv("LOG_FORMAT", "console"),
			ShutdownTimeout:    parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
			MaxMultipartMemory: int64(parseInt(getEnv("MAX_MULTIPART_MEMORY_MB", "16"), 16)) << 20,
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "crimcuts.db"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "crimcuts"),
			Password:   getEnv("DB_PASSWORD", ""),
			DBName:     getEnv("DB_NAME", "crimcuts"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
		},
		Session: SessionConfig{
			Secret:       getEnv("SESSION_SECRET", defaultSessionSecret),
			TTL:          parseDuration(getEnv("SESSION_TTL", "168h"), 168*time.Hour),
			SecureCookie: parseBool(getEnv("SESSION_SECURE_COOKIE", "false")),
		},
		PasswordPolicy: PasswordPolicyConfig{
			MinLength:    parseInt(getEnv("PASSWORD_MIN_LENGTH", "8"), 8),
			RequireDigit: parseBool(getEnv("PASSWORD_REQUIRE_DIGIT", "true")),
			RequireUpper: parseBool(getEnv("PASSWORD_REQUIRE_UPPER", "true")),
			RequireLower: parseBool(getEnv("PASSWORD_REQUIRE_LOWER", "true")),
		},
		Storage: StorageConfig{
			Driver:    getEnv("PHOTO_STORAGE", "local"),
			StaticDir: getEnv("STATIC_DIR", "static"),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", "crimcuts-photos"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		Upload: UploadConfig{
			RequireLoginForShopUpload: parseBool(getEnv("REQUIRE_LOGIN_FOR_SHOP_UPLOAD", "false")),
		},
		Scheduler: SchedulerConfig{
			PhotoSweepSchedule: getEnv("PHOTO_SWEEP_SCHEDULE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if c.IsProduction() && c.Session.Secret == defaultSessionSecret {
		return errors.New("SESSION_SECRET must be changed from the default value in production")
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Storage.Driver {
	case "local", "s3":
	default:
		return fmt.Errorf("unsupported PHOTO_STORAGE %q", c.Storage.Driver)
	}

	if c.PasswordPolicy.MinLength < 0 {
		return errors.New("PASSWORD_MIN_LENGTH must not be negative")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

func (c *DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", c.SQLitePath)
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}
