package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Supported history store backends.
const (
	BackendFile    = "file"
	BackendRedis   = "redis"
	BackendMongoDB = "mongodb"
	BackendMemory  = "memory"
)

// DefaultHistoryKey is the key the calculation history has always been stored under.
const DefaultHistoryKey = "onionPriceHistory"

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Backup  BackupConfig
	Display DisplayConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StoreConfig selects and configures the key-value medium behind the history.
type StoreConfig struct {
	Backend    string
	Dir        string
	HistoryKey string
	Redis      RedisConfig
	MongoDB    MongoDBConfig
}

// RedisConfig holds settings for a local redis instance.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// BackupConfig holds scheduler-related settings.
type BackupConfig struct {
	CronSchedule string
	Timezone     string
}

// DisplayConfig controls how results are rendered.
type DisplayConfig struct {
	Timezone string
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string
}

// BackupKey is the key the scheduled backup copies the history to.
func (c StoreConfig) BackupKey() string {
	return c.HistoryKey + ".backup"
}

// Location resolves the display time zone, falling back to UTC.
func (c DisplayConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	redisDB, err := strconv.Atoi(getenvWithDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}

	timezone := getenvWithDefault("TIMEZONE", "Asia/Jakarta")

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Store: StoreConfig{
			Backend:    getenvWithDefault("STORE_BACKEND", BackendFile),
			Dir:        getenvWithDefault("STORE_DIR", "./data"),
			HistoryKey: getenvWithDefault("HISTORY_KEY", DefaultHistoryKey),
			Redis: RedisConfig{
				Addr:     getenvWithDefault("REDIS_ADDR", "localhost:6379"),
				Password: os.Getenv("REDIS_PASSWORD"),
				DB:       redisDB,
			},
			MongoDB: MongoDBConfig{
				URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
				DBName: getenvWithDefault("MONGODB_DB_NAME", "onionprice"),
			},
		},
		Backup: BackupConfig{
			CronSchedule: getenvWithDefault("BACKUP_CRON_SCHEDULE", "0 2 * * *"),
			Timezone:     timezone,
		},
		Display: DisplayConfig{
			Timezone: timezone,
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	// An explicitly empty schedule disables backups.
	if value, ok := os.LookupEnv("BACKUP_CRON_SCHEDULE"); ok && value == "" {
		cfg.Backup.CronSchedule = ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Store.HistoryKey == "" {
		return errors.New("HISTORY_KEY must not be empty")
	}

	switch c.Store.Backend {
	case BackendFile:
		if c.Store.Dir == "" {
			return errors.New("STORE_DIR must be provided for the file backend")
		}
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New("REDIS_ADDR must be provided for the redis backend")
		}
	case BackendMongoDB:
		switch {
		case c.Store.MongoDB.URI == "":
			return errors.New("MONGODB_URI must be provided for the mongodb backend")
		case c.Store.MongoDB.DBName == "":
			return errors.New("MONGODB_DB_NAME must be provided for the mongodb backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND %q is not one of file, redis, mongodb, memory", c.Store.Backend)
	}

	if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is invalid: %w", c.Display.Timezone, err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
