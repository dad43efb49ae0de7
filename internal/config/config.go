package config

import (
	"errors"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevJWTSecret is the default HS256 secret. It is only accepted in development.
const DevJWTSecret = "dev-secret"

// ErrInsecureJWTSecret is returned when a non-development environment runs
// without a JWT secret of its own.
var ErrInsecureJWTSecret = errors.New("auth.jwt_secret must be set outside development")

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Inbox    InboxConfig    `mapstructure:"inbox"`
	TTL      TTLConfig      `mapstructure:"ttl"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers"`
	ConsumerGroupID string   `mapstructure:"consumer_group_id"`
	Topics          []string `mapstructure:"topics"`
}

type AuthConfig struct {
	// JWTSecret verifies HS256 bearer tokens issued by the auth service.
	JWTSecret string `mapstructure:"jwt_secret"`
}

type InboxConfig struct {
	// SyncLimit caps how many persisted notifications one sync pulls.
	SyncLimit int `mapstructure:"sync_limit"`
}

type TTLConfig struct {
	RetentionDays int `mapstructure:"retention_days"` // Default: 30
}

// Load reads configuration from .env, environment variables and config files.
// Environment variables override file values. Prefix: RUVO_NOTIF_
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()

	// Defaults
	v.SetDefault("server.port", "8090")
	v.SetDefault("server.env", "development")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "ruvo_notification")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.consumer_group_id", "ruvo-notification-group")
	v.SetDefault("kafka.topics", []string{"feed-events", "alert-events", "notification-commands"})
	v.SetDefault("auth.jwt_secret", DevJWTSecret)
	v.SetDefault("inbox.sync_limit", 200)
	v.SetDefault("ttl.retention_days", 30)

	// Environment variables (e.g. RUVO_NOTIF_DATABASE_HOST -> database.host)
	v.SetEnvPrefix("RUVO_NOTIF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also support simple env vars without prefix for Docker Compose convenience
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.name", "DB_NAME")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("server.port", "PORT")

	// Try loading config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // Not required

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Server.Env != "development" && (cfg.Auth.JWTSecret == "" || cfg.Auth.JWTSecret == DevJWTSecret) {
		return nil, ErrInsecureJWTSecret
	}

	return &cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" dbname=" + d.Name +
		" user=" + d.User +
		" password=" + d.Password +
		" sslmode=" + d.SSLMode
}
