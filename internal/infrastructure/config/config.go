package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	JWTTTL    time.Duration `env:"JWT_TTL,    default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	LogPretty bool          `env:"LOG_PRETTY, default=false"`

	Mongo MongoConfig
	Redis RedisConfig
	Cache CacheConfig
	Queue QueueConfig
	Authz AuthzConfig
	Page  PageConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=jobboard"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

type CacheConfig struct {
	ListTTL      time.Duration `env:"CACHE_LIST_TTL,      default=2m"`
	DetailTTL    time.Duration `env:"CACHE_DETAIL_TTL,    default=10m"`
	AggregateTTL time.Duration `env:"CACHE_AGGREGATE_TTL, default=10m"`
	MemorySize   int           `env:"CACHE_MEMORY_SIZE,   default=1024"`
}

type QueueConfig struct {
	Workers     int           `env:"QUEUE_WORKERS,      default=4"`
	MaxRetries  int           `env:"QUEUE_MAX_RETRIES,  default=3"`
	BackoffBase time.Duration `env:"QUEUE_BACKOFF_BASE, default=2s"`
}

type AuthzConfig struct {
	EmployerStatusUpdates bool `env:"AUTHZ_EMPLOYER_STATUS_UPDATES, default=true"`
}

type PageConfig struct {
	DefaultSize int `env:"PAGE_SIZE_DEFAULT, default=10"`
	MaxSize     int `env:"PAGE_SIZE_MAX,     default=100"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// LoadFrom reads configuration from the given lookuper instead of the
// process environment.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
