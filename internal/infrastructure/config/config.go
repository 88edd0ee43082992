package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BackendURL selects the remote SMD REST API host. A single variable;
	// defaults to the local backend when unset.
	BackendURL string `env:"SMD_API_URL, default=http://localhost:8080"`

	// BackendTimeout bounds every upstream request end-to-end.
	BackendTimeout time.Duration `env:"SMD_API_TIMEOUT, default=15s"`

	// SessionTTL is how long a persisted bearer token survives in Redis
	// without use. The backend's own token expiry still applies on top.
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`

	// DemoMode enables the credential-free login that fabricates a fixed
	// SYSTEM_ADMIN identity without calling the backend. Only for trusted
	// internal deployments; never enable it on a reachable host.
	DemoMode bool `env:"SMD_DEMO_MODE, default=false"`

	Redis RedisConfig
	Mongo MongoConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=smd_console"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
