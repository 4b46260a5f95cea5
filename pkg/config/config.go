package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Upstream      UpstreamConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Session       SessionConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"QUATET_APP_ENV" required:"true"`
	Port         string `envconfig:"QUATET_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"QUATET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUATET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points at the platform REST API the storefront proxies.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"QUATET_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"QUATET_UPSTREAM_TIMEOUT" default:"30s"`
}

func (u UpstreamConfig) validate() error {
	parsed, err := url.Parse(u.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing upstream base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("upstream base url must be http(s), got %q", u.BaseURL)
	}
	if u.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"QUATET_REDIS_URL" required:"true"`
	Address      string        `envconfig:"QUATET_REDIS_ADDR"`
	Password     string        `envconfig:"QUATET_REDIS_PASSWORD"`
	DB           int           `envconfig:"QUATET_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QUATET_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUATET_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUATET_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUATET_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QUATET_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies bearer tokens minted by the platform; the storefront
// never signs tokens itself.
type JWTConfig struct {
	Secret string `envconfig:"QUATET_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"QUATET_JWT_ISSUER" required:"true"`
}

type SessionConfig struct {
	TTL time.Duration `envconfig:"QUATET_SESSION_TTL" default:"24h"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"QUATET_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit    int           `envconfig:"QUATET_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	LoginEmailLimit int           `envconfig:"QUATET_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"QUATET_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
