package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// HTTPConfig holds the listener settings.
type HTTPConfig struct {
	Address string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"10s"`
}

// JWTConfig holds the two independent signing keys and their lifetimes.
// A leaked session token must not be able to mint new sessions, so the
// refresh key is separate from the access key.
type JWTConfig struct {
	AccessSecret  string        `yaml:"access_secret" env:"JWT_SECRET"`
	RefreshSecret string        `yaml:"refresh_secret" env:"JWT_REFRESH_SECRET"`
	AccessTTL     time.Duration `yaml:"access_ttl" env:"JWT_EXPIRATION" env-default:"30m"`
	RefreshTTL    time.Duration `yaml:"refresh_ttl" env:"JWT_REFRESH_EXPIRATION" env-default:"168h"`
}

// Config keeps runtime settings for the API server.
type Config struct {
	LogLevel    string     `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	DatabaseURL string     `yaml:"database_url" env:"DATABASE_URL" env-default:"todoapp.db"`
	HTTP        HTTPConfig `yaml:"http"`
	JWT         JWTConfig  `yaml:"jwt"`
}

// Load reads configuration from the file named by CONFIG_PATH if set,
// falling back to environment variables alone.
func Load() (Config, error) {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("read env: %w", err)
		}
		return cfg, cfg.validate()
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				return cfg, fmt.Errorf("read env: %w", err)
			}
			return cfg, cfg.validate()
		}
		return cfg, fmt.Errorf("read config %q: %w", configPath, err)
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.RefreshSecret == "" {
		return fmt.Errorf("JWT_REFRESH_SECRET is required")
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}
	return nil
}
