package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/AlibekovAA/portfolio-api/internal/common/constants"
	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
)

type Config struct {
	HTTPPort       string        `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL    string        `env:"DATABASE_URL,required,notEmpty"`
	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`
	AccessTokenTTL time.Duration `env:"JWT_TTL" envDefault:"24h"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	BcryptCost     int           `env:"BCRYPT_COST" envDefault:"12"`
	MigrateOnStart bool          `env:"MIGRATE_ON_START" envDefault:"true"`

	LogDir   string `env:"LOG_DIR"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	Redis      RedisConfig
	TokenCache TokenCacheConfig
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type TokenCacheConfig struct {
	Enabled bool          `env:"TOKEN_CACHE_ENABLED" envDefault:"true"`
	TTL     time.Duration `env:"TOKEN_CACHE_TTL" envDefault:"5m"`
}

// Load reads an optional .env file (ENV_FILE, default ".env") and then the
// process environment, which wins over the file.
func Load() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MigrateConfig is the subset needed by the standalone migration command.
type MigrateConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	LogDir      string `env:"LOG_DIR"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

func LoadMigrate() (MigrateConfig, error) {
	if err := loadEnvFile(); err != nil {
		return MigrateConfig{}, err
	}

	var cfg MigrateConfig
	if err := env.Parse(&cfg); err != nil {
		return MigrateConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func loadEnvFile() error {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	return nil
}

func (c Config) Validate() error {
	if len(c.JWTSecret) < constants.JWTSecretMinLength {
		return commonerrors.ErrInvalidJWTSecret
	}
	if c.AccessTokenTTL <= 0 {
		return commonerrors.ErrInvalidTokenTTL
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}
