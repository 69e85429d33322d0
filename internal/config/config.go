package config

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/yukikurage/project-tracker-api/internal/constants"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	GinMode     string `env:"GIN_MODE" env-default:"debug"`
	ServerAddr  string `env:"SERVER_ADDR" env-default:":8080"`

	// database
	DBDriver          string        `env:"DB_DRIVER" env-default:"mysql"`
	DBHost            string        `env:"DB_HOST" env-default:"localhost"`
	DBPort            string        `env:"DB_PORT" env-default:"3306"`
	DBUser            string        `env:"DB_USER" env-default:"projectuser"`
	DBPassword        string        `env:"DB_PASSWORD" env-default:"projectpassword"`
	DBName            string        `env:"DB_NAME" env-default:"project_tracker"`
	DBSSLMode         string        `env:"DB_SSL_MODE" env-default:"disable"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`

	// sessions
	SessionStore  string `env:"SESSION_STORE" env-default:"redis"`
	SessionSecret string `env:"SESSION_SECRET" env-default:"default-secret-key-change-me"`
	RedisHost     string `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     string `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// logging
	LogLevel     string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat    string `env:"LOG_FORMAT" env-default:"text"`
	LogAddSource bool   `env:"LOG_ADD_SOURCE" env-default:"false"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	// first admin, created when the users table is empty
	AdminEmail    string `env:"ADMIN_EMAIL" env-default:"admin@example.com"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME" env-default:"Administrator"`
}

// Load reads the optional .env file and then the process environment.
func Load() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadConfig(".env", &cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read dotenv file: %w", err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.GinMode, validation.Required, validation.In("debug", "release", "test")),
		validation.Field(&c.ServerAddr, validation.Required),
		validation.Field(&c.DBDriver, validation.Required, validation.In("mysql", "postgres", "sqlite")),
		validation.Field(&c.DBName, validation.Required),
		validation.Field(&c.SessionStore, validation.Required, validation.In("redis", "cookie")),
		validation.Field(&c.SessionSecret, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.AdminPassword, validation.Length(constants.MinPasswordLength, 72)),
	)
}

// IsProduction reports whether cookies should be marked secure.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// RedisAddr returns host:port of the session store.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
