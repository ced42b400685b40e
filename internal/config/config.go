package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"PORT" envDefault:"3001"`

	MySQLHost     string `env:"MYSQLHOST" envDefault:"localhost"`
	MySQLPort     int    `env:"MYSQLPORT" envDefault:"3306"`
	MySQLDatabase string `env:"MYSQLDATABASE" envDefault:"app"`
	MySQLUser     string `env:"MYSQLUSER" envDefault:"root"`
	MySQLPassword string `env:"MYSQLPASSWORD"`
	MySQLTLS      bool   `env:"MYSQL_TLS" envDefault:"true"`

	JWTSecret string `env:"JWT_SECRET"`

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"https://front-end-cadastro-login-twj.vercel.app"`

	RedisAddr string `env:"REDIS_ADDR"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	SwaggerHost string `env:"SWAGGER_HOST"`
}

// ErrMissingJWTSecret is returned when no signing secret is configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Load reads an optional .env file, then builds Config from the environment.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings the server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	if c.MySQLPort <= 0 || c.MySQLPort > 65535 {
		return fmt.Errorf("invalid MYSQLPORT %d", c.MySQLPort)
	}
	return nil
}

// MySQLAddr returns host:port of the database server.
func (c *Config) MySQLAddr() string {
	return c.MySQLHost + ":" + strconv.Itoa(c.MySQLPort)
}

// loadDotEnv exports the variables in path without overriding ones already
// set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
