package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DB       DBCfg       `yaml:"db"`
	Telegram TelegramCfg `yaml:"telegram"`
	HTTP     HTTPCfg     `yaml:"http"`
	Admin    AdminCfg    `yaml:"admin"`
	Log      LogCfg      `yaml:"log"`
}

type DBCfg struct {
	DSN            string `yaml:"dsn" env:"DATABASE_URL"`
	MaxConnections int    `yaml:"max_connections" env:"DB_MAX_CONNECTIONS"`
	Migrate        bool   `yaml:"migrate" env:"DB_MIGRATE"`
}

type TelegramCfg struct {
	// Token may be empty: the admin surface still serves orders, but the relays
	// answer with a configuration error.
	Token   string        `yaml:"token" env:"BOT_TOKEN"`
	APIURL  string        `yaml:"api_url" env:"TELEGRAM_API_URL"`
	Timeout time.Duration `yaml:"timeout" env:"TELEGRAM_TIMEOUT"`
}

type HTTPCfg struct {
	Addr         string        `yaml:"addr" env:"HTTP_ADDR"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
}

type AdminCfg struct {
	Username     string        `yaml:"username" env:"ADMIN_USER"`
	Password     string        `yaml:"password" env:"ADMIN_PASSWORD"`
	PasswordHash string        `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
	JWTSecret    string        `yaml:"jwt_secret" env:"SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"ADMIN_TOKEN_TTL"`
	SecureCookie bool          `yaml:"secure_cookie" env:"ADMIN_SECURE_COOKIE"`
}

type LogCfg struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// Load reads the YAML file at path (a missing file is not an error) and then
// applies environment overrides on top of it.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.DB.MaxConnections <= 0 {
		c.DB.MaxConnections = 10
	}
	if c.Telegram.APIURL == "" {
		c.Telegram.APIURL = "https://api.telegram.org"
	}
	if c.Telegram.Timeout <= 0 {
		c.Telegram.Timeout = 20 * time.Second
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 15 * time.Second
	}
	// Downloads are bounded by the telegram timeout, so writes get extra room.
	if c.HTTP.WriteTimeout <= 0 {
		c.HTTP.WriteTimeout = c.Telegram.Timeout + 30*time.Second
	}
	if c.Admin.Username == "" {
		c.Admin.Username = "admin"
	}
	if c.Admin.TokenTTL <= 0 {
		c.Admin.TokenTTL = 24 * time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.DB.DSN == "" {
		return errors.New("db.dsn (DATABASE_URL) is required")
	}
	if c.Admin.JWTSecret == "" {
		return errors.New("admin.jwt_secret (SECRET_KEY) is required")
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return errors.New("admin.password or admin.password_hash is required")
	}
	return nil
}
