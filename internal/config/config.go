package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultFile = "league.yaml"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Cache    CacheConfig    `yaml:"cache"`
	Slack    SlackConfig    `yaml:"slack"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	BaseURL         string        `yaml:"base_url"`
	SessionSecret   string        `yaml:"session_secret"`
	SessionLifetime time.Duration `yaml:"session_lifetime"`
	SignOutTimeout  time.Duration `yaml:"sign_out_timeout"`
	// DevLogin enables a password-less login form for local development.
	DevLogin      bool    `yaml:"dev_login"`
	AuthRateLimit float64 `yaml:"auth_rate_limit"`
	AuthRateBurst int     `yaml:"auth_rate_burst"`
}

type DatabaseConfig struct {
	DSN       string `yaml:"dsn"`
	AuthToken string `yaml:"auth_token"`
}

type ProviderConfig struct {
	Key         string `yaml:"key"`
	Secret      string `yaml:"secret"`
	CallbackURL string `yaml:"callback_url"`
}

func (p ProviderConfig) Enabled() bool {
	return p.Key != "" && p.Secret != ""
}

type AuthConfig struct {
	Google  ProviderConfig `yaml:"google"`
	Kakao   ProviderConfig `yaml:"kakao"`
	Discord ProviderConfig `yaml:"discord"`
}

// CacheConfig selects the standings cache. Without a Redis URL an in-process
// cache is used.
type CacheConfig struct {
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
}

type SlackConfig struct {
	Token     string `yaml:"token"`
	ChannelID string `yaml:"channel_id"`
}

func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			BaseURL:         "http://localhost:8080",
			SessionLifetime: 24 * time.Hour,
			SignOutTimeout:  5 * time.Second,
			AuthRateLimit:   1,
			AuthRateBurst:   10,
		},
		Cache: CacheConfig{TTL: 10 * time.Minute},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads filename on top of the defaults and applies environment overrides.
// A missing file is not an error.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("ADDR", &cfg.Server.Addr)
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	setString("BASE_URL", &cfg.Server.BaseURL)
	setString("SESSION_SECRET", &cfg.Server.SessionSecret)
	if v := os.Getenv("DEV_LOGIN"); v != "" {
		cfg.Server.DevLogin = v == "true"
	}
	if v := os.Getenv("SIGN_OUT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SIGN_OUT_TIMEOUT value: %w", err)
		}
		cfg.Server.SignOutTimeout = d
	}
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid AUTH_RATE_LIMIT value: %w", err)
		}
		cfg.Server.AuthRateLimit = f
	}

	setString("DATABASE_URL", &cfg.Database.DSN)
	setString("DATABASE_AUTH_TOKEN", &cfg.Database.AuthToken)

	setString("GOOGLE_KEY", &cfg.Auth.Google.Key)
	setString("GOOGLE_SECRET", &cfg.Auth.Google.Secret)
	setString("GOOGLE_CALLBACK_URL", &cfg.Auth.Google.CallbackURL)
	setString("KAKAO_KEY", &cfg.Auth.Kakao.Key)
	setString("KAKAO_SECRET", &cfg.Auth.Kakao.Secret)
	setString("KAKAO_CALLBACK_URL", &cfg.Auth.Kakao.CallbackURL)
	setString("DISCORD_KEY", &cfg.Auth.Discord.Key)
	setString("DISCORD_SECRET", &cfg.Auth.Discord.Secret)
	setString("DISCORD_CALLBACK_URL", &cfg.Auth.Discord.CallbackURL)

	setString("REDIS_URL", &cfg.Cache.RedisURL)
	setString("SLACK_TOKEN", &cfg.Slack.Token)
	setString("SLACK_CHANNEL_ID", &cfg.Slack.ChannelID)

	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("LOG_FORMAT", &cfg.Log.Format)
	return nil
}

func (c *Config) Validate() error {
	if c.Server.SignOutTimeout <= 0 {
		return fmt.Errorf("server.sign_out_timeout must be positive")
	}
	if c.Server.SessionLifetime <= 0 {
		return fmt.Errorf("server.session_lifetime must be positive")
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
