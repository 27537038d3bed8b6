package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port string `yaml:"port"`
	Env  string `yaml:"env"`
}

type UpstreamConfig struct {
	BaseURL  string `yaml:"base_url"`
	AuthPath string `yaml:"auth_path"`
}

type StoreConfig struct {
	DataDir string `yaml:"data_dir"`
}

type OTPConfig struct {
	Length int    `yaml:"length"`
	TTL    string `yaml:"ttl"`
}

type SessionConfig struct {
	TTL string `yaml:"ttl"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	JSON       bool   `yaml:"json"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type configFile struct {
	App       AppConfig       `yaml:"app"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Store     StoreConfig     `yaml:"store"`
	OTP       OTPConfig       `yaml:"otp"`
	Session   SessionConfig   `yaml:"session"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

// Config is the resolved runtime configuration.
type Config struct {
	Port string
	Env  string

	// UpstreamBaseURL selects the mode: non-empty means proxy mode, empty
	// means mock mode with the local credential store as system of record.
	UpstreamBaseURL  string
	UpstreamAuthPath string

	DataDir string

	OTPLength  int
	OTPTTL     time.Duration
	SessionTTL time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	Log LogConfig
}

// Production reports whether the service runs in the production
// configuration, which disables the OTP log side-channel.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml when present and applies environment variable
// overrides on top. A missing file just means defaults.
func Load() (*Config, error) {
	return loadFrom("config/config.yml")
}

func loadFrom(path string) (*Config, error) {
	file := configFile{
		App:       AppConfig{Port: "8080", Env: "development"},
		Upstream:  UpstreamConfig{AuthPath: "authorization"},
		Store:     StoreConfig{DataDir: "data"},
		OTP:       OTPConfig{Length: 4, TTL: "10m"},
		Session:   SessionConfig{TTL: "168h"},
		RateLimit: RateLimitConfig{RPS: 5, Burst: 10},
		Log:       LogConfig{Level: "info"},
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults + env only
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &Config{
		Port:             env("PORT", file.App.Port),
		Env:              env("APP_ENV", file.App.Env),
		UpstreamBaseURL:  env("API_BASE_URL", file.Upstream.BaseURL),
		UpstreamAuthPath: env("API_AUTH_PATH", file.Upstream.AuthPath),
		DataDir:          env("DATA_DIR", file.Store.DataDir),
		RateLimitRPS:     file.RateLimit.RPS,
		RateLimitBurst:   file.RateLimit.Burst,
		Log:              file.Log,
	}

	cfg.OTPLength = file.OTP.Length
	if v := os.Getenv("OTP_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid OTP_LENGTH: %w", err)
		}
		cfg.OTPLength = n
	}
	if cfg.OTPLength < 4 || cfg.OTPLength > 10 {
		return nil, fmt.Errorf("otp length must be between 4 and 10, got %d", cfg.OTPLength)
	}

	cfg.OTPTTL, err = time.ParseDuration(env("OTP_TTL", file.OTP.TTL))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}
	cfg.SessionTTL, err = time.ParseDuration(env("SESSION_TTL", file.Session.TTL))
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, nil
}
