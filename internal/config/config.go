package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/soaringjerry/klausurarchiv/internal/utils"
)

var ErrConfigFileNotFound = errors.New("config file not found")

// DefaultPaths are tried in order when no explicit file is given.
var DefaultPaths = []string{
	"klausurarchiv.toml",
	"/etc/klausurarchiv/config.toml",
}

type Config struct {
	Server Server `koanf:"server"`
	Auth   Auth   `koanf:"auth"`
	Log    Log    `koanf:"log"`
	Prefs  Prefs  `koanf:"prefs"`
	AI     AI     `koanf:"ai"`
	OCR    OCR    `koanf:"ocr"`
}

type Server struct {
	Addr      string `koanf:"addr"`
	StaticDir string `koanf:"static_dir"`
}

type Auth struct {
	JWTSecret     string        `koanf:"jwt_secret"`
	TokenTTL      time.Duration `koanf:"token_ttl"`
	AdminUsername string        `koanf:"admin_username"`
	AdminPassword string        `koanf:"admin_password"`
}

type Log struct {
	Level       string `koanf:"level"`       // debug, info, warn, error
	Development bool   `koanf:"development"` // console encoder with stack traces
}

type Prefs struct {
	Backend       string `koanf:"backend"` // sqlite, badger, memory
	Path          string `koanf:"path"`
	MigrationsDir string `koanf:"migrations_dir"`
}

type AI struct {
	Provider      string        `koanf:"provider"` // gemini, openai, or empty to disable
	APIKey        string        `koanf:"api_key"`
	Model         string        `koanf:"model"`
	BaseURL       string        `koanf:"base_url"`
	RatePerMinute int           `koanf:"rate_per_minute"`
	Timeout       time.Duration `koanf:"timeout"`
}

type OCR struct {
	Delay time.Duration `koanf:"delay"`
}

var defaults = map[string]any{
	"server.addr":          ":8080",
	"server.static_dir":    "",
	"auth.jwt_secret":      "klausurarchiv-dev-secret",
	"auth.token_ttl":       "720h",
	"auth.admin_username":  "admin",
	"auth.admin_password":  "password",
	"log.level":            "info",
	"log.development":      false,
	"prefs.backend":        "sqlite",
	"prefs.path":           "data/prefs.db",
	"prefs.migrations_dir": "",
	"ai.provider":          "",
	"ai.api_key":           "",
	"ai.model":             "",
	"ai.base_url":          "",
	"ai.rate_per_minute":   30,
	"ai.timeout":           "20s",
	"ocr.delay":            "1500ms",
}

// Load reads defaults, then the TOML file, then environment overrides. An
// explicit path must exist; otherwise DefaultPaths are optional. It returns
// the file actually used, or "" when running on defaults.
func Load(path string) (*Config, string, error) {
	k := koanf.New(".")
	for key, v := range defaults {
		if err := k.Set(key, v); err != nil {
			return nil, "", fmt.Errorf("set default %s: %w", key, err)
		}
	}

	used := ""
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, "", fmt.Errorf("load config %s: %w", path, err)
		}
		used = path
	} else {
		for _, p := range DefaultPaths {
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
				return nil, "", fmt.Errorf("load config %s: %w", p, err)
			}
			used = p
			break
		}
	}

	if err := applyEnv(k); err != nil {
		return nil, "", err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, used, nil
}

var envKeys = map[string][]string{
	"server.addr":     {"KLAUSUR_ADDR"},
	"auth.jwt_secret": {"KLAUSUR_JWT_SECRET"},
	"prefs.backend":   {"KLAUSUR_PREFS_BACKEND"},
	"prefs.path":      {"KLAUSUR_PREFS_PATH"},
	"ai.provider":     {"KLAUSUR_AI_PROVIDER"},
	"ai.api_key":      {"KLAUSUR_AI_API_KEY", "API_KEY"},
	"ai.model":        {"KLAUSUR_AI_MODEL"},
	"log.level":       {"KLAUSUR_LOG_LEVEL"},
}

func applyEnv(k *koanf.Koanf) error {
	for key, names := range envKeys {
		if v := utils.FirstEnv("", names...); v != "" {
			if err := k.Set(key, v); err != nil {
				return fmt.Errorf("apply env for %s: %w", key, err)
			}
		}
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Prefs.Backend {
	case "sqlite", "badger", "memory":
	default:
		return fmt.Errorf("prefs.backend must be sqlite, badger or memory, got %q", c.Prefs.Backend)
	}
	switch c.AI.Provider {
	case "", "gemini", "openai":
	default:
		return fmt.Errorf("ai.provider must be gemini, openai or empty, got %q", c.AI.Provider)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.AI.RatePerMinute < 0 {
		return errors.New("ai.rate_per_minute must not be negative")
	}
	if c.Auth.AdminUsername == "" {
		return errors.New("auth.admin_username is required")
	}
	return nil
}
