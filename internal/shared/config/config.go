package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration.
type Config struct {
	Port             string        `koanf:"port"`
	Env              string        `koanf:"env"`
	DatabaseURL      string        `koanf:"database_url"`
	CORSAllowOrigin  []string      `koanf:"cors_allow_origins"`
	LogLevel         string        `koanf:"log_level"`
	LogFormat        string        `koanf:"log_format"`
	JWTSecret        string        `koanf:"jwt_secret"`
	ScraperURL       string        `koanf:"scraper_url"`
	ScraperTimeout   time.Duration `koanf:"scraper_timeout"`
	SizingTablesPath string        `koanf:"sizing_tables_path"`
	RateLimitRPS     float64       `koanf:"rate_limit_rps"`
	RateLimitBurst   int           `koanf:"rate_limit_burst"`
}

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/fitable/config.yaml",
}

const configPathEnvVar = "CONFIG_PATH"

// envKeys lists the environment variables Load reads. Anything else in the
// process environment is ignored.
var envKeys = map[string]string{
	"PORT":               "port",
	"ENV":                "env",
	"DATABASE_URL":       "database_url",
	"CORS_ALLOW_ORIGINS": "cors_allow_origins",
	"LOG_LEVEL":          "log_level",
	"LOG_FORMAT":         "log_format",
	"JWT_SECRET":         "jwt_secret",
	"SCRAPER_URL":        "scraper_url",
	"SCRAPER_TIMEOUT":    "scraper_timeout",
	"SIZING_TABLES_PATH": "sizing_tables_path",
	"RATE_LIMIT_RPS":     "rate_limit_rps",
	"RATE_LIMIT_BURST":   "rate_limit_burst",
}

func defaultConfig() Config {
	return Config{
		Port:            "8080",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LogLevel:        "info",
		LogFormat:       "json",
		ScraperTimeout:  10 * time.Second,
		RateLimitRPS:    2,
		RateLimitBurst:  10,
	}
}

// Load layers defaults, an optional YAML file and the environment.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load config defaults: %w", err)
	}
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}
	if raw, ok := k.Get("cors_allow_origins").(string); ok {
		if err := k.Set("cors_allow_origins", splitAndTrim(raw)); err != nil {
			return Config{}, fmt.Errorf("split cors origins: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.ScraperURL = strings.TrimRight(strings.TrimSpace(cfg.ScraperURL), "/")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot run in the configured environment.
func (c Config) Validate() error {
	if c.Env != "production" {
		return nil
	}
	var errs []error
	if strings.TrimSpace(c.DatabaseURL) == "" {
		errs = append(errs, errors.New("DATABASE_URL is required in production"))
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}
	return errors.Join(errs...)
}

// envValue maps known variables onto config keys. Empty values are skipped
// so they fall back to the lower layers.
func envValue(key, value string) (string, interface{}) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	return envKeys[key], value
}

func findConfigFile() string {
	if p := os.Getenv(configPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
