package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the unified service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Data     DataConfig     `yaml:"data"`
	Log      LogConfig      `yaml:"log"`
	Security SecurityConfig `yaml:"security"`
	Export   ExportConfig   `yaml:"export"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Env  string `yaml:"env"`  // dev, staging, production
	Port string `yaml:"port"`
}

// DataConfig holds data directory settings.
type DataConfig struct {
	MeetingsDir  string `yaml:"meetings_dir"`
	HistoryDB    string `yaml:"history_db"`
	DownloadsDir string `yaml:"downloads_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // optional rotating log file
}

// SecurityConfig holds authentication settings.
type SecurityConfig struct {
	JWTSecret          string   `yaml:"jwt_secret"`
	AuthDisabled       bool     `yaml:"auth_disabled"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// ExportConfig holds export pipeline settings.
type ExportConfig struct {
	MaxConcurrent   int    `yaml:"max_concurrent"`
	DefaultTemplate string `yaml:"default_template"`
}

// GlobalConfig is the process-wide configuration instance.
var GlobalConfig *Config

// LoadConfig builds the configuration from an optional YAML file with
// environment variable overrides on top.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Env:  "dev",
			Port: "8000",
		},
		Data: DataConfig{
			MeetingsDir:  "./data/meetings",
			HistoryDB:    "./data/export_history.db",
			DownloadsDir: "./data/downloads",
		},
		Log: LogConfig{
			Level: "info",
		},
		Security: SecurityConfig{
			CORSAllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Export: ExportConfig{
			MaxConcurrent:   4,
			DefaultTemplate: "professional",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(cfg)

	GlobalConfig = cfg
	return cfg, nil
}

// applyEnv overlays environment variables on top of file/default values.
func applyEnv(cfg *Config) {
	cfg.Server.Env = getEnv("ENV", cfg.Server.Env)
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Data.MeetingsDir = getEnv("MEETINGS_DIR", cfg.Data.MeetingsDir)
	cfg.Data.HistoryDB = getEnv("HISTORY_DB", cfg.Data.HistoryDB)
	cfg.Data.DownloadsDir = getEnv("DOWNLOADS_DIR", cfg.Data.DownloadsDir)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)
	cfg.Security.JWTSecret = getEnv("JWT_SECRET", cfg.Security.JWTSecret)
	if v := os.Getenv("AUTH_DISABLED"); v != "" {
		cfg.Security.AuthDisabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.Security.CORSAllowedOrigins = parseStringList(v)
	}
	if v := os.Getenv("EXPORT_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Export.MaxConcurrent = n
		}
	}
	cfg.Export.DefaultTemplate = getEnv("EXPORT_DEFAULT_TEMPLATE", cfg.Export.DefaultTemplate)
}

// ValidateConfig checks that the loaded configuration is usable.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if !cfg.Security.AuthDisabled {
		if cfg.Security.JWTSecret == "" {
			errs = append(errs, "JWT_SECRET is required unless AUTH_DISABLED is set")
		} else if len(cfg.Security.JWTSecret) < 32 {
			errs = append(errs, "JWT_SECRET must be at least 32 characters long")
		}
	}

	if cfg.Server.Env == "production" && cfg.Security.AuthDisabled {
		errs = append(errs, "AUTH_DISABLED is not allowed in production environment")
	}

	if cfg.Export.MaxConcurrent <= 0 {
		errs = append(errs, "EXPORT_MAX_CONCURRENT must be greater than 0")
	}

	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		errs = append(errs, "PORT must be numeric")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseStringList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
