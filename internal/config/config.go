// ABOUTME: Configuration loader for the newsxstudy client
// ABOUTME: Merges .env, environment variables, and an optional YAML file via viper

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Profiles select a default backend when no explicit URL is configured
const (
	ProfileLocal      = "local"
	ProfileProduction = "production"

	LocalAPIURL      = "http://localhost:5000"
	ProductionAPIURL = "https://newsxstudy-backend.onrender.com"
)

// EnvPrefix is prepended to every environment variable the client reads
const EnvPrefix = "NEWSXSTUDY"

// Config holds the client settings
type Config struct {
	APIURL    string        `mapstructure:"api_url"`
	Profile   string        `mapstructure:"profile"`
	Timeout   time.Duration `mapstructure:"timeout"`
	ConfigDir string        `mapstructure:"config_dir"`
	LogLevel  string        `mapstructure:"log_level"`
	LogFormat string        `mapstructure:"log_format"`
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "newsxstudy")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "newsxstudy")
}

// Load reads configuration from .env, environment and config file.
// envFile and cfgFile are optional; when cfgFile is empty config.yaml is
// looked up in the config directory and may be absent.
func Load(cfgFile, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	} else {
		// Optional .env in the working directory
		_ = godotenv.Load()
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(v.GetString("config_dir"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", "")
	v.SetDefault("profile", ProfileLocal)
	v.SetDefault("timeout", "30s")
	v.SetDefault("config_dir", DefaultConfigDir())
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// validate checks the configuration for errors
func validate(cfg *Config) error {
	if cfg.Profile != ProfileLocal && cfg.Profile != ProfileProduction {
		return fmt.Errorf("invalid profile: %s (must be %s or %s)", cfg.Profile, ProfileLocal, ProfileProduction)
	}

	if cfg.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s (must be positive)", cfg.Timeout)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[cfg.LogFormat] {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", cfg.LogFormat)
	}

	return nil
}

// ResolvedAPIURL returns the explicit API URL or the profile's default
func (c *Config) ResolvedAPIURL() string {
	if c.APIURL != "" {
		return c.APIURL
	}
	if c.Profile == ProfileProduction {
		return ProductionAPIURL
	}
	return LocalAPIURL
}
