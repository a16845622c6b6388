// ABOUTME: Fuerza configuration: JSON file at the XDG path, .env, and FUERZA_* env vars.
// ABOUTME: Also provides the storage factory and the path helpers the CLI relies on.

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/fuerza/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FUERZA_DATABASE_URL.
const EnvPrefix = "FUERZA"

// Config stores fuerza configuration.
type Config struct {
	// DatabaseURL is the connection string: postgres://..., sqlite://<path>,
	// or a bare SQLite path. Defaults to a SQLite file in the XDG data dir.
	DatabaseURL string `json:"database_url,omitempty" mapstructure:"database_url"`

	// PhotoDir holds preset avatars and uploaded photos. Supports ~ expansion.
	PhotoDir string `json:"photo_dir,omitempty" mapstructure:"photo_dir"`

	ListenAddr string `json:"listen_addr,omitempty" mapstructure:"listen_addr"`

	// PasswordScheme is "sha256" (default) or "bcrypt".
	PasswordScheme string `json:"password_scheme,omitempty" mapstructure:"password_scheme"`

	LogLevel string `json:"log_level,omitempty" mapstructure:"log_level"`

	// SessionTTL is a Go duration string such as "24h".
	SessionTTL string `json:"session_ttl,omitempty" mapstructure:"session_ttl"`

	// User is the email the CLI acts as after `fuerza login`.
	User string `json:"user,omitempty" mapstructure:"user"`
}

var defaults = map[string]string{
	"database_url":    "",
	"photo_dir":       "perfiles",
	"listen_addr":     ":8080",
	"password_scheme": "sha256",
	"log_level":       "info",
	"session_ttl":     "24h",
	"user":            "",
}

// GetDatabaseURL returns the configured connection string or the default
// SQLite location.
func (c *Config) GetDatabaseURL() string {
	if c.DatabaseURL == "" {
		return storage.DefaultDSN()
	}
	return c.DatabaseURL
}

// GetPhotoDir returns the photo directory with ~ expanded.
func (c *Config) GetPhotoDir() string {
	if c.PhotoDir == "" {
		return defaults["photo_dir"]
	}
	return ExpandPath(c.PhotoDir)
}

// GetSessionTTL parses SessionTTL, falling back to 24h.
func (c *Config) GetSessionTTL() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage connects to the configured database.
func (c *Config) OpenStorage(ctx context.Context) (*storage.DB, error) {
	return storage.Open(ctx, c.GetDatabaseURL())
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fuerza", "config.json")
}

// Load reads config from the default path.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads config from path, then applies a .env file in the working
// directory and FUERZA_* environment variables on top. A missing file is
// not an error.
func LoadFrom(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to the default path.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes config as JSON to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// SaveUser records the CLI user in the config file at path, leaving the
// other keys as they are on disk. An empty email signs the CLI out.
func SaveUser(path, email string) error {
	var onDisk Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		if err := json.Unmarshal(data, &onDisk); err != nil {
			return fmt.Errorf("decode config: %w", err)
		}
	}
	onDisk.User = email
	return onDisk.SaveTo(path)
}
