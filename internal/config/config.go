// Package config handles loading and managing configuration for the
// smart-todo CLI. It supports loading from YAML files, environment
// variables, and hardcoded defaults.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Storage backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config holds all configuration settings for the smart-todo CLI.
type Config struct {
	// StorageBackend selects where tasks are persisted (file, redis)
	StorageBackend string `yaml:"storage_backend"`

	// DataDir is the directory for file-backed storage
	DataDir string `yaml:"data_dir"`

	// RedisURL is the Redis connection URL for redis-backed storage
	RedisURL string `yaml:"redis_url"`

	// Notifications controls OS-native notification feedback
	Notifications bool `yaml:"notifications"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds the logging section of the config file.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// FilePath is the log file path (empty for console only)
	FilePath string `yaml:"file_path"`

	// JSON enables JSON output format
	JSON bool `yaml:"json"`

	// Console enables console output in addition to file output
	Console bool `yaml:"console"`

	// MaxSize is the maximum log file size in megabytes before rotation
	MaxSize int `yaml:"max_size"`

	// MaxBackups is the maximum number of rotated files to retain
	MaxBackups int `yaml:"max_backups"`

	// MaxAge is the maximum number of days to retain rotated files
	MaxAge int `yaml:"max_age"`

	// Compress enables gzip compression of rotated files
	Compress bool `yaml:"compress"`
}

// Default configuration values
const (
	DefaultStorageBackend = BackendFile
	DefaultRedisURL       = "redis://localhost:6379"
	DefaultNotifications  = true
)

var (
	globalConfig *Config
	configOnce   sync.Once
	configErr    error
)

// Get returns the global configuration, loading it if necessary.
// This function is safe for concurrent use.
func Get() (*Config, error) {
	configOnce.Do(func() {
		globalConfig, configErr = Load()
	})
	return globalConfig, configErr
}

// Load reads configuration from files and environment variables.
// Priority (highest to lowest):
// 1. Environment variables
// 2. ~/.config/smart-todo/config.yaml
// 3. ~/.smart-todo.yaml
// 4. Hardcoded defaults
func Load() (*Config, error) {
	cfg := &Config{
		StorageBackend: DefaultStorageBackend,
		DataDir:        defaultDataDir(),
		RedisURL:       DefaultRedisURL,
		Notifications:  DefaultNotifications,
		Logging: LoggingConfig{
			JSON:     true,
			Compress: true,
		},
	}

	// Try to load from config files (lowest priority file first)
	homeDir, err := os.UserHomeDir()
	if err == nil {
		legacyPath := filepath.Join(homeDir, ".smart-todo.yaml")
		if data, err := os.ReadFile(legacyPath); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}

		xdgPath := filepath.Join(homeDir, ".config", "smart-todo", "config.yaml")
		if data, err := os.ReadFile(xdgPath); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}

		xdgPathYml := filepath.Join(homeDir, ".config", "smart-todo", "config.yml")
		if data, err := os.ReadFile(xdgPathYml); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	// Override with environment variables (highest priority)
	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvOverrides() {
	if val := os.Getenv("SMARTTODO_STORAGE_BACKEND"); val != "" {
		c.StorageBackend = val
	}

	if val := os.Getenv("SMARTTODO_DATA_DIR"); val != "" {
		c.DataDir = val
	}

	// Redis URL (support both REDIS_URL and SMARTTODO_REDIS_URL)
	if val := os.Getenv("SMARTTODO_REDIS_URL"); val != "" {
		c.RedisURL = val
	} else if val := os.Getenv("REDIS_URL"); val != "" {
		c.RedisURL = val
	}

	if val := os.Getenv("SMARTTODO_NOTIFICATIONS"); val != "" {
		c.Notifications = val == "true" || val == "1" || val == "yes"
	}

	if val := os.Getenv("SMARTTODO_LOG_LEVEL"); val != "" {
		c.Logging.Level = val
	}
	if val := os.Getenv("SMARTTODO_LOG_FILE"); val != "" {
		c.Logging.FilePath = val
	}
}

// Reload forces a reload of the configuration.
// This resets the global singleton and returns the newly loaded config.
func Reload() (*Config, error) {
	configOnce = sync.Once{}
	return Get()
}

// ConfigPaths returns the paths where config files are searched.
func ConfigPaths() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(homeDir, ".config", "smart-todo", "config.yaml"),
		filepath.Join(homeDir, ".config", "smart-todo", "config.yml"),
		filepath.Join(homeDir, ".smart-todo.yaml"),
	}
}

// defaultDataDir returns the default directory for file-backed storage.
func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".smart-todo"
	}
	return filepath.Join(homeDir, ".local", "share", "smart-todo")
}

// WriteExample writes an example configuration file to the specified path.
func WriteExample(path string) error {
	example := `# smart-todo configuration file
# Place this file at ~/.config/smart-todo/config.yaml or ~/.smart-todo.yaml

# Storage backend: file or redis
storage_backend: file

# Data directory for file-backed storage
# data_dir: ~/.local/share/smart-todo

# Redis connection URL (used when storage_backend is redis)
redis_url: redis://localhost:6379

# OS-native notification feedback on add/complete/clear
notifications: true

# Logging
logging:
  level: info
  # file_path: ~/.local/share/smart-todo/smart-todo.log
  json: true
  console: false
  max_size: 10
  max_backups: 5
  max_age: 7
  compress: true
`
	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(example), 0644)
}
