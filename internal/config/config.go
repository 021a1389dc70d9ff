package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"taskboard/internal/kanban/dnd"
	"taskboard/internal/kanban/filter"
	"taskboard/internal/storage"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable the config reads.
const EnvPrefix = "TASKBOARD_"

// Config holds the unified application configuration
type Config struct {
	DataDir string        `koanf:"data_dir" yaml:"data_dir"`
	Storage StorageConfig `koanf:"storage" yaml:"storage"`
	Log     LogConfig     `koanf:"log" yaml:"log"`
	Board   BoardConfig   `koanf:"board" yaml:"board"`
}

type StorageConfig struct {
	Driver      string `koanf:"driver" yaml:"driver"`
	Key         string `koanf:"key" yaml:"key"`
	Path        string `koanf:"path" yaml:"path,omitempty"`
	Bucket      string `koanf:"bucket" yaml:"bucket,omitempty"`
	RedisURL    string `koanf:"redis_url" yaml:"redis_url,omitempty"`
	RedisPrefix string `koanf:"redis_prefix" yaml:"redis_prefix,omitempty"`
}

type LogConfig struct {
	Level    string `koanf:"level" yaml:"level"`
	Encoding string `koanf:"encoding" yaml:"encoding"`
	Dir      string `koanf:"dir" yaml:"dir,omitempty"`
}

// BoardConfig holds drop geometry and the filter the board opens with.
type BoardConfig struct {
	RowHeight       float64 `koanf:"row_height" yaml:"row_height"`
	ColumnSlotWidth float64 `koanf:"column_slot_width" yaml:"column_slot_width"`
	DefaultFilter   string  `koanf:"default_filter" yaml:"default_filter"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	ConfigPath string
	DataDir    string
	Driver     string
	LogLevel   string
}

var drivers = map[string]bool{"file": true, "bolt": true, "redis": true, "sqlite": true, "memory": true}

// sections lists the nested keys; env names split after them
var sections = []string{"storage", "log", "board"}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: "file",
			Key:    "todo-board",
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
		Board: BoardConfig{
			RowHeight:       dnd.DefaultRowHeight,
			ColumnSlotWidth: dnd.DefaultColumnSlotWidth,
			DefaultFilter:   "all",
		},
	}
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := Default()
	k := koanf.New(".")

	configPath := flags.ConfigPath
	if configPath == "" {
		p, err := GetConfigPath()
		if err == nil {
			configPath = p
		}
	}
	if configPath != "" {
		content, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}
	if flags.Driver != "" {
		cfg.Storage.Driver = flags.Driver
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}

	if cfg.DataDir == "" {
		defaultDir, err := GetDefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = defaultDir
	}
	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Log.Dir = expandPath(cfg.Log.Dir)
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = cfg.DataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// envKey maps TASKBOARD_STORAGE_REDIS_URL to storage.redis_url and
// TASKBOARD_DATA_DIR to data_dir.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

// Validate rejects settings the board cannot run with.
func (c *Config) Validate() error {
	if !drivers[c.Storage.Driver] {
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "redis" && c.Storage.RedisURL == "" {
		return errors.New("storage.redis_url is required for the redis driver")
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return errors.New("storage.key cannot be empty")
	}
	if !finitePositive(c.Board.RowHeight) {
		return fmt.Errorf("board.row_height must be a positive number, got %v", c.Board.RowHeight)
	}
	if !finitePositive(c.Board.ColumnSlotWidth) {
		return fmt.Errorf("board.column_slot_width must be a positive number, got %v", c.Board.ColumnSlotWidth)
	}
	if _, err := filter.ParseMode(c.Board.DefaultFilter); err != nil {
		return fmt.Errorf("board.default_filter: %w", err)
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// StorageOptions translates the storage section for storage.Open. Paths
// left empty default to files inside the data directory.
func (c *Config) StorageOptions() storage.Options {
	opts := storage.Options{
		Driver:   c.Storage.Driver,
		Dir:      c.DataDir,
		Bucket:   c.Storage.Bucket,
		RedisURL: c.Storage.RedisURL,
		RedisKey: c.Storage.RedisPrefix,
	}
	switch c.Storage.Driver {
	case "bolt":
		opts.BoltPath = c.Storage.Path
		if opts.BoltPath == "" {
			opts.BoltPath = filepath.Join(c.DataDir, "board.db")
		}
	case "sqlite":
		opts.SQLitePath = c.Storage.Path
		if opts.SQLitePath == "" {
			opts.SQLitePath = filepath.Join(c.DataDir, "board.sqlite")
		}
	case "file":
		if c.Storage.Path != "" {
			opts.Dir = c.Storage.Path
		}
	}
	return opts
}

// Geometry returns the drop geometry for the drag coordinator.
func (c *Config) Geometry() dnd.Geometry {
	return dnd.Geometry{RowHeight: c.Board.RowHeight, ColumnSlotWidth: c.Board.ColumnSlotWidth}
}

// FilterMode returns the parsed default filter; Validate has already checked it.
func (c *Config) FilterMode() filter.Mode {
	mode, _ := filter.ParseMode(c.Board.DefaultFilter)
	return mode
}

// EnsureDirs ensures the data and log directories exist
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.Log.Dir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "taskboard"), nil
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "taskboard", "config.yaml"), nil
}

// EnsureConfigFile writes the default config to path unless a file is already there.
func EnsureConfigFile(path string) error {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	cfg := Default()
	defaultDir, err := GetDefaultDir()
	if err != nil {
		return err
	}
	cfg.DataDir = defaultDir

	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
