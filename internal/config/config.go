package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir    = "./data"
	DefaultConfigFile = "mdshelf.yaml"
	DefaultLogLevel   = "info"
)

// Config holds the settings shared by the TUI, CLI and MCP server
type Config struct {
	DataDir  string `yaml:"data_dir"`
	IndexDir string `yaml:"index_dir"` // empty means $XDG_DATA_HOME/mdshelf
	Locale   string `yaml:"locale"`    // BCP 47 tag used for title sorting
	Watch    bool   `yaml:"watch"`
	Log      Log    `yaml:"log"`
}

// Log configures the zap logger
type Log struct {
	File  string `yaml:"file"` // empty disables logging
	Level string `yaml:"level"`
}

// DataDir returns the data directory from MDSHELF_DATA env var,
// falling back to DefaultDataDir.
func DataDir() string {
	if env := os.Getenv("MDSHELF_DATA"); env != "" {
		return env
	}
	return DefaultDataDir
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Log:     Log{Level: DefaultLogLevel},
	}
}

// Load reads configuration from .env, an optional YAML file and the
// environment, in that order of increasing precedence. An empty path reads
// MDSHELF_CONFIG or DefaultConfigFile; a missing file leaves the defaults.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	explicit := path != ""
	if !explicit {
		path = os.Getenv("MDSHELF_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultConfigFile
	}

	file, err := os.ReadFile(ExpandHome(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	// 3. Override with Environment Variables if present
	if dataDir := os.Getenv("MDSHELF_DATA"); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logFile := os.Getenv("MDSHELF_LOG_FILE"); logFile != "" {
		cfg.Log.File = logFile
	}
	if level := os.Getenv("MDSHELF_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if locale := os.Getenv("MDSHELF_LOCALE"); locale != "" {
		cfg.Locale = locale
	}

	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	cfg.DataDir = ExpandHome(cfg.DataDir)
	cfg.IndexDir = ExpandHome(cfg.IndexDir)
	cfg.Log.File = ExpandHome(cfg.Log.File)

	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
