// Package config resolves boulderlog settings from defaults, an optional YAML
// file, an optional .env file and BOULDERLOG_* environment variables, later
// sources winning.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/boulderlog/boulderlog/internal/sheets"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath      string        `yaml:"db"`
	LogLevel    string        `yaml:"log_level"`
	LogUseCases bool          `yaml:"log_use_cases"`
	Sheets      sheets.Config `yaml:"sheets"`
}

// Dir is the per-user data directory, ~/.boulderlog.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".boulderlog"
	}
	return filepath.Join(home, ".boulderlog")
}

// DefaultConfig keeps the database under ~/.boulderlog and logs warnings only.
func DefaultConfig() Config {
	return Config{
		DBPath:   filepath.Join(Dir(), "boulderlog.db"),
		LogLevel: "warn",
	}
}

// DefaultConfigPath returns BOULDERLOG_CONFIG or ~/.boulderlog/config.yaml.
func DefaultConfigPath() string {
	if v := os.Getenv("BOULDERLOG_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(Dir(), "config.yaml")
}

// Load builds the configuration. envFiles default to ".env" in the working
// directory; missing files are skipped. An empty configPath means
// DefaultConfigPath.
func Load(configPath string, envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := DefaultConfig()
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	if err := cfg.mergeFile(configPath); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()

	if _, err := cfg.SlogLevel(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	c.DBPath = expandHome(c.DBPath)
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("BOULDERLOG_DB"); v != "" {
		c.DBPath = expandHome(v)
	}
	if v := os.Getenv("BOULDERLOG_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("BOULDERLOG_LOG_USECASES"); v != "" {
		c.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("BOULDERLOG_SHEETS_ID"); v != "" {
		c.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv("BOULDERLOG_SHEETS_API_KEY"); v != "" {
		c.Sheets.APIKey = v
	}
}

// SlogLevel parses LogLevel: debug, info, warn or error.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Logger returns a text logger at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
