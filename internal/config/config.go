package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything worthbar needs to run.
type Config struct {
	// ScriptPath locates the provider helper executable.
	ScriptPath string
	// PollInterval is the fixed cadence between scheduled fetches.
	PollInterval time.Duration
	// FetchTimeout bounds a single provider invocation.
	FetchTimeout time.Duration
	// DataDir holds the baseline file and the last-label cache.
	DataDir string
}

const (
	defaultConfigPath   = "~/.config/worthbar/config.toml"
	defaultPollSeconds  = 300
	defaultFetchSeconds = 30
	scriptName          = "get_networth_label.py"
)

// Load locates and parses the worthbar config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		ScriptPath          string `toml:"script_path"`
		PollSeconds         int    `toml:"poll_seconds"`
		FetchTimeoutSeconds int    `toml:"fetch_timeout_seconds"`
		DataDir             string `toml:"data_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if s := strings.TrimSpace(raw.ScriptPath); s != "" {
		cfg.ScriptPath = mustExpand(s)
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if raw.FetchTimeoutSeconds > 0 {
		cfg.FetchTimeout = time.Duration(raw.FetchTimeoutSeconds) * time.Second
	}
	if s := strings.TrimSpace(raw.DataDir); s != "" {
		cfg.DataDir = mustExpand(s)
	}

	return cfg, nil
}

func defaults() Config {
	dataDir := mustExpand(defaultDataDir())
	return Config{
		ScriptPath:   filepath.Join(dataDir, scriptName),
		PollInterval: defaultPollSeconds * time.Second,
		FetchTimeout: defaultFetchSeconds * time.Second,
		DataDir:      dataDir,
	}
}

// defaultDataDir matches the helper script's application-support
// location on macOS and the XDG data dir elsewhere.
func defaultDataDir() string {
	if runtime.GOOS == "darwin" {
		return "~/Library/Application Support/SimplifiWorthBar"
	}
	return "~/.local/share/worthbar"
}

// BaselinePath returns the daily-baseline file location.
func (c Config) BaselinePath() string {
	return filepath.Join(c.DataDir, "baseline.json")
}

// LastLabelPath returns the cached last-label file location used by the
// one-shot mode.
func (c Config) LastLabelPath() string {
	return filepath.Join(c.DataDir, "last_label.txt")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
