// Package config loads the shell configuration: a YAML file under the user
// config dir, overridable per-field from the environment.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type TranscriptConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type Config struct {
	APIBaseURL    string           `yaml:"api_base_url"`
	Token         string           `yaml:"token"`
	Theme         string           `yaml:"theme"`
	LogLevel      string           `yaml:"log_level"`
	LogFile       string           `yaml:"log_file"`
	PrefsPath     string           `yaml:"prefs_path"`
	ThinkingDelay time.Duration    `yaml:"thinking_delay"`
	Transcript    TranscriptConfig `yaml:"transcript"`
}

// Dir returns the oto config directory, creating it if needed.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "config: resolve user config dir")
	}
	dir := filepath.Join(base, "oto")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "config: create %s", dir)
	}
	return dir, nil
}

func defaults(dir string) Config {
	return Config{
		APIBaseURL:    "https://api.oto.sh/v1",
		LogLevel:      "info",
		LogFile:       filepath.Join(dir, "oto.log"),
		PrefsPath:     filepath.Join(dir, "prefs.db"),
		ThinkingDelay: 1200 * time.Millisecond,
		Transcript: TranscriptConfig{
			Path: filepath.Join(dir, "transcripts.db"),
		},
	}
}

// Load reads path (empty means <config dir>/config.yaml). A missing file is
// not an error; env vars win over the file.
func Load(path string) (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	cfg := defaults(dir)
	if path == "" {
		path = filepath.Join(dir, "config.yaml")
	}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults + env only
	case err != nil:
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "config: parse %s", path)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OTO_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("OTO_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("OTO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("OTO_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("OTO_PREFS_PATH"); v != "" {
		cfg.PrefsPath = v
	}
}
