// Package config loads settings from a YAML file and environment variables.
// Priority: ENV > YAML > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultDirName is the hidden store directory under the user's home.
const DefaultDirName = ".qa_thoughts"

// Config holds the per-invocation settings. StorageDir defaults to
// ~/.qa_thoughts; Username, when set, overrides OS user resolution.
type Config struct {
	StorageDir string `yaml:"storage_dir" env:"QA_THOUGHTS_DIR"`
	Username   string `yaml:"username"    env:"QA_THOUGHTS_USERNAME"`
	LogLevel   string `yaml:"log_level"   env:"QA_THOUGHTS_LOG_LEVEL" env-default:"warn"`
}

// Load reads configuration for one CLI invocation.
//
// A .env file in the working directory is picked up first, best effort. The
// YAML file path comes from QA_THOUGHTS_CONFIG (an explicitly named file must
// exist) and falls back to ~/.qa_thoughts/config.yaml; when the fallback file
// is missing, a default one is written so it can be edited later, and
// configuration comes from ENV + defaults alone.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	path := os.Getenv("QA_THOUGHTS_CONFIG")
	explicitPath := path != ""
	if !explicitPath {
		path = defaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if cfg.StorageDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home dir: %w", err)
		}
		cfg.StorageDir = filepath.Join(home, DefaultDirName)
	}

	if !explicitPath {
		// First run: materialize the defaults. Failure is not fatal.
		if _, err := os.Stat(path); os.IsNotExist(err) {
			_ = writeDefault(path, &cfg)
		}
	}

	return &cfg, nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultDirName, "config.yaml")
}

func writeDefault(path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
