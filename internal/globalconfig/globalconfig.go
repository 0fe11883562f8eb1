package globalconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/skipsel/internal/config"
	"github.com/MrSnakeDoc/skipsel/internal/utils/pathutils"

	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".config/skipsel"
	configFile = "config.yml"
)

func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load returns the defaults overlaid with the YAML file at path.
// With an empty path the default location is used and may be absent.
func Load(path string) (config.Config, error) {
	cfg := config.DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	absPath, err := pathutils.ToAbsolutePath(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg config.Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	cfg = cfg.Merge(fileCfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", absPath, err)
	}
	return cfg, nil
}

// Marshal renders cfg the way Load expects to read it back.
func Marshal(cfg config.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
