package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/secretgate/secretgate/internal/constants"
)

// GlobalConfig holds machine-wide defaults: extra patterns and skip rules
// applied to every repository, and log rotation settings.
type GlobalConfig struct {
	Patterns    []PatternConfig   `json:"patterns,omitempty" toml:"patterns,omitempty"`
	Skip        SkipConfig        `json:"skip,omitempty" toml:"skip,omitempty"`
	LogRotation LogRotationConfig `json:"logRotation,omitempty" toml:"logRotation,omitempty"`
}

// XDGConfig handles XDG Base Directory Specification compliant configuration
type XDGConfig struct {
	BaseDir string
}

// NewXDGConfig creates a new XDG configuration manager
func NewXDGConfig() *XDGConfig {
	baseDir := os.Getenv("XDG_CONFIG_HOME")
	if baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory if home directory cannot be determined
			baseDir = ".config"
		} else {
			baseDir = filepath.Join(homeDir, ".config")
		}
	}

	return &XDGConfig{
		BaseDir: filepath.Join(baseDir, constants.BinaryName),
	}
}

// GetConfigDir returns the XDG configuration directory for secretgate
func (x *XDGConfig) GetConfigDir() string {
	return x.BaseDir
}

// GetGlobalConfigPath returns the path to the global configuration file
func (x *XDGConfig) GetGlobalConfigPath(format string) string {
	if format == "" {
		format = "json"
	}
	return filepath.Join(x.BaseDir, fmt.Sprintf("%s.%s", constants.GlobalConfigBaseName, format))
}

// LoadGlobalConfig loads the global configuration, preferring TOML over
// JSON when both exist. A missing file yields defaults.
func (x *XDGConfig) LoadGlobalConfig() (*GlobalConfig, error) {
	cfg := &GlobalConfig{LogRotation: DefaultLogRotationConfig()}

	for _, format := range []string{"toml", "json"} {
		path := x.GetGlobalConfigPath(format)
		data, err := os.ReadFile(path) // #nosec G304 - path is internally controlled via GetGlobalConfigPath
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read global config %s: %w", path, err)
		}

		switch format {
		case "toml":
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
			}
		case "json":
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse JSON config %s: %w", path, err)
			}
		}
		if err := validatePatterns(cfg.Patterns); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return cfg, nil
	}

	return cfg, nil
}

// SaveGlobalConfig saves the global configuration in the given format.
func (x *XDGConfig) SaveGlobalConfig(cfg *GlobalConfig, format string) error {
	if format == "" {
		format = "json"
	}

	if err := os.MkdirAll(x.GetConfigDir(), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON config: %w", err)
		}
	case "toml":
		var buf strings.Builder
		encoder := toml.NewEncoder(&buf)
		if err := encoder.Encode(cfg); err != nil {
			return fmt.Errorf("failed to marshal TOML config: %w", err)
		}
		data = []byte(buf.String())
	default:
		return fmt.Errorf("unsupported config format: %s", format)
	}

	path := x.GetGlobalConfigPath(format)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write global config file: %w", err)
	}
	return nil
}
