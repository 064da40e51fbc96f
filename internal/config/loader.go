package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigDirName is the per-project directory holding forge state.
const ConfigDirName = ".forge"

// ConfigFileName is the persisted configuration file inside [ConfigDirName].
const ConfigFileName = "config.yaml"

// envPrefix namespaces environment overrides (e.g. FORGE_PROJECT_NAME).
const envPrefix = "FORGE"

// Loader loads a persisted project configuration using viper.
//
// The file is expected at <projectDir>/.forge/config.yaml. Individual fields
// can be overridden via FORGE_-prefixed environment variables, which is
// mainly useful in CI where regenerating with a tweaked toggle should not
// require editing the file.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a [Loader].
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	// Nested keys map to env names with dots replaced by underscores,
	// e.g. features.docker -> FORGE_FEATURES_DOCKER.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// ConfigPath returns the expected configuration file path for a project
// directory.
func ConfigPath(projectDir string) string {
	return filepath.Join(projectDir, ConfigDirName, ConfigFileName)
}

// Load reads the persisted configuration for the given project directory.
//
// It returns a [ConfigurationError] wrapped in context when the file is
// missing (the user has not run `forge init` yet) or fails validation.
func (l *Loader) Load(projectDir string) (*Config, error) {
	path := ConfigPath(projectDir)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no forge configuration at %s (run 'forge init' first): %w", path, err)
	}
	return l.LoadFromFile(path)
}

// LoadFromFile reads and validates a configuration from an explicit path.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	l.v.SetConfigFile(path)

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read configuration %s: %w", path, err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
