package lint

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/groqlint/internal"
	"github.com/gnolang/groqlint/internal/format"
	tt "github.com/gnolang/groqlint/internal/types"
)

// DefaultConfigFile is the configuration written by `groqlint init`.
const DefaultConfigFile = ".groqlint.yaml"

// Config represents the overall configuration with a name, per-rule
// severities and formatter settings.
type Config struct {
	Name   string                   `yaml:"name" toml:"name"`
	Rules  map[string]tt.ConfigRule `yaml:"rules" toml:"rules"`
	Format FormatConfig             `yaml:"format" toml:"format"`
}

type FormatConfig struct {
	Width int `yaml:"width" toml:"width"`
}

// DefaultConfig lists every rule with its default severity.
func DefaultConfig() Config {
	rules := make(map[string]tt.ConfigRule)
	for _, r := range internal.DefaultRules() {
		rules[r.Name()] = tt.ConfigRule{Severity: r.Severity()}
	}
	return Config{
		Name:   "groqlint",
		Rules:  rules,
		Format: FormatConfig{Width: format.DefaultWidth},
	}
}

// LoadConfig reads a YAML configuration, or TOML when the file name ends
// in .toml.
func LoadConfig(configurationPath string) (Config, error) {
	var config Config

	if filepath.Ext(configurationPath) == ".toml" {
		if _, err := toml.DecodeFile(configurationPath, &config); err != nil {
			return config, fmt.Errorf("parsing %s: %w", configurationPath, err)
		}
	} else {
		f, err := os.Open(configurationPath)
		if err != nil {
			return config, err
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&config); err != nil {
			return config, fmt.Errorf("parsing %s: %w", configurationPath, err)
		}
	}

	if config.Format.Width < 0 {
		return config, fmt.Errorf("%s: %w: %d", configurationPath, ErrInvalidWidth, config.Format.Width)
	}
	return config, nil
}

// WriteConfig stores config as YAML at configurationPath.
func WriteConfig(configurationPath string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(configurationPath, d, 0o644)
}
