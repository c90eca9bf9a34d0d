package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Legacy keys from the original config.properties file.
const (
	legacyInputKey  = "inputdirectory"
	legacyOutputKey = "outputfile"
)

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"input":   "input_directory",
	"output":  "output_file",
	"format":  "format",
	"workers": "workers",
}

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file, environment variables and flags.
	// Priority: defaults → config file → environment variables → flags (flags win)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
	flags      *pflag.FlagSet
}

// LoaderOption customizes a Loader.
type LoaderOption func(*loader)

// WithConfigFile loads an explicit config file instead of searching rootDir.
// Files ending in .properties are read as KEY=VALUE lines.
func WithConfigFile(path string) LoaderOption {
	return func(l *loader) {
		l.configFile = path
	}
}

// WithFlags binds the input, output, format and workers flags from fs.
// Only flags that were set on the command line override other sources.
func WithFlags(fs *pflag.FlagSet) LoaderOption {
	return func(l *loader) {
		l.flags = fs
	}
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string, opts ...LoaderOption) Loader {
	l := &loader{
		rootDir: rootDir,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Command line flags
// 2. Environment variables (APIDOC_*)
// 3. Config file (--config, or .apidoc.yml / .apidoc.yaml in the root directory)
// 4. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if strings.EqualFold(filepath.Ext(l.configFile), ".properties") {
			v.SetConfigType("dotenv")
		}
	} else {
		v.SetConfigName(".apidoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("APIDOC")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., APIDOC_NAMING_SEPARATOR)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("input_directory")
	v.BindEnv("output_file")
	v.BindEnv("format")
	v.BindEnv("workers")
	v.BindEnv("naming.separator")
	v.BindEnv("naming.placeholder")

	setDefaults(v)

	if l.flags != nil {
		for flagName, key := range flagKeys {
			if f := l.flags.Lookup(flagName); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", flagName, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing searched-for config file is fine; an explicit one must exist.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))

	if cfg.InputDirectory == "" {
		cfg.InputDirectory = v.GetString(legacyInputKey)
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = v.GetString(legacyOutputKey)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ConfigFileUsed reports which config file Load would read, or "" if none.
func ConfigFileUsed(rootDir, configFile string) string {
	if configFile != "" {
		return configFile
	}
	for _, name := range []string{".apidoc.yml", ".apidoc.yaml"} {
		path := filepath.Join(rootDir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("input_directory", defaults.InputDirectory)
	v.SetDefault("output_file", defaults.OutputFile)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("workers", defaults.Workers)

	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	v.SetDefault("naming.separator", defaults.Naming.Separator)
	v.SetDefault("naming.placeholder", defaults.Naming.Placeholder)
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
