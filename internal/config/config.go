// Package config provides configuration loading for apidoc.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Command line flags (--input, --output, --format, --workers)
//  2. Environment variables (APIDOC_*)
//  3. Config file (--config, or .apidoc.yml in the working directory)
//  4. Built-in defaults
//
// Legacy config.properties files with InputDirectory and OutputFile keys
// are accepted through --config.
package config

import (
	"runtime"

	"github.com/mvp-joe/apidoc/internal/extract"
)

// Config represents the complete apidoc configuration.
// It can be loaded from .apidoc.yml with environment variable and flag overrides.
type Config struct {
	InputDirectory string       `yaml:"input_directory" mapstructure:"input_directory"` // directory of Java sources to scan
	OutputFile     string       `yaml:"output_file" mapstructure:"output_file"`         // output path, "-" for stdout
	Format         string       `yaml:"format" mapstructure:"format"`                   // "csv" or "sqlite"
	Workers        int          `yaml:"workers" mapstructure:"workers"`                 // 0 means one per CPU
	Paths          PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Naming         NamingConfig `yaml:"naming" mapstructure:"naming"`
}

// PathsConfig defines which files to scan and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// NamingConfig describes the <repo>#<file> file naming convention.
type NamingConfig struct {
	Separator   string `yaml:"separator" mapstructure:"separator"`     // splits repo and file
	Placeholder string `yaml:"placeholder" mapstructure:"placeholder"` // stands for '/' inside a segment
}

// Default returns a configuration with sensible defaults.
// Input and output have no defaults and must be supplied.
func Default() *Config {
	naming := extract.DefaultNaming()
	return &Config{
		Format:  "csv",
		Workers: 0,
		Paths: PathsConfig{
			Include: []string{
				"**/*.java",
			},
			Ignore: []string{
				".git/**",
				"target/**",
				"build/**",
				"node_modules/**",
			},
		},
		Naming: NamingConfig{
			Separator:   naming.Separator,
			Placeholder: naming.Placeholder,
		},
	}
}

// ExtractNaming converts the naming section for the extractor.
func (c *Config) ExtractNaming() extract.Naming {
	return extract.Naming{
		Separator:   c.Naming.Separator,
		Placeholder: c.Naming.Placeholder,
	}
}

// WorkerCount resolves the configured worker count.
func (c *Config) WorkerCount() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}
