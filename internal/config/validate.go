package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/apidoc/internal/export"
)

var (
	// ErrMissingInput indicates no input directory was configured
	ErrMissingInput = errors.New("missing input directory")

	// ErrMissingOutput indicates no output file was configured
	ErrMissingOutput = errors.New("missing output file")

	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidWorkers indicates a negative worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidPattern indicates a missing or malformed glob pattern
	ErrInvalidPattern = errors.New("invalid path pattern")

	// ErrInvalidNaming indicates an unusable file naming convention
	ErrInvalidNaming = errors.New("invalid naming convention")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.InputDirectory) == "" {
		errs = append(errs, fmt.Errorf("%w: set input_directory or --input", ErrMissingInput))
	}
	if strings.TrimSpace(cfg.OutputFile) == "" {
		errs = append(errs, fmt.Errorf("%w: set output_file or --output", ErrMissingOutput))
	}

	switch strings.ToLower(cfg.Format) {
	case export.FormatCSV:
	case export.FormatSQLite:
		if cfg.OutputFile == export.Stdout {
			errs = append(errs, fmt.Errorf("%w: sqlite output cannot be written to stdout", ErrInvalidFormat))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'csv' or 'sqlite', got '%s'", ErrInvalidFormat, cfg.Format))
	}

	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if err := validateNaming(&cfg.Naming); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	if len(cfg.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one include pattern required", ErrInvalidPattern))
	}

	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateNaming(cfg *NamingConfig) error {
	var errs []error

	if cfg.Separator == "" {
		errs = append(errs, fmt.Errorf("%w: separator is required", ErrInvalidNaming))
	}
	if cfg.Placeholder == "" {
		errs = append(errs, fmt.Errorf("%w: placeholder is required", ErrInvalidNaming))
	}
	if cfg.Separator != "" && cfg.Separator == cfg.Placeholder {
		errs = append(errs, fmt.Errorf("%w: separator and placeholder must differ, both are '%s'", ErrInvalidNaming, cfg.Separator))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
// Each error stays matchable with errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	args := make([]any, len(errs))
	for i, err := range errs {
		args[i] = err
	}

	return fmt.Errorf("validation failed:"+strings.Repeat("\n  - %w", len(errs)), args...)
}
