package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidContextLines indicates a negative context window
	ErrInvalidContextLines = errors.New("invalid context lines")

	// ErrInvalidQueueSize indicates a negative diagnostic queue cap
	ErrInvalidQueueSize = errors.New("invalid diagnostic queue size")

	// ErrInvalidDocumentSize indicates a non-positive document cap
	ErrInvalidDocumentSize = errors.New("invalid document size")

	// ErrInvalidPattern indicates a glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid path pattern")

	// ErrInvalidCacheSettings indicates invalid cache configuration
	ErrInvalidCacheSettings = errors.New("invalid cache settings")

	// ErrInvalidWorkers indicates a non-positive batch worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unknown log format
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Validate checks that the configuration is valid and complete.
// All problems are reported together.
func Validate(cfg *Config) error {
	return errors.Join(
		validateExtraction(&cfg.Extraction),
		validatePaths(&cfg.Paths),
		validateCache(&cfg.Cache),
		validateBatch(&cfg.Batch),
		validateLogging(&cfg.Logging),
	)
}

func validateExtraction(cfg *ExtractionConfig) error {
	var errs []error

	if cfg.ContextLines < 0 {
		errs = append(errs, fmt.Errorf("%w: must be >= 0, got %d", ErrInvalidContextLines, cfg.ContextLines))
	}
	if cfg.MaxDiagnosticQueue < 0 {
		errs = append(errs, fmt.Errorf("%w: must be >= 0, got %d", ErrInvalidQueueSize, cfg.MaxDiagnosticQueue))
	}
	if cfg.MaxDocumentBytes <= 0 {
		errs = append(errs, fmt.Errorf("%w: must be positive, got %d", ErrInvalidDocumentSize, cfg.MaxDocumentBytes))
	}

	return errors.Join(errs...)
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error
	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}
	return errors.Join(errs...)
}

func validateCache(cfg *CacheConfig) error {
	if !cfg.Enabled {
		return nil
	}

	var errs []error
	if cfg.MemoryEntries <= 0 {
		errs = append(errs, fmt.Errorf("%w: memory_entries must be positive, got %d", ErrInvalidCacheSettings, cfg.MemoryEntries))
	}
	if cfg.TTLMinutes <= 0 {
		errs = append(errs, fmt.Errorf("%w: ttl_minutes must be positive, got %d", ErrInvalidCacheSettings, cfg.TTLMinutes))
	}
	return errors.Join(errs...)
}

func validateBatch(cfg *BatchConfig) error {
	if cfg.Workers <= 0 {
		return fmt.Errorf("%w: must be positive, got %d", ErrInvalidWorkers, cfg.Workers)
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	var errs []error

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: must be debug, info, warn or error, got '%s'", ErrInvalidLogLevel, cfg.Level))
	}

	switch strings.ToLower(cfg.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'text' or 'json', got '%s'", ErrInvalidLogFormat, cfg.Format))
	}

	return errors.Join(errs...)
}
