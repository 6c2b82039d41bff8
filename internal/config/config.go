// Package config loads code-skeleton settings from .skeleton/config.yml with
// SKELETON_* environment overrides.
package config

import (
	"time"

	"github.com/mvp-joe/code-skeleton/internal/cache"
	"github.com/mvp-joe/code-skeleton/internal/diagnostics"
	"github.com/mvp-joe/code-skeleton/internal/skeleton"
)

// Config represents the complete code-skeleton configuration.
// It can be loaded from .skeleton/config.yml with environment variable overrides.
type Config struct {
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
	Paths      PathsConfig      `yaml:"paths" mapstructure:"paths"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
}

// ExtractionConfig tunes diagnostics and document rendering.
type ExtractionConfig struct {
	ContextLines       int `yaml:"context_lines" mapstructure:"context_lines"`               // lines shown around each error
	MaxDiagnosticQueue int `yaml:"max_diagnostic_queue" mapstructure:"max_diagnostic_queue"` // 0 = unbounded
	MaxDocumentBytes   int `yaml:"max_document_bytes" mapstructure:"max_document_bytes"`     // output cap per document
}

// PathsConfig defines which files batch runs and the watcher consider.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// CacheConfig controls the document cache.
type CacheConfig struct {
	Enabled       bool   `yaml:"enabled" mapstructure:"enabled"`
	MemoryEntries int    `yaml:"memory_entries" mapstructure:"memory_entries"`
	TTLMinutes    int    `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
	Location      string `yaml:"location" mapstructure:"location"` // Override default ~/.skeleton/cache
}

// BatchConfig controls directory runs.
type BatchConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LoggingConfig selects log verbosity and format.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			ContextLines:       diagnostics.DefaultContextLines,
			MaxDiagnosticQueue: 0,
			MaxDocumentBytes:   skeleton.DefaultMaxDocumentBytes,
		},
		Paths: PathsConfig{
			Include: []string{
				"**/*.java",
				"**/*.py",
				"**/*.pyi",
			},
			Ignore: []string{
				".git/**",
				"node_modules/**",
				"vendor/**",
				"build/**",
				"target/**",
				"dist/**",
				"__pycache__/**",
				".venv/**",
				"venv/**",
			},
		},
		Cache: CacheConfig{
			Enabled:       true,
			MemoryEntries: cache.DefaultMemoryEntries,
			TTLMinutes:    60,
			Location:      "", // Empty means use default ~/.skeleton/cache
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// EngineOptions converts the extraction section to engine options.
func (c *Config) EngineOptions() skeleton.Options {
	return skeleton.Options{
		ContextLines:       c.Extraction.ContextLines,
		MaxDiagnosticQueue: c.Extraction.MaxDiagnosticQueue,
		MaxDocumentBytes:   c.Extraction.MaxDocumentBytes,
	}
}

// CacheOptions converts the cache section to cache options.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Enabled:       c.Cache.Enabled,
		MemoryEntries: c.Cache.MemoryEntries,
		TTL:           time.Duration(c.Cache.TTLMinutes) * time.Minute,
		Location:      c.Cache.Location,
	}
}
