// Package cli implements the skeleton command line.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/code-skeleton/internal/cache"
	"github.com/mvp-joe/code-skeleton/internal/config"
	"github.com/mvp-joe/code-skeleton/internal/logging"
	"github.com/mvp-joe/code-skeleton/internal/skeleton"
)

var (
	cfgFile string
	verbose bool
	noCache bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "skeleton",
	Short: "Extract code skeletons from Java and Python sources",
	Long: `skeleton reduces Java and Python files to their skeletons: the signature of
every class, method and function, nested by containment and tagged with line
spans, plus any syntax errors with the surrounding source lines.

Documents can be printed per file, rendered for a whole tree, or served to
coding assistants over MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .skeleton/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "render without the document cache")
}

// app holds what every command needs, built from configuration.
type app struct {
	root    string
	cfg     *config.Config
	logger  *logrus.Logger
	store   cache.Store
	service *skeleton.Service
}

// loadConfig loads configuration for the working directory, or from --config.
func loadConfig() (string, *config.Config, error) {
	root, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	var loader config.Loader
	if cfgFile != "" {
		loader = config.NewFileLoader(cfgFile)
	} else {
		loader = config.NewLoader(root)
	}
	cfg, err := loader.Load()
	if err != nil {
		return "", nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return root, cfg, nil
}

// loadApp loads configuration and opens the cache.
func loadApp() (*app, error) {
	root, cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	return newApp(root, cfg)
}

// newApp wires logger, cache and service for cfg.
func newApp(root string, cfg *config.Config) (*app, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	store, err := cache.Open(cfg.CacheOptions(), logger)
	if err != nil {
		// Rendering works without a cache.
		logger.WithError(err).Warn("skeleton cache unavailable, continuing without it")
		store = cache.Nop{}
	}

	engine := skeleton.NewEngine(cfg.EngineOptions(), logger)
	abs, err := filepath.Abs(root)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	return &app{
		root:    abs,
		cfg:     cfg,
		logger:  logger,
		store:   store,
		service: skeleton.NewService(engine, store, logger),
	}, nil
}

// Close releases the cache.
func (a *app) Close() error {
	return a.store.Close()
}
