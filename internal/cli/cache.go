package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/code-skeleton/internal/cache"
)

// cacheCmd represents the cache command group
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the skeleton document cache",
	Long: `Manage the persistent cache of rendered skeleton documents.

Documents are keyed by file path, language, range and content digest, so a
changed file never serves a stale document. The cache lives under
~/.skeleton/cache unless cache.location is configured.

Available commands:
  stats  - Show cache location and entry count
  clear  - Remove every cached document`,
}

// cacheStatsCmd shows cache location and entry count
var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache location and entry count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDiskCache(func(disk *cache.Disk) error {
			return executeCacheStats(cmd.Context(), disk, cmd.OutOrStdout())
		})
	},
}

// cacheClearCmd removes every cached document
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDiskCache(func(disk *cache.Disk) error {
			return executeCacheClear(cmd.Context(), disk, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// withDiskCache opens the configured persistent tier for fn.
func withDiskCache(fn func(disk *cache.Disk) error) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	location := cfg.Cache.Location
	if location == "" {
		location = cache.DefaultLocation()
	}
	disk, err := cache.OpenDisk(location)
	if err != nil {
		return fmt.Errorf("failed to open cache at %s: %w", location, err)
	}
	defer disk.Close()

	return fn(disk)
}

func executeCacheStats(ctx context.Context, disk *cache.Disk, out io.Writer) error {
	stats, err := disk.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Cache Location: %s\n", disk.Path())
	fmt.Fprintf(out, "Documents: %d\n", stats.Entries)
	return nil
}

func executeCacheClear(ctx context.Context, disk *cache.Disk, out io.Writer) error {
	stats, err := disk.Stats(ctx)
	if err != nil {
		return err
	}
	if err := disk.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Fprintf(out, "Removed %d cached documents from %s\n", stats.Entries, disk.Path())
	return nil
}
