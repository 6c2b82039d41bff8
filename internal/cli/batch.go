package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/code-skeleton/internal/discovery"
	"github.com/mvp-joe/code-skeleton/internal/skeleton"
)

// DocumentSuffix is appended to a source path to name its rendered document.
const DocumentSuffix = ".skeleton.xml"

var (
	batchOutFlag     string
	batchWorkersFlag int
	batchQuietFlag   bool
)

// batchCmd renders every source file of a directory tree
var batchCmd = &cobra.Command{
	Use:   "batch [DIR]",
	Short: "Render skeleton documents for a directory tree",
	Long: `Render the skeleton document of every Java and Python file under DIR
(default: the current directory), selected by the include and ignore patterns
of the configuration.

Files are rendered concurrently. With --out each document is written to
<out>/<relative path>.skeleton.xml; otherwise documents are printed to stdout
in path order. A file that fails to render is reported and skipped.

Examples:
  skeleton batch
  skeleton batch src --out build/skeletons --workers 8`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchOutFlag, "out", "o", "", "directory for rendered documents (default: stdout)")
	batchCmd.Flags().IntVarP(&batchWorkersFlag, "workers", "w", 0, "concurrent renders (default: batch.workers from config)")
	batchCmd.Flags().BoolVarP(&batchQuietFlag, "quiet", "q", false, "suppress progress output")
}

// batchOptions configures one batch run.
type batchOptions struct {
	OutDir  string
	Workers int
}

// batchStats summarizes a batch run.
type batchStats struct {
	Files     int
	Rendered  int
	Failed    int
	Truncated int
}

func runBatch(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	dir := a.root
	if len(args) == 1 {
		if dir, err = filepath.Abs(args[0]); err != nil {
			return fmt.Errorf("failed to resolve %s: %w", args[0], err)
		}
	}

	d, err := discovery.New(dir, a.cfg.Paths.Include, a.cfg.Paths.Ignore)
	if err != nil {
		return err
	}

	opts := batchOptions{OutDir: batchOutFlag, Workers: a.cfg.Batch.Workers}
	if batchWorkersFlag > 0 {
		opts.Workers = batchWorkersFlag
	}

	progress := newBatchProgress(cmd.ErrOrStderr(), batchQuietFlag)
	stats, err := executeBatch(cmd.Context(), a.service, d, opts, cmd.OutOrStdout(), progress, a.logger)
	if err != nil {
		return err
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d files failed to render", stats.Failed, stats.Files)
	}
	return nil
}

// executeBatch renders every discovered file with at most opts.Workers
// renders in flight. Per-file failures are counted, not returned; the error
// is reserved for discovery, output and cancellation failures.
func executeBatch(ctx context.Context, service *skeleton.Service, d *discovery.Discovery, opts batchOptions, out io.Writer, progress *batchProgress, logger *logrus.Logger) (batchStats, error) {
	files, err := d.Discover()
	if err != nil {
		return batchStats{}, err
	}

	stats := batchStats{Files: len(files)}
	progress.OnDiscoveryComplete(len(files))
	progress.OnRenderStart(len(files))

	var failed, truncated atomic.Int64
	docs := make([]*skeleton.Document, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer progress.OnFileRendered()

			doc, err := service.Skeleton(gctx, file.Path, string(file.Language), nil)
			if err != nil {
				failed.Add(1)
				logger.WithError(err).WithField("path", file.RelPath).Warn("failed to render skeleton")
				return nil
			}
			if doc.Truncated {
				truncated.Add(1)
			}

			if opts.OutDir == "" {
				docs[i] = doc
				return nil
			}
			return writeDocument(opts.OutDir, file.RelPath, doc)
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if _, err := fmt.Fprintln(out, doc.Text); err != nil {
			return stats, err
		}
	}

	stats.Failed = int(failed.Load())
	stats.Truncated = int(truncated.Load())
	stats.Rendered = stats.Files - stats.Failed
	progress.OnComplete(stats)
	return stats, nil
}

// writeDocument writes doc to <outDir>/<relPath>.skeleton.xml.
func writeDocument(outDir, relPath string, doc *skeleton.Document) error {
	target := filepath.Join(outDir, filepath.FromSlash(relPath)+DocumentSuffix)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, []byte(doc.Text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}
