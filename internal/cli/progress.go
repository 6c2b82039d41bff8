package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// batchProgress reports batch rendering with a progress bar.
type batchProgress struct {
	quiet bool
	out   io.Writer
	bar   *progressbar.ProgressBar
	start time.Time
}

// newBatchProgress creates a reporter writing to out. A quiet reporter prints nothing.
func newBatchProgress(out io.Writer, quiet bool) *batchProgress {
	return &batchProgress{quiet: quiet, out: out, start: time.Now()}
}

func (p *batchProgress) OnDiscoveryComplete(files int) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "Rendering %d source files\n", files)
}

func (p *batchProgress) OnRenderStart(total int) {
	if p.quiet || total == 0 {
		return
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription("Rendering skeletons"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(p.out)
		}),
	)
}

// OnFileRendered is safe for concurrent use.
func (p *batchProgress) OnFileRendered() {
	if p.bar != nil {
		p.bar.Add(1)
	}
}

func (p *batchProgress) OnComplete(stats batchStats) {
	if p.quiet {
		return
	}
	if p.bar != nil {
		p.bar.Finish()
	}
	fmt.Fprintf(p.out, "✓ Rendered %d files in %.1fs", stats.Rendered, time.Since(p.start).Seconds())
	if stats.Failed > 0 {
		fmt.Fprintf(p.out, " (%d failed)", stats.Failed)
	}
	if stats.Truncated > 0 {
		fmt.Fprintf(p.out, " (%d truncated)", stats.Truncated)
	}
	fmt.Fprintln(p.out)
}
