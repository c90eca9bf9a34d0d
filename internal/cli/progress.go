package cli

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/apidoc/internal/scan"
)

// CLIProgressReporter implements scan.ProgressReporter with a progress bar.
// Everything is written to out so CSV streamed to stdout stays clean.
type CLIProgressReporter struct {
	quiet          bool
	out            io.Writer
	mu             sync.Mutex
	fileBar        *progressbar.ProgressBar
	totalFiles     int
	processedFiles int
}

var _ scan.ProgressReporter = (*CLIProgressReporter)(nil)

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool, out io.Writer) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet: quiet,
		out:   out,
	}
}

func (c *CLIProgressReporter) OnDiscoveryComplete(totalFiles int) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	log.Printf("Scanning %s source files\n", formatNumber(totalFiles))
	c.totalFiles = totalFiles
	c.processedFiles = 0

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Extracting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnUnitProcessed(fileName string) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fileBar != nil {
		c.processedFiles++
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *scan.Stats) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}

	fmt.Fprintf(c.out, "✓ Extraction complete: %s records from %s files in %.1fs\n",
		formatNumber(stats.Records),
		formatNumber(stats.Scanned),
		stats.Duration.Seconds())
	if stats.Failed > 0 {
		fmt.Fprintf(c.out, "  Skipped: %s files\n", formatNumber(stats.Failed))
	}
}

// formatNumber renders n with thousands separators.
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
