package scan

import (
	"context"
	"log"
	"os"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/apidoc/internal/extract"
	"github.com/mvp-joe/apidoc/internal/javasrc"
)

// Options configures a Runner.
type Options struct {
	// Workers bounds concurrent file scans. Zero or less means runtime.NumCPU().
	Workers int

	// Naming is the source unit identifier convention.
	Naming extract.Naming

	// Progress receives per-file callbacks. Nil disables reporting.
	Progress ProgressReporter

	// Cache reuses records of unchanged files across runs. Nil scans every file.
	Cache *UnitCache
}

// Stats summarizes a run.
type Stats struct {
	Units    int
	Scanned  int
	Failed   int
	Records  int
	Cached   int
	Duration time.Duration
}

// Failure records a source file that could not be read or parsed.
type Failure struct {
	File string
	Err  error
}

// Result is the outcome of a run. Records are in file order, then method
// declaration order within each file.
type Result struct {
	Records  []*extract.Record
	Failures []Failure
	Stats    Stats
}

// Runner scans source files on a bounded worker pool.
type Runner struct {
	parser    *javasrc.Parser
	collector *extract.Collector
	workers   int
	progress  ProgressReporter
	cache     *UnitCache
}

// NewRunner creates a new Runner.
func NewRunner(opts Options) *Runner {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	progress := opts.Progress
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}

	return &Runner{
		parser:    javasrc.NewParser(),
		collector: extract.NewCollector(opts.Naming),
		workers:   workers,
		progress:  progress,
		cache:     opts.Cache,
	}
}

// Run scans files and returns their records. A file that fails to read or
// parse is logged, reported in Result.Failures, and skipped. Only context
// cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, files []string) (*Result, error) {
	startTime := time.Now()

	// Each task owns one slot, so merging in file order needs no locking.
	batches := make([][]*extract.Record, len(files))
	errs := make([]error, len(files))
	hits := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			batches[i], hits[i], errs[i] = r.scanFile(gctx, file)
			r.progress.OnUnitProcessed(file)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Records: slices.Concat(batches...)}
	for i, err := range errs {
		if err != nil {
			log.Printf("Warning: skipped %s: %v\n", files[i], err)
			result.Failures = append(result.Failures, Failure{File: files[i], Err: err})
		}
	}

	result.Stats = Stats{
		Units:    len(files),
		Scanned:  len(files) - len(result.Failures),
		Failed:   len(result.Failures),
		Records:  len(result.Records),
		Cached:   countTrue(hits),
		Duration: time.Since(startTime),
	}
	r.progress.OnComplete(&result.Stats)

	return result, nil
}

// scanFile parses one file, or serves it from the cache when it is unchanged.
func (r *Runner) scanFile(ctx context.Context, file string) ([]*extract.Record, bool, error) {
	if r.cache == nil {
		records, err := r.parseFile(ctx, file)
		return records, false, err
	}

	info, err := os.Stat(file)
	if err != nil {
		return nil, false, err
	}
	if records, ok := r.cache.Get(file, info); ok {
		return records, true, nil
	}

	records, err := r.parseFile(ctx, file)
	if err != nil {
		return nil, false, err
	}
	r.cache.Put(file, info, records)
	return records, false, nil
}

func (r *Runner) parseFile(ctx context.Context, file string) ([]*extract.Record, error) {
	unit, err := r.parser.ParseFile(ctx, file)
	if err != nil {
		return nil, err
	}
	return r.collector.Collect(unit), nil
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
