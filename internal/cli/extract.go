package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/apidoc/internal/config"
	"github.com/mvp-joe/apidoc/internal/export"
	"github.com/mvp-joe/apidoc/internal/scan"
)

// extractOptions holds the extract command's flags.
type extractOptions struct {
	input   string
	output  string
	format  string
	workers int
	quiet   bool
	watch   bool
}

func init() {
	rootCmd.AddCommand(newExtractCmd())
}

func newExtractCmd() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract endpoint records from Java sources",
		Long: `Extract walks the input directory, parses every Java source file and
writes one record per endpoint method.

Source files are named <repo>#<file>, where '$' stands for '/' inside
the file part, e.g. users#src$main$java$UserResource.java.

Examples:
  # Extract to a CSV file
  apidoc extract --input ./sources --output api.csv

  # Stream CSV to stdout
  apidoc extract --input ./sources --output - --quiet

  # Store records in SQLite and keep them current as sources change
  apidoc extract --input ./sources --output api.db --format sqlite --watch

  # Use a legacy properties file
  apidoc extract --config config.properties
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Directory of Java sources to scan")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file, or - for stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: csv or sqlite (default csv)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Concurrent file scans (default one per CPU)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Disable progress bars and non-error output")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Watch for source changes and re-extract")

	return cmd
}

func runExtract(cmd *cobra.Command, opts *extractOptions) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(cmd.ErrOrStderr(), "\nInterrupted! Cancelling extraction...")
			cancel()
		case <-ctx.Done():
		}
	}()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	loaderOpts := []config.LoaderOption{config.WithFlags(cmd.Flags())}
	if cfgFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(cfgFile))
	}
	cfg, err := config.NewLoader(rootDir, loaderOpts...).Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	discovery, err := scan.NewFileDiscovery(cfg.InputDirectory, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("failed to create file discovery: %w", err)
	}

	ex := &extraction{
		cfg:       cfg,
		discovery: discovery,
		stdout:    cmd.OutOrStdout(),
		stderr:    cmd.ErrOrStderr(),
		quiet:     opts.quiet,
	}

	if opts.watch {
		cache, err := scan.NewUnitCache(scan.DefaultCacheCapacity)
		if err != nil {
			return err
		}
		defer cache.Close()
		ex.cache = cache
	}

	if err := ex.run(ctx); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("extraction cancelled")
		}
		return err
	}

	if !opts.watch {
		return nil
	}

	watcher, err := scan.NewWatcher(cfg.InputDirectory, discovery, scan.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("failed to start watch mode: %w", err)
	}

	if !ex.quiet {
		log.Println("Starting watch mode...")
	}

	// Every change re-runs the whole extraction so output stays a full snapshot.
	// Unchanged files are served from the unit cache.
	err = watcher.Run(ctx, func(files []string) {
		if !ex.quiet {
			log.Printf("Detected %d changed source file(s), re-extracting\n", len(files))
		}
		if err := ex.run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("Warning: re-extraction failed: %v\n", err)
		}
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch mode failed: %w", err)
	}

	if !ex.quiet {
		log.Println("Watch mode stopped")
	}
	return nil
}

// extraction runs one discover, scan and export pass.
type extraction struct {
	cfg       *config.Config
	discovery *scan.FileDiscovery
	stdout    io.Writer
	stderr    io.Writer
	quiet     bool
	cache     *scan.UnitCache
}

func (e *extraction) run(ctx context.Context) error {
	files, err := e.discovery.DiscoverFiles()
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}

	progress := NewCLIProgressReporter(e.quiet, e.stderr)
	progress.OnDiscoveryComplete(len(files))

	runner := scan.NewRunner(scan.Options{
		Workers:  e.cfg.WorkerCount(),
		Naming:   e.cfg.ExtractNaming(),
		Progress: progress,
		Cache:    e.cache,
	})

	result, err := runner.Run(ctx, files)
	if err != nil {
		return err
	}

	if err := export.Write(ctx, e.cfg.Format, e.cfg.OutputFile, e.stdout, result.Records); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !e.quiet && e.cfg.OutputFile != export.Stdout {
		log.Printf("Wrote %s records to %s\n", formatNumber(len(result.Records)), e.cfg.OutputFile)
	}
	return nil
}
