package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mvp-joe/apidoc/internal/extract"
)

// Supported output formats.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Stdout is the output destination that streams CSV to standard output.
const Stdout = "-"

// ErrUnknownFormat indicates an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Write exports records to dest in the given format. CSV goes to a file or,
// for "-", to stdout. Any destination failure is returned as is; no partial
// output cleanup is attempted.
func Write(ctx context.Context, format, dest string, stdout io.Writer, records []*extract.Record) error {
	switch format {
	case FormatCSV:
		if dest == Stdout {
			return WriteCSV(stdout, records)
		}
		f, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := WriteCSV(f, records); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close output file: %w", err)
		}
		return nil
	case FormatSQLite:
		if dest == Stdout {
			return fmt.Errorf("%w: sqlite output needs a file path", ErrUnknownFormat)
		}
		return WriteSQLite(ctx, dest, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
