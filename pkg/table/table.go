// Package table writes the summary table to disk.
package table

import (
	"fmt"
	"os"
	"strings"
)

// Format selects the on-disk encoding of the table.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat converts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	case "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown table format %q", s)
	}
}

// Writer defines the interface every table encoding implements.
type Writer interface {
	// WriteHeader writes the column names.
	WriteHeader(columns []string) error

	// WriteRow appends one row.
	WriteRow(values []string) error

	// Close flushes buffered rows and releases the file.
	Close() error
}

// OutputWriteError is returned when the output cannot be created or written.
type OutputWriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

// Options configures Create.
type Options struct {
	// Delimiter separates fields and doubles as the quote character of the
	// csv format. Zero means '|'.
	Delimiter rune

	// Sheet names the xlsx worksheet. Empty means "meta-data".
	Sheet string
}

// Create truncates or creates path and returns a Writer for format.
func Create(path string, format Format, opts Options) (Writer, error) {
	switch format {
	case FormatXLSX:
		return NewXLSXWriter(path, opts.Sheet)
	case FormatCSV, "":
		f, err := os.Create(path)
		if err != nil {
			return nil, &OutputWriteError{Path: path, Op: "create", Err: err}
		}
		w := NewDelimitedWriter(f)
		if opts.Delimiter != 0 {
			w.Comma = opts.Delimiter
			w.Quote = opts.Delimiter
		}
		w.path = path
		return w, nil
	default:
		return nil, &OutputWriteError{Path: path, Op: "create", Err: fmt.Errorf("unknown table format %q", format)}
	}
}

// WriteAll writes the header and every row, then closes w. The first error
// wins; w is closed on every path.
func WriteAll(w Writer, columns []string, rows [][]string) (err error) {
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	if err := w.WriteHeader(columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}
