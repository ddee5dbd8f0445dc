// Package batch builds the photo summary table for one directory.
package batch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/quidome/photo-meta-go/pkg/exiftags"
	"github.com/quidome/photo-meta-go/pkg/extract"
	"github.com/quidome/photo-meta-go/pkg/scan"
	"github.com/quidome/photo-meta-go/pkg/table"
)

// Options configures Run.
type Options struct {
	// Output is the file name of the table, created inside the directory.
	Output string

	// ErrorReport is the file name of the failure report written when
	// KeepGoing is set and at least one file failed.
	ErrorReport string

	Format    table.Format
	Delimiter rune

	// KeepGoing records per-file extraction failures and carries on instead
	// of aborting the run.
	KeepGoing bool

	Scan      scan.Options
	Extractor *extract.Extractor
	Logger    *slog.Logger
}

// DefaultOptions writes meta-data.csv with the '|' delimiter and aborts on
// the first extraction failure.
func DefaultOptions() Options {
	return Options{
		Output:      "meta-data.csv",
		ErrorReport: "meta-data.errors.csv",
		Format:      table.FormatCSV,
		Delimiter:   '|',
		Scan:        scan.DefaultOptions(),
	}
}

// Failure is a file whose extraction failed in keep-going mode.
type Failure struct {
	Name string
	Err  error
}

// Summary describes a completed run.
type Summary struct {
	// Output is the path of the written table.
	Output string

	// ErrorReport is the path of the failure report, if one was written.
	ErrorReport string

	Records []extract.Record

	// Skipped lists files that carry no EXIF data.
	Skipped []string

	Failed []Failure
}

// Run extracts every candidate file in dir and writes the summary table.
//
// Files carrying no EXIF data are skipped and listed in the Summary. Any other
// extraction error aborts the run before the table is written, unless
// opts.KeepGoing is set. If only the error report fails to write, the returned
// Summary still names the written table.
func Run(dir string, opts Options) (Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = extract.New(logger)
	}

	output := outputName(opts.Output, opts.Format)
	errorReport := opts.ErrorReport
	if errorReport == "" {
		errorReport = DefaultOptions().ErrorReport
	}

	scanOpts := opts.Scan
	scanOpts.ExcludeNames = append(append([]string(nil), scanOpts.ExcludeNames...), output, errorReport)

	candidates, err := scan.CandidateRecords(os.DirFS(dir), scanOpts)
	if err != nil {
		return Summary{}, fmt.Errorf("list %s: %w", dir, err)
	}
	logger.Debug("listed directory", "dir", dir, "candidates", len(candidates))

	var summary Summary
	for _, c := range candidates {
		rec, err := extractor.Extract(filepath.Join(dir, c.Name), c.Name)
		if err != nil {
			if errors.Is(err, exiftags.ErrNotImage) {
				logger.Debug("skipping file without EXIF data", "file", c.Name)
				summary.Skipped = append(summary.Skipped, c.Name)
				continue
			}
			if !opts.KeepGoing {
				return Summary{}, err
			}
			logger.Warn("extraction failed", "file", c.Name, "error", err)
			summary.Failed = append(summary.Failed, Failure{Name: c.Name, Err: err})
			continue
		}

		logger.Debug("extracted", "file", c.Name, "bytes", c.FileSizeBytes, "mod_time", c.ModTime)
		summary.Records = append(summary.Records, rec)
	}

	summary.Output = filepath.Join(dir, output)
	if err := writeTable(summary.Output, opts, summary.Records); err != nil {
		return Summary{}, err
	}

	// The table is on disk from here on; failures below keep the summary.
	if len(summary.Failed) > 0 {
		report := filepath.Join(dir, errorReport)
		if err := writeErrorReport(report, opts, summary.Failed); err != nil {
			return summary, err
		}
		summary.ErrorReport = report
	}

	if len(summary.Skipped) > 0 {
		logger.Info("skipped files without EXIF data", "files", strings.Join(summary.Skipped, ", "))
	}
	logger.Info("wrote summary",
		"output", summary.Output,
		"processed", len(summary.Records),
		"skipped", len(summary.Skipped),
		"failed", len(summary.Failed),
	)

	return summary, nil
}

func writeTable(path string, opts Options, records []extract.Record) error {
	w, err := table.Create(path, opts.Format, table.Options{Delimiter: opts.Delimiter})
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Values())
	}
	return table.WriteAll(w, extract.Columns, rows)
}

func writeErrorReport(path string, opts Options, failures []Failure) error {
	w, err := table.Create(path, table.FormatCSV, table.Options{Delimiter: opts.Delimiter})
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []string{f.Name, f.Err.Error()})
	}
	return table.WriteAll(w, []string{"Name", "Error"}, rows)
}

// outputName returns the table file name, switching a .csv extension to
// .xlsx for the xlsx format.
func outputName(name string, format table.Format) string {
	if name == "" {
		name = DefaultOptions().Output
	}
	if format == table.FormatXLSX && strings.EqualFold(filepath.Ext(name), ".csv") {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".xlsx"
	}
	return name
}
