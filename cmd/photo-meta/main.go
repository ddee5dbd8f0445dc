package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/quidome/photo-meta-go/pkg/batch"
	"github.com/quidome/photo-meta-go/pkg/config"
	"github.com/quidome/photo-meta-go/pkg/exiftags"
	"github.com/quidome/photo-meta-go/pkg/extract"
	"github.com/quidome/photo-meta-go/pkg/scan"
	"github.com/quidome/photo-meta-go/pkg/table"
	"github.com/spf13/cobra"
)

const version = "0.2.0"

type options struct {
	configPath string
	verbose    bool
	logFormat  string

	output    string
	format    string
	keepGoing bool
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "photo-meta [directory]",
		Short: "Summarize the camera metadata of a directory of photos",
		Long: "photo-meta reads the EXIF tags of every photo in a directory and writes one row per photo " +
			"(camera, exposure settings, lens, creator) to meta-data.csv in that directory.",
		Version:      version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.Log).With("run_id", uuid.NewString())

			batchOpts, err := batchOptions(cfg, logger)
			if err != nil {
				return err
			}

			summary, err := batch.Run(args[0], batchOpts)
			if err != nil {
				return err
			}

			cmd.Printf("Wrote %d rows to %s\n", len(summary.Records), summary.Output)
			if summary.ErrorReport != "" {
				cmd.Printf("%d files failed, see %s\n", len(summary.Failed), summary.ErrorReport)
			}
			return nil
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text, json")

	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file name inside the directory (default meta-data.csv)")
	rootCmd.Flags().StringVar(&opts.format, "format", "", "output format: csv, xlsx")
	rootCmd.Flags().BoolVarP(&opts.keepGoing, "keep-going", "k", false, "record per-file failures instead of aborting")

	rootCmd.AddCommand(newInspectCmd(opts))

	return rootCmd
}

func newInspectCmd(opts *options) *cobra.Command {
	var showAll bool

	inspectCmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the summary fields of a single photo",
		Long:  "Read one photo and print the fields that photo-meta would write for it, without writing any file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Log)

			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			tags, err := exiftags.Decode(f)
			if err != nil {
				return &extract.TagReadError{File: filepath.Base(path), Err: err}
			}

			if showAll {
				for _, name := range tags.Names() {
					cmd.Printf("%s: %s\n", name, tags[name])
				}
				return nil
			}

			extractor := &extract.Extractor{Logger: logger, Unknown: cfg.Unknown}
			rec, err := extractor.FromTags(tags, filepath.Base(path))
			if err != nil {
				return err
			}

			for i, v := range rec.Values() {
				cmd.Printf("%s: %s\n", extract.Columns[i], v)
			}
			return nil
		},
	}

	inspectCmd.Flags().BoolVar(&showAll, "all", false, "print every decoded tag instead of the summary fields")

	return inspectCmd
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("keep-going") {
		cfg.KeepGoing = opts.keepGoing
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = opts.logFormat
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func batchOptions(cfg *config.Config, logger *slog.Logger) (batch.Options, error) {
	format, err := table.ParseFormat(cfg.Format)
	if err != nil {
		return batch.Options{}, err
	}
	delim, err := cfg.DelimiterRune()
	if err != nil {
		return batch.Options{}, err
	}

	scanOpts := scan.DefaultOptions()
	scanOpts.ExcludeSuffixes = cfg.ExcludeSuffixes

	return batch.Options{
		Output:      cfg.Output,
		ErrorReport: cfg.ErrorReport,
		Format:      format,
		Delimiter:   delim,
		KeepGoing:   cfg.KeepGoing,
		Scan:        scanOpts,
		Extractor:   &extract.Extractor{Logger: logger, Unknown: cfg.Unknown},
		Logger:      logger,
	}, nil
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
