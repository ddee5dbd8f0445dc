package scan

import (
	"errors"
	"io/fs"
	"strings"
	"time"
)

// Options controls which directory entries are candidates.
type Options struct {
	// ExcludeSuffixes drops entries whose name ends with any of them,
	// compared case-insensitively.
	ExcludeSuffixes []string

	// ExcludeNames drops entries with exactly these names, such as the
	// files written by the current run.
	ExcludeNames []string
}

// DefaultOptions excludes spreadsheets, editor lock files and source files.
func DefaultOptions() Options {
	return Options{
		ExcludeSuffixes: []string{
			".csv", ".csv#", ".gitignore", ".go", ".xlsx",
		},
	}
}

// Record is one candidate file.
type Record struct {
	Name          string
	FileSizeBytes int64
	ModTime       time.Time
}

// Candidates returns the names of the candidate files at the root of fsys.
func Candidates(fsys fs.FS, opts Options) ([]string, error) {
	records, err := CandidateRecords(fsys, opts)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return names, nil
}

// CandidateRecords lists the root of fsys without recursing and keeps the
// regular files that are not excluded, in directory-listing order.
//
// Symlinks are followed: a link to a regular file is a candidate, a link to a
// directory is not.
func CandidateRecords(fsys fs.FS, opts Options) ([]Record, error) {
	suffixes := normalizeSuffixes(opts.ExcludeSuffixes)
	names := make(map[string]bool, len(opts.ExcludeNames))
	for _, n := range opts.ExcludeNames {
		names[n] = true
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var matches []Record
	for _, d := range entries {
		name := d.Name()
		if names[name] || hasSuffix(name, suffixes) {
			continue
		}

		info, err := entryInfo(fsys, d)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// dangling symlink or removed since listing
				continue
			}
			return nil, err
		}
		if !info.Mode().IsRegular() {
			continue
		}

		matches = append(matches, Record{
			Name:          name,
			FileSizeBytes: info.Size(),
			ModTime:       info.ModTime(),
		})
	}

	return matches, nil
}

func entryInfo(fsys fs.FS, d fs.DirEntry) (fs.FileInfo, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		return fs.Stat(fsys, d.Name())
	}
	return d.Info()
}

func normalizeSuffixes(suffixes []string) []string {
	out := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		s = strings.TrimSpace(strings.ToLower(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func hasSuffix(name string, suffixes []string) bool {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}
