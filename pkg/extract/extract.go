// Package extract turns the EXIF tags of one photo into a summary Record.
package extract

import (
	"io"
	"log/slog"
	"os"

	"github.com/quidome/photo-meta-go/pkg/exiftags"
)

// Unknown is the default value of optional fields whose tag is absent.
const Unknown = "unknown"

// Extractor reads photo files into Records.
type Extractor struct {
	// Logger receives the diagnostic emitted for files without tags.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Unknown replaces absent optional tags. If empty, Unknown is used.
	Unknown string
}

// New returns an Extractor logging to logger.
func New(logger *slog.Logger) *Extractor {
	return &Extractor{Logger: logger, Unknown: Unknown}
}

type field struct {
	tag string
	dst *string
}

// Extract reads the file at path and returns its Record, named name.
func (e *Extractor) Extract(path, name string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, &TagReadError{File: name, Err: err}
	}
	defer f.Close()

	return e.ExtractReader(f, name)
}

// ExtractReader is Extract for an already opened stream.
func (e *Extractor) ExtractReader(r io.Reader, name string) (Record, error) {
	tags, err := exiftags.Decode(r)
	if err != nil {
		return Record{}, &TagReadError{File: name, Err: err}
	}
	return e.FromTags(tags, name)
}

// FromTags builds a Record from decoded tags.
func (e *Extractor) FromTags(tags exiftags.TagMap, name string) (Record, error) {
	if len(tags) == 0 {
		e.logger().Warn("no tags processed", "file", name)
	}

	rec := Record{Name: name}
	var fnumber string

	required := []field{
		{tag: exiftags.ThumbnailCompression, dst: &rec.ImageType},
		{tag: exiftags.ExifImageWidth, dst: &rec.Width},
		{tag: exiftags.ExifImageLength, dst: &rec.Height},
		{tag: exiftags.ImageMake, dst: &rec.Brand},
		{tag: exiftags.ImageModel, dst: &rec.Model},
		{tag: exiftags.ImageDateTime, dst: &rec.DateTaken},
		{tag: exiftags.ExifExposureTime, dst: &rec.ShutterSpeed},
		{tag: exiftags.ExifFNumber, dst: &fnumber},
		{tag: exiftags.ExifISOSpeedRatings, dst: &rec.ISO},
		{tag: exiftags.ExifFlash, dst: &rec.Flash},
		{tag: exiftags.ExifExposureProgram, dst: &rec.ExposureProgram},
		{tag: exiftags.ExifFocalLength, dst: &rec.FocalLength},
	}
	for _, f := range required {
		v, ok := tags.Lookup(f.tag)
		if !ok {
			return Record{}, &MissingRequiredTagError{File: name, Tag: f.tag}
		}
		*f.dst = v
	}

	lens, ok := tags.Lookup(exiftags.ExifLensModel)
	rec.Lens = orDefault(lens, ok, e.unknown())
	artist, ok := tags.Lookup(exiftags.ImageArtist)
	rec.Creator = orDefault(artist, ok, e.unknown())

	rec.Aperture = Aperture(fnumber)

	return rec, nil
}

// Extract reads one file with a default Extractor.
func Extract(path, name string) (Record, error) {
	return New(nil).Extract(path, name)
}

func orDefault(v string, ok bool, def string) string {
	if !ok {
		return def
	}
	return v
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e *Extractor) unknown() string {
	if e.Unknown == "" {
		return Unknown
	}
	return e.Unknown
}
