package exiftags

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Tag names used by the photo summary.
const (
	ThumbnailCompression = "Thumbnail Compression"
	ImageMake            = "Image Make"
	ImageModel           = "Image Model"
	ImageDateTime        = "Image DateTime"
	ImageArtist          = "Image Artist"
	ExifImageWidth       = "EXIF ExifImageWidth"
	ExifImageLength      = "EXIF ExifImageLength"
	ExifExposureTime     = "EXIF ExposureTime"
	ExifFNumber          = "EXIF FNumber"
	ExifISOSpeedRatings  = "EXIF ISOSpeedRatings"
	ExifFlash            = "EXIF Flash"
	ExifExposureProgram  = "EXIF ExposureProgram"
	ExifFocalLength      = "EXIF FocalLength"
	ExifLensModel        = "EXIF LensModel"
)

// ErrNotImage reports a stream that carries no decodable EXIF or TIFF structure.
var ErrNotImage = errors.New("no EXIF data")

// DecodeError wraps a failure of the underlying EXIF decoder.
type DecodeError struct {
	Err error

	// NoEXIF is set when the stream holds neither a TIFF header nor an APP1
	// Exif marker. Otherwise the EXIF block was found but is damaged.
	NoEXIF bool
}

func (e *DecodeError) Error() string {
	if e.NoEXIF {
		return fmt.Sprintf("%v: %v", ErrNotImage, e.Err)
	}
	return fmt.Sprintf("damaged EXIF data: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is matches ErrNotImage only for streams without any EXIF structure.
func (e *DecodeError) Is(target error) bool { return e.NoEXIF && target == ErrNotImage }

// Tag is one decoded tag value.
type Tag struct {
	ID   uint16
	Name string
	text string
}

// String returns the printable value of the tag.
func (t Tag) String() string { return t.text }

// TagMap maps prefixed tag names to their values.
type TagMap map[string]Tag

// Lookup returns the printable value of name. Tags that render to an empty
// string are reported as absent.
func (m TagMap) Lookup(name string) (string, bool) {
	t, ok := m[name]
	if !ok || t.text == "" {
		return "", false
	}
	return t.text, true
}

// Decode reads the EXIF block from r.
//
// A stream whose header decodes but whose sub-IFDs are damaged yields the
// tags that could be read and a nil error.
func Decode(r io.Reader) (TagMap, error) {
	sniff := &sniffer{}
	x, err := exif.Decode(io.TeeReader(r, sniff))
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return nil, &DecodeError{Err: err, NoEXIF: !sniff.sawEXIF()}
	}
	if x.Tiff == nil || len(x.Tiff.Dirs) == 0 {
		return TagMap{}, nil
	}

	tags := make(TagMap)
	ifd0 := x.Tiff.Dirs[0]
	load(tags, groupImage, ifd0)

	for _, sub := range []struct {
		pointer uint16
		group   group
	}{
		{pointer: tagExifOffset, group: groupExif},
		{pointer: tagGPSInfo, group: groupGPS},
	} {
		d, ok := subDir(x, ifd0, sub.pointer)
		if !ok {
			continue
		}
		load(tags, sub.group, d)

		if sub.group == groupExif {
			if interop, ok := subDir(x, d, tagInteropOffset); ok {
				load(tags, groupInterop, interop)
			}
		}
	}

	if len(x.Tiff.Dirs) > 1 {
		load(tags, groupThumbnail, x.Tiff.Dirs[1])
	}

	return tags, nil
}

func load(tags TagMap, g group, d *tiff.Dir) {
	for _, t := range d.Tags {
		if skipped[t.Id] {
			continue
		}
		name := g.prefix() + " " + tagName(g, t.Id)
		tags[name] = Tag{ID: t.Id, Name: name, text: render(g, t)}
	}
}

// subDir decodes the IFD referenced by the pointer tag in parent. Damaged
// sub-IFDs are ignored.
func subDir(x *exif.Exif, parent *tiff.Dir, pointer uint16) (*tiff.Dir, bool) {
	var ptr *tiff.Tag
	for _, t := range parent.Tags {
		if t.Id == pointer {
			ptr = t
			break
		}
	}
	if ptr == nil || len(x.Raw) == 0 {
		return nil, false
	}

	offset, err := ptr.Int64(0)
	if err != nil || offset <= 0 || offset >= int64(len(x.Raw)) {
		return nil, false
	}

	r := bytes.NewReader(x.Raw)
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, false
	}
	d, _, err := tiff.DecodeDir(r, x.Tiff.Order)
	if err != nil {
		return nil, false
	}
	return d, true
}

// Names returns the sorted tag names present in m.
func (m TagMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var exifMarker = []byte("Exif\x00\x00")

// sniffer watches the bytes consumed by the decoder for a TIFF header or an
// APP1 Exif marker.
type sniffer struct {
	head  []byte
	tail  []byte
	found bool
}

func (s *sniffer) Write(p []byte) (int, error) {
	if len(s.head) < 4 {
		n := min(4-len(s.head), len(p))
		s.head = append(s.head, p[:n]...)
	}
	if !s.found {
		buf := append(bytes.Clone(s.tail), p...)
		s.found = bytes.Contains(buf, exifMarker)
		if keep := len(exifMarker) - 1; len(buf) > keep {
			buf = buf[len(buf)-keep:]
		}
		s.tail = bytes.Clone(buf)
	}
	return len(p), nil
}

func (s *sniffer) sawEXIF() bool {
	switch string(s.head) {
	case "II*\x00", "MM\x00*":
		return true
	}
	return s.found
}
