package exiftags

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/quidome/photo-meta-go/pkg/exiftags/exiftest"
)

func TestDecode_CameraTags(t *testing.T) {
	tags, err := Decode(bytes.NewReader(exiftest.Camera().TIFF()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testCases := []struct {
		name string
		want string
	}{
		{name: ThumbnailCompression, want: "JPEG (old-style)"},
		{name: ImageMake, want: "Canon"},
		{name: ImageModel, want: "Canon EOS 5D Mark IV"},
		{name: ImageDateTime, want: "2021:06:05 10:11:12"},
		{name: ImageArtist, want: "Jane Doe"},
		{name: ExifImageWidth, want: "6000"},
		{name: ExifImageLength, want: "4000"},
		{name: ExifExposureTime, want: "1/250"},
		{name: ExifFNumber, want: "14/5"},
		{name: ExifISOSpeedRatings, want: "200"},
		{name: ExifFlash, want: "Flash did not fire, compulsory flash mode"},
		{name: ExifExposureProgram, want: "Aperture Priority"},
		{name: ExifFocalLength, want: "50"},
		{name: ExifLensModel, want: "EF50mm f/1.8 STM"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tags.Lookup(tc.name)
			if !ok {
				t.Fatalf("tag %q not found in %v", tc.name, tags.Names())
			}
			if got != tc.want {
				t.Fatalf("unexpected value\n got: %q\nwant: %q", got, tc.want)
			}
		})
	}
}

func TestDecode_JPEGContainer(t *testing.T) {
	tags, err := Decode(bytes.NewReader(exiftest.Camera().JPEG()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := tags.Lookup(ImageMake); got != "Canon" {
		t.Fatalf("unexpected make: %q", got)
	}
	if got, _ := tags.Lookup(ExifFNumber); got != "14/5" {
		t.Fatalf("unexpected f-number: %q", got)
	}
}

func TestDecode_PointerTagIsNamed(t *testing.T) {
	tags, err := Decode(bytes.NewReader(exiftest.Camera().TIFF()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := tags["Image ExifOffset"]; !ok {
		t.Fatalf("expected Image ExifOffset in %v", tags.Names())
	}
}

func TestDecode_UnknownTagUsesHexName(t *testing.T) {
	b := exiftest.New().Short(exiftest.IFD0, 0xC4A5, 7)

	tags, err := Decode(bytes.NewReader(b.TIFF()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := tags.Lookup("Image Tag 0xC4A5"); !ok || got != "7" {
		t.Fatalf("unexpected lookup result %q, %v in %v", got, ok, tags.Names())
	}
}

func TestDecode_MultiValuedTag(t *testing.T) {
	b := exiftest.New().Short(exiftest.ExifIFD, exiftest.ISOSpeedRatings, 100, 200)

	tags, err := Decode(bytes.NewReader(b.TIFF()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := tags.Lookup(ExifISOSpeedRatings); got != "[100, 200]" {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestDecode_EmptyTIFFHasNoTags(t *testing.T) {
	tags, err := Decode(bytes.NewReader(exiftest.New().TIFF()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("expected no tags, got %v", tags.Names())
	}
}

func TestDecode_NonImageIsErrNotImage(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("just some notes\n"),
		[]byte("ab"),
		{},
	} {
		_, err := Decode(bytes.NewReader(data))
		if err == nil {
			t.Fatalf("expected error for %q", data)
		}
		if !errors.Is(err, ErrNotImage) {
			t.Fatalf("expected ErrNotImage, got %v", err)
		}
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("expected *DecodeError, got %T", err)
		}
	}
}

func TestDecode_DamagedEXIFIsNotErrNotImage(t *testing.T) {
	// Header intact, IFD0 cut off inside its first entry.
	truncated := exiftest.Camera().TIFF()[:20]

	testCases := []struct {
		name string
		data []byte
	}{
		{name: "tiff", data: truncated},
		{name: "jpeg", data: jpegWithPayload(truncated)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tc.data))
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if errors.Is(err, ErrNotImage) {
				t.Fatalf("damaged EXIF must not match ErrNotImage: %v", err)
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) || decodeErr.NoEXIF {
				t.Fatalf("expected *DecodeError for a damaged block, got %#v", err)
			}
		})
	}
}

func TestDecode_JPEGWithoutExifSegmentIsErrNotImage(t *testing.T) {
	// An APP1 segment that carries XMP instead of EXIF.
	data := []byte{0xFF, 0xD8, 0xFF, 0xE1, 0x00, 0x0A}
	data = append(data, "http:/"...)
	data = append(data, 0x00, 0x00, 0xFF, 0xD9)

	_, err := Decode(bytes.NewReader(data))
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
}

func TestDecode_DamagedSubIFDKeepsImageTags(t *testing.T) {
	b := exiftest.New().
		ASCII(exiftest.IFD0, exiftest.Make, "Canon").
		ASCII(exiftest.IFD0, exiftest.Model, "Canon EOS 5D Mark IV").
		Long(exiftest.IFD0, exiftest.ExifOffset, 0x10000)

	tags, err := Decode(bytes.NewReader(b.TIFF()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := tags.Lookup(ImageMake); got != "Canon" {
		t.Fatalf("unexpected make: %q", got)
	}
	if got, _ := tags.Lookup(ImageModel); got != "Canon EOS 5D Mark IV" {
		t.Fatalf("unexpected model: %q", got)
	}
	for _, name := range tags.Names() {
		if strings.HasPrefix(name, "EXIF ") {
			t.Fatalf("expected no EXIF tags, got %v", tags.Names())
		}
	}
}

func TestSniffer_MarkerAcrossWrites(t *testing.T) {
	s := &sniffer{}
	for _, chunk := range []string{"\xFF\xD8\xFF\xE1\x00\x10Ex", "if\x00", "\x00II"} {
		if _, err := s.Write([]byte(chunk)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if !s.sawEXIF() {
		t.Fatalf("expected marker split across writes to be found")
	}

	s = &sniffer{}
	if _, err := s.Write([]byte("just some notes\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.sawEXIF() {
		t.Fatalf("expected plain text to carry no EXIF")
	}
}

func TestLookup_BlankValueIsAbsent(t *testing.T) {
	b := exiftest.New().ASCII(exiftest.IFD0, exiftest.Artist, "    ")

	tags, err := Decode(bytes.NewReader(b.TIFF()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := tags[ImageArtist]; !ok {
		t.Fatalf("expected tag to be decoded")
	}
	if _, ok := tags.Lookup(ImageArtist); ok {
		t.Fatalf("expected blank artist to be reported absent")
	}
}

func TestRatio(t *testing.T) {
	testCases := []struct {
		num, den int64
		want     string
	}{
		{num: 28, den: 10, want: "14/5"},
		{num: 50, den: 1, want: "50"},
		{num: 4, den: 1, want: "4"},
		{num: 1, den: 250, want: "1/250"},
		{num: 0, den: 1, want: "0"},
		{num: 3, den: 0, want: "3/0"},
		{num: 1, den: -3, want: "-1/3"},
		{num: -10, den: 4, want: "-5/2"},
	}

	for _, tc := range testCases {
		if got := Ratio(tc.num, tc.den); got != tc.want {
			t.Fatalf("Ratio(%d, %d)\n got: %q\nwant: %q", tc.num, tc.den, got, tc.want)
		}
	}
}

func TestUndefined(t *testing.T) {
	if got := undefined([]byte("0230")); got != "0230" {
		t.Fatalf("unexpected printable rendering: %q", got)
	}
	if got := undefined([]byte{1, 2, 3, 0}); got != "[1, 2, 3, 0]" {
		t.Fatalf("unexpected byte rendering: %q", got)
	}
}

func jpegWithPayload(tiff []byte) []byte {
	payload := append([]byte("Exif\x00\x00"), tiff...)

	buf := []byte{0xFF, 0xD8, 0xFF, 0xE1}
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(payload)+2))
	buf = append(buf, payload...)
	return append(buf, 0xFF, 0xD9)
}
