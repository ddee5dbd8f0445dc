// Package exiftest synthesizes little-endian TIFF and JPEG streams carrying
// EXIF tags, for use in tests.
package exiftest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// Dir selects the IFD a tag is written to.
type Dir int

const (
	IFD0 Dir = iota
	ExifIFD
	IFD1
)

// Tag IDs used by Camera.
const (
	Compression     uint16 = 0x0103
	Make            uint16 = 0x010F
	Model           uint16 = 0x0110
	DateTime        uint16 = 0x0132
	Artist          uint16 = 0x013B
	ExifOffset      uint16 = 0x8769
	ExposureTime    uint16 = 0x829A
	FNumber         uint16 = 0x829D
	ExposureProgram uint16 = 0x8822
	ISOSpeedRatings uint16 = 0x8827
	Flash           uint16 = 0x9209
	FocalLength     uint16 = 0x920A
	ExifImageWidth  uint16 = 0xA002
	ExifImageLength uint16 = 0xA003
	LensModel       uint16 = 0xA434
)

const (
	typeASCII    uint16 = 2
	typeShort    uint16 = 3
	typeLong     uint16 = 4
	typeRational uint16 = 5
)

type entry struct {
	id    uint16
	typ   uint16
	count uint32
	data  []byte
}

// Builder accumulates tags and encodes them as a TIFF structure.
type Builder struct {
	dirs [3][]entry
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Camera returns a Builder carrying every tag of a complete photo summary.
func Camera() *Builder {
	return New().
		ASCII(IFD0, Make, "Canon").
		ASCII(IFD0, Model, "Canon EOS 5D Mark IV").
		ASCII(IFD0, DateTime, "2021:06:05 10:11:12").
		ASCII(IFD0, Artist, "Jane Doe").
		Rational(ExifIFD, ExposureTime, 1, 250).
		Rational(ExifIFD, FNumber, 28, 10).
		Short(ExifIFD, ExposureProgram, 3).
		Short(ExifIFD, ISOSpeedRatings, 200).
		Short(ExifIFD, Flash, 16).
		Rational(ExifIFD, FocalLength, 50, 1).
		Long(ExifIFD, ExifImageWidth, 6000).
		Long(ExifIFD, ExifImageLength, 4000).
		ASCII(ExifIFD, LensModel, "EF50mm f/1.8 STM").
		Short(IFD1, Compression, 6)
}

// ASCII sets a NUL-terminated string tag.
func (b *Builder) ASCII(d Dir, id uint16, s string) *Builder {
	data := append([]byte(s), 0)
	return b.set(d, entry{id: id, typ: typeASCII, count: uint32(len(data)), data: data})
}

// Short sets a SHORT tag with one or more values.
func (b *Builder) Short(d Dir, id uint16, vals ...uint16) *Builder {
	data := make([]byte, 0, 2*len(vals))
	for _, v := range vals {
		data = binary.LittleEndian.AppendUint16(data, v)
	}
	return b.set(d, entry{id: id, typ: typeShort, count: uint32(len(vals)), data: data})
}

// Long sets a single LONG tag.
func (b *Builder) Long(d Dir, id uint16, v uint32) *Builder {
	data := binary.LittleEndian.AppendUint32(nil, v)
	return b.set(d, entry{id: id, typ: typeLong, count: 1, data: data})
}

// Rational sets a single RATIONAL tag.
func (b *Builder) Rational(d Dir, id uint16, num, den uint32) *Builder {
	data := binary.LittleEndian.AppendUint32(nil, num)
	data = binary.LittleEndian.AppendUint32(data, den)
	return b.set(d, entry{id: id, typ: typeRational, count: 1, data: data})
}

// Without removes a tag.
func (b *Builder) Without(d Dir, id uint16) *Builder {
	kept := b.dirs[d][:0]
	for _, e := range b.dirs[d] {
		if e.id != id {
			kept = append(kept, e)
		}
	}
	b.dirs[d] = kept
	return b
}

func (b *Builder) set(d Dir, e entry) *Builder {
	b.Without(d, e.id)
	b.dirs[d] = append(b.dirs[d], e)
	return b
}

// TIFF encodes the tags as a little-endian TIFF stream: IFD0 at offset 8,
// followed by the Exif sub-IFD and IFD1 when they carry tags.
func (b *Builder) TIFF() []byte {
	ifd0 := append([]entry(nil), b.dirs[IFD0]...)
	exif := append([]entry(nil), b.dirs[ExifIFD]...)
	ifd1 := append([]entry(nil), b.dirs[IFD1]...)

	if len(exif) > 0 {
		ifd0 = append(ifd0, entry{id: ExifOffset, typ: typeLong, count: 1, data: make([]byte, 4)})
	}
	for _, entries := range [][]entry{ifd0, exif, ifd1} {
		sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })
	}

	offIFD0 := 8
	offExif := offIFD0 + ifdSize(ifd0)
	offIFD1 := offExif
	if len(exif) > 0 {
		offIFD1 += ifdSize(exif)
	}

	for i := range ifd0 {
		if ifd0[i].id == ExifOffset {
			ifd0[i].data = binary.LittleEndian.AppendUint32(nil, uint32(offExif))
		}
	}

	var next uint32
	if len(ifd1) > 0 {
		next = uint32(offIFD1)
	}

	buf := []byte{'I', 'I', 0x2A, 0x00}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(offIFD0))
	buf = appendIFD(buf, ifd0, next)
	if len(exif) > 0 {
		buf = appendIFD(buf, exif, 0)
	}
	if len(ifd1) > 0 {
		buf = appendIFD(buf, ifd1, 0)
	}
	return buf
}

// JPEG wraps the TIFF stream in an APP1 Exif segment of a minimal JPEG.
func (b *Builder) JPEG() []byte {
	payload := append([]byte("Exif\x00\x00"), b.TIFF()...)

	buf := []byte{0xFF, 0xD8, 0xFF, 0xE1}
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(payload)+2))
	buf = append(buf, payload...)
	return append(buf, 0xFF, 0xD9)
}

// WriteFile writes data to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func ifdSize(entries []entry) int {
	n := 2 + 12*len(entries) + 4
	for _, e := range entries {
		if len(e.data) > 4 {
			n += len(e.data) + len(e.data)%2
		}
	}
	return n
}

// appendIFD appends one IFD and its out-of-line values. Offsets are absolute,
// so the IFD starts at len(buf).
func appendIFD(buf []byte, entries []entry, next uint32) []byte {
	start := len(buf)
	dataOff := start + 2 + 12*len(entries) + 4

	var data []byte
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(entries)))
	for _, e := range entries {
		buf = binary.LittleEndian.AppendUint16(buf, e.id)
		buf = binary.LittleEndian.AppendUint16(buf, e.typ)
		buf = binary.LittleEndian.AppendUint32(buf, e.count)
		if len(e.data) <= 4 {
			inline := make([]byte, 4)
			copy(inline, e.data)
			buf = append(buf, inline...)
			continue
		}
		buf = binary.LittleEndian.AppendUint32(buf, uint32(dataOff+len(data)))
		data = append(data, e.data...)
		if len(e.data)%2 == 1 {
			data = append(data, 0)
		}
	}
	buf = binary.LittleEndian.AppendUint32(buf, next)
	return append(buf, data...)
}
