package exiftags

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rwcarlsen/goexif/tiff"
)

var errUnsupportedFormat = errors.New("unsupported tag format")

// render converts a raw tag into its printable text.
func render(g group, t *tiff.Tag) string {
	switch t.Format() {
	case tiff.StringVal:
		s, err := t.StringVal()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(strings.TrimRight(s, "\x00"))
	case tiff.UndefVal:
		return undefined(t.Val)
	}

	table := enumsFor(g, t.Id)
	vals := make([]string, 0, int(t.Count))
	for i := 0; i < int(t.Count); i++ {
		v, err := value(t, i, table)
		if err != nil {
			break
		}
		vals = append(vals, v)
	}

	switch len(vals) {
	case 0:
		return ""
	case 1:
		return vals[0]
	default:
		return "[" + strings.Join(vals, ", ") + "]"
	}
}

func value(t *tiff.Tag, i int, table map[int64]string) (string, error) {
	switch t.Format() {
	case tiff.IntVal:
		v, err := t.Int64(i)
		if err != nil {
			return "", err
		}
		if s, ok := table[v]; ok {
			return s, nil
		}
		return strconv.FormatInt(v, 10), nil
	case tiff.RatVal:
		num, den, err := t.Rat2(i)
		if err != nil {
			return "", err
		}
		return Ratio(num, den), nil
	case tiff.FloatVal:
		f, err := t.Float(i)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	default:
		return "", errUnsupportedFormat
	}
}

// Ratio renders a rational as a reduced fraction. Whole values render without
// a denominator and a zero denominator is kept verbatim.
func Ratio(num, den int64) string {
	if den == 0 {
		return fmt.Sprintf("%d/%d", num, den)
	}
	if num == 0 {
		return "0"
	}
	if den < 0 {
		num, den = -num, -den
	}

	g := gcd(abs(num), den)
	num, den = num/g, den/g
	if den == 1 {
		return strconv.FormatInt(num, 10)
	}
	return fmt.Sprintf("%d/%d", num, den)
}

// undefined renders UNDEFINED-typed payloads: printable ASCII as text,
// anything else as a byte list.
func undefined(b []byte) string {
	trimmed := strings.TrimRight(string(b), "\x00")
	printable := trimmed != ""
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] < 0x20 || trimmed[i] > 0x7E {
			printable = false
			break
		}
	}
	if printable {
		return strings.TrimSpace(trimmed)
	}

	vals := make([]string, len(b))
	for i, c := range b {
		vals[i] = strconv.Itoa(int(c))
	}
	switch len(vals) {
	case 0:
		return ""
	case 1:
		return vals[0]
	}
	return "[" + strings.Join(vals, ", ") + "]"
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
