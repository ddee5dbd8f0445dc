package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var reFraction = regexp.MustCompile(`^\s*([+-]?\d+)\s*/\s*([+-]?\d+)\s*$`)

// Aperture formats an F-number as "f/<value>".
//
// A fraction "num/den" is divided out; whole quotients keep one decimal
// ("4/1" gives "f/4.0"). Anything else, including a zero denominator, is
// used verbatim.
func Aperture(fnumber string) string {
	m := reFraction.FindStringSubmatch(fnumber)
	if m == nil {
		return "f/" + fnumber
	}

	num, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return "f/" + fnumber
	}
	den, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil || den == 0 {
		return "f/" + fnumber
	}

	return "f/" + formatQuotient(float64(num)/float64(den))
}

// formatQuotient renders the shortest decimal that round-trips, switching to
// exponent notation outside [1e-4, 1e16).
func formatQuotient(q float64) string {
	if q == 0 {
		return "0.0"
	}

	a := math.Abs(q)
	if a < 1e-4 || a >= 1e16 {
		return strconv.FormatFloat(q, 'e', -1, 64)
	}

	s := strconv.FormatFloat(q, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
