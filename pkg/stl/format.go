// Package stl writes triangle meshes in the ASCII STL format.
package stl

import (
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultPrecision is the number of mantissa digits after the decimal point
// before trailing zeros are stripped.
const DefaultPrecision = 6

// FormatScientific renders v in normalized scientific notation with
// DefaultPrecision digits, e.g. 150 -> "1.5E2", -0.003 -> "-3E-3".
func FormatScientific(v float64) string {
	return formatScientific(v, DefaultPrecision)
}

func formatScientific(v float64, prec int) string {
	if v == 0 {
		// Covers negative zero as well.
		return "0E0"
	}

	s := strconv.FormatFloat(v, 'E', prec, 64)
	mant, exp, ok := strings.Cut(s, "E")
	if !ok {
		// NaN and Inf have no exponent.
		return s
	}

	if strings.Contains(mant, ".") {
		mant = strings.TrimRight(mant, "0")
		mant = strings.TrimSuffix(mant, ".")
	}

	e, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return mant + "E" + strconv.Itoa(e)
}

// SolidName derives a solid name from an output path: the base name
// without its extension.
func SolidName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "terrain"
	}
	return name
}
