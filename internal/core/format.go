package core

import "strconv"

// FormatCompact renders large magnitudes with a T/B/M suffix and two decimals.
// Values below one million are printed as-is.
func FormatCompact(v float64) string {
	switch {
	case v >= 1e12:
		return strconv.FormatFloat(v/1e12, 'f', 2, 64) + "T"
	case v >= 1e9:
		return strconv.FormatFloat(v/1e9, 'f', 2, 64) + "B"
	case v >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 2, 64) + "M"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
