package normalize

import "strings"

// Fixed-width shapes. 'd' stands for one ASCII digit; every other byte must
// match literally.
const (
	shapeCompactDateTime = "dd-dd-dddddd:dd" // DD-MM-YYYYHH:MM
	shapeISODate         = "dddd-dd-dd"      // YYYY-MM-DD
)

// compactDateLen is the length of the DD-MM-YYYY prefix of a compact
// date-time.
const compactDateLen = len("dd-dd-dddd")

// matchShape reports whether s has exactly the layout described by shape.
func matchShape(s, shape string) bool {
	if len(s) != len(shape) {
		return false
	}
	for i := 0; i < len(shape); i++ {
		if shape[i] == 'd' {
			if !isDigit(s[i]) {
				return false
			}
			continue
		}
		if s[i] != shape[i] {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// allDigits reports whether s is non-empty and made only of ASCII digits.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// IsCompactDateTime reports whether s is a date immediately followed by a
// time with no separator, e.g. "14-03-202110:30".
func IsCompactDateTime(s string) bool { return matchShape(s, shapeCompactDateTime) }

// IsISODate reports whether s looks like YYYY-MM-DD.
func IsISODate(s string) bool { return matchShape(s, shapeISODate) }

// IsDayMonthYear reports whether s looks like D-M-YYYY, where day and month
// have one or two digits and the year exactly four.
func IsDayMonthYear(s string) bool {
	day, month, year, ok := splitDate(s)
	if !ok {
		return false
	}
	return len(day) <= 2 && len(month) <= 2 && len(year) == 4
}

// IsDecimalComma reports whether s is an optionally negative number that
// uses a single comma as decimal separator, e.g. "-3,14".
func IsDecimalComma(s string) bool {
	s = strings.TrimPrefix(s, "-")
	whole, frac, ok := strings.Cut(s, ",")
	if !ok {
		return false
	}
	return allDigits(whole) && allDigits(frac)
}

// TrimFractionalSeconds removes one trailing "." followed by one or more
// digits, e.g. "10:30.500" becomes "10:30". Anything else is returned as is.
func TrimFractionalSeconds(s string) string {
	dot := strings.LastIndexByte(s, '.')
	if dot < 0 || !allDigits(s[dot+1:]) {
		return s
	}
	return s[:dot]
}

// splitDate splits s into three dash-separated all-digit parts.
func splitDate(s string) (a, b, c string, ok bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return "", "", "", false
	}
	for _, p := range parts {
		if !allDigits(p) {
			return "", "", "", false
		}
	}
	return parts[0], parts[1], parts[2], true
}
