// Package normalize repairs single raw field values from the lab exports into
// the canonical text forms expected by the SQL import: DD-MM-YYYY HH:MM
// date-times and period-decimal numbers.
//
// Every function here is pure and permissive. Only known malformed shapes are
// rewritten; any value that does not match one is returned with the generic
// cleanup applied and is otherwise left alone. Nothing is validated against a
// calendar.
package normalize

import "strings"

// DateTime cleans a raw DD-MM-YYYY HH:MM value.
//
// Steps, in order:
//   - empty or whitespace-only input yields "".
//   - surrounding whitespace is trimmed, then every double quote and newline
//     is removed.
//   - a trailing fractional-seconds suffix (".500") is dropped.
//   - a date glued to its time ("14-03-202110:30") gets a single space
//     inserted between the two.
func DateTime(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = stripQuotes(s)
	s = strings.ReplaceAll(s, "\n", "")
	s = TrimFractionalSeconds(s)
	if IsCompactDateTime(s) {
		s = s[:compactDateLen] + " " + s[compactDateLen:]
	}
	return s
}

// Value cleans a raw measurement value. Quotes and surrounding whitespace are
// removed, and a decimal comma ("12,5") becomes a decimal period ("12.5").
// Codes, thousands separators and anything else are kept verbatim.
func Value(raw string) string {
	if raw == "" {
		return ""
	}
	s := stripQuotes(strings.TrimSpace(raw))
	if IsDecimalComma(s) {
		s = strings.Replace(s, ",", ".", 1)
	}
	return s
}

// HeaderDate canonicalizes a date used as a column header in the wide CMAS
// export. YYYY-MM-DD is reordered to DD-MM-YYYY, D-M-YYYY is zero padded to
// DD-MM-YYYY, and any other text is returned trimmed but unchanged.
func HeaderDate(raw string) string {
	d := strings.TrimSpace(raw)
	switch {
	case IsISODate(d):
		year, month, day, _ := splitDate(d)
		return day + "-" + month + "-" + year
	case IsDayMonthYear(d):
		day, month, year, _ := splitDate(d)
		return pad2(day) + "-" + pad2(month) + "-" + year
	}
	return d
}

func stripQuotes(s string) string {
	if strings.IndexByte(s, '"') < 0 {
		return s
	}
	return strings.ReplaceAll(s, `"`, "")
}

func pad2(s string) string {
	if len(s) >= 2 {
		return s
	}
	return "0" + s
}
