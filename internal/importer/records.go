package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts accepted in cleaned exports and the ISO layouts stored in the
// database.
const (
	dayMonthYear     = "02-01-2006"
	isoDate          = "2006-01-02"
	dayMonthYearTime = "02-01-2006 15:04"
	isoDateTime      = "2006-01-02T15:04"
)

// The CMAS export carries UTF-7 escapes: +AC0- is '-', +AD4- is '>' and is
// stored as a space.
var (
	cmasDate     = strings.NewReplacer("+AC0-", "-")
	cmasCategory = strings.NewReplacer("+AD4-", " ", "+AC0-", "-")
)

// CleanCMASDate undoes the UTF-7 escapes found in CMAS dates.
func CleanCMASDate(s string) string { return cmasDate.Replace(s) }

// CleanCMASCategory undoes the UTF-7 escapes found in CMAS categories.
func CleanCMASCategory(s string) string { return cmasCategory.Replace(s) }

// ParseCMASDate accepts DD-MM-YYYY or YYYY-MM-DD and returns YYYY-MM-DD.
func ParseCMASDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{dayMonthYear, isoDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", s)
}

// ParseMeasurementTime accepts DD-MM-YYYY HH:MM and returns YYYY-MM-DDTHH:MM.
func ParseMeasurementTime(s string) (string, error) {
	t, err := time.Parse(dayMonthYearTime, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("unparseable date-time %q", s)
	}
	return t.Format(isoDateTime), nil
}

// ParseCMASValue parses a CMAS score.
func ParseCMASValue(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not an integer", s)
	}
	return v, nil
}
