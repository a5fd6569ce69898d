package importer

import (
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial-day epoch: day 0 = 1899-12-31, so day 1 = 1900-01-01.
var serialEpoch = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)

// Layouts tried for calendar strings, in order. Slash-delimited dates are
// day-first ("15/03/2023" = 15 March), matching the import sources.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
}

// NormalizeDate parses a spreadsheet cell into a UTC calendar date.
// Accepted forms: a serial day number (int/float, possibly as a numeric
// string), an ISO-ish date string, or DD/MM/YYYY. Returns nil for anything
// unparseable — a bad date cell must never abort an otherwise-valid row.
func NormalizeDate(cell interface{}) *time.Time {
	switch v := cell.(type) {
	case nil:
		return nil
	case float64:
		return fromSerial(v)
	case float32:
		return fromSerial(float64(v))
	case int:
		return fromSerial(float64(v))
	case int64:
		return fromSerial(float64(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return fromSerial(n)
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
				return &d
			}
		}
		return nil
	default:
		return nil
	}
}

// fromSerial converts a 1900-epoch serial day number. The epoch's phantom
// leap day (serial 60, "1900-02-29") is preserved for compatibility: serial
// 60 clamps to 1900-02-28 and later serials shift back one day so real
// calendar dates round-trip.
func fromSerial(serial float64) *time.Time {
	d := int(serial)
	if d < 1 || d > 2958465 { // beyond 9999-12-31
		return nil
	}
	if d == 60 {
		d = 59
	} else if d > 60 {
		d--
	}
	t := serialEpoch.AddDate(0, 0, d)
	return &t
}

// FormatDate renders a date as YYYY-MM-DD, "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
