package feed

import (
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// ParseAccountDate reads DD.MM.YY or DD.MM.YYYY. Two-digit years are
// always taken as 2000s. Anything malformed maps to absent.
func ParseAccountDate(input string) *string {
	s := strings.TrimSpace(input)
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return nil
	}

	day, errD := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	if errD != nil || errM != nil {
		return nil
	}

	var year int
	switch len(parts[2]) {
	case 2:
		yy, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil
		}
		year = 2000 + yy
	case 4:
		yyyy, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil
		}
		year = yyyy
	default:
		return nil
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow; reject rather than silently shift.
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return nil
	}
	out := t.Format(isoDate)
	return &out
}

// ParseEpochDate interprets the input as Unix epoch seconds and converts
// to a UTC calendar date. Fails closed to absent on non-numeric input.
func ParseEpochDate(input string) *string {
	secs, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil || secs <= 0 {
		return nil
	}
	out := time.Unix(secs, 0).UTC().Format(isoDate)
	return &out
}
