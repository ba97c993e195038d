package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// Period is a half-open UTC interval [Start, End) covering one calendar month.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MonthPeriod returns the interval covering the given calendar month.
func MonthPeriod(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, 0)}
}

// CurrentPeriod returns the calendar month containing now, in UTC.
func CurrentPeriod(now time.Time) Period {
	now = now.UTC()
	return MonthPeriod(now.Year(), now.Month())
}

// ParsePeriod resolves year/month query values. When either value is empty the
// month containing now is used; otherwise both must be integers and the month
// must lie in 1..12.
func ParsePeriod(yearValue, monthValue string, now time.Time) (Period, error) {
	yearValue = strings.TrimSpace(yearValue)
	monthValue = strings.TrimSpace(monthValue)

	if yearValue == "" || monthValue == "" {
		return CurrentPeriod(now), nil
	}

	return parseExplicit(yearValue, monthValue)
}

// ParseOptionalPeriod resolves year/month query values for listings that are
// unfiltered by default. It returns nil when either value is empty.
func ParseOptionalPeriod(yearValue, monthValue string) (*Period, error) {
	yearValue = strings.TrimSpace(yearValue)
	monthValue = strings.TrimSpace(monthValue)

	if yearValue == "" || monthValue == "" {
		return nil, nil
	}

	p, err := parseExplicit(yearValue, monthValue)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func parseExplicit(yearValue, monthValue string) (Period, error) {
	year, err := strconv.Atoi(yearValue)
	if err != nil || year < 1 || year > 9999 {
		return Period{}, fmt.Errorf("%w: invalid year %q", ErrValidation, yearValue)
	}

	month, err := strconv.Atoi(monthValue)
	if err != nil || month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: invalid month %q", ErrValidation, monthValue)
	}

	return MonthPeriod(year, time.Month(month)), nil
}

// Contains reports whether t falls in [Start, End).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Key returns the period as YYYY-MM.
func (p Period) Key() string {
	return p.Start.Format("2006-01")
}

// Label returns a human readable month name, e.g. "February 2025".
func (p Period) Label() string {
	return p.Start.Format("January 2006")
}

// DayKey returns the UTC calendar date of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayLayout)
}
