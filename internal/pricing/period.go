package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// RentalPeriod is the calendar range a quote covers.
type RentalPeriod struct {
	StartDate time.Time
	EndDate   time.Time
}

// ParsePeriod parses yyyy-mm-dd dates (RFC 3339 timestamps are accepted too)
// and validates the range.
func ParsePeriod(startDate, endDate string) (RentalPeriod, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return RentalPeriod{}, fmt.Errorf("%w: start date: %v", ErrInvalidDateRange, err)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return RentalPeriod{}, fmt.Errorf("%w: end date: %v", ErrInvalidDateRange, err)
	}

	period := RentalPeriod{StartDate: start, EndDate: end}
	if err := period.Validate(); err != nil {
		return RentalPeriod{}, err
	}
	return period, nil
}

// ParseDate converts a yyyy-mm-dd string (or an RFC 3339 timestamp) into a time.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("date is required")
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q, expected yyyy-mm-dd", value)
	}
	return t, nil
}

// Validate rejects missing dates and an end date before the start date.
func (p RentalPeriod) Validate() error {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidDateRange)
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidDateRange, p.EndDate.Format(DateLayout), p.StartDate.Format(DateLayout))
	}
	return nil
}

// DurationDays is the number of billable days. Partial days round up and a
// same-day rental bills as one day.
// The count is taken on Unix seconds rather than time.Duration, which
// saturates after about 292 years.
func (p RentalPeriod) DurationDays() int32 {
	secs := p.EndDate.Unix() - p.StartDate.Unix()
	if p.EndDate.Nanosecond() > p.StartDate.Nanosecond() {
		secs++
	}
	days := (secs + secondsPerDay - 1) / secondsPerDay
	if days < 1 {
		return 1
	}
	return int32(days)
}
