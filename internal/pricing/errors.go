package pricing

import "errors"

var (
	// ErrInvalidDateRange covers an end date before the start date and
	// dates that cannot be parsed.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrInvalidInput covers non-positive quantities and negative rates or costs.
	ErrInvalidInput = errors.New("invalid input")
)
