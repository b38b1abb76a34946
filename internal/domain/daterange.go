package domain

import (
	"fmt"
	"time"
)

// DateRange is a canonical inclusive [Start, End] pair of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the range, bounds included.
func (r DateRange) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// CustomRangeBounds carries the six fields of a caller-supplied custom range.
type CustomRangeBounds struct {
	DayFrom   int
	MonthFrom int
	YearFrom  int
	DayTo     int
	MonthTo   int
	YearTo    int
}

// DateRangeResolver turns month, year, or six-bound custom inputs into a
// canonical inclusive date range. "Current year" is read from the injected
// clock, so tests pin a fixed now instead of relying on the wall clock.
type DateRangeResolver struct {
	now func() time.Time
}

// NewDateRangeResolver creates a resolver backed by the system clock.
func NewDateRangeResolver() *DateRangeResolver {
	return &DateRangeResolver{now: time.Now}
}

// NewDateRangeResolverAt creates a resolver with an explicit clock.
func NewDateRangeResolverAt(now func() time.Time) *DateRangeResolver {
	return &DateRangeResolver{now: now}
}

// Month resolves (month, year) to the full calendar month, first day through
// last day inclusive.
func (r *DateRangeResolver) Month(month, year int) (DateRange, error) {
	if month < 1 || month > 12 {
		return DateRange{}, ErrInvalidMonth
	}
	if year > r.now().Year() {
		return DateRange{}, ErrFutureYear
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(month), lastDayOfMonth(year, month), 0, 0, 0, 0, time.UTC)

	return DateRange{Start: start, End: end}, nil
}

// Year resolves (year) to January 1 through December 31 inclusive.
func (r *DateRangeResolver) Year(year int) (DateRange, error) {
	if year > r.now().Year() {
		return DateRange{}, ErrFutureYear
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	return DateRange{Start: start, End: end}, nil
}

// Custom resolves six explicit bounds. Checks run in a fixed order and stop
// at the first failure, so callers get one specific reason.
func (r *DateRangeResolver) Custom(b CustomRangeBounds) (DateRange, error) {
	if b.MonthFrom < 1 || b.MonthFrom > 12 {
		return DateRange{}, fmt.Errorf("start %w", ErrInvalidMonth)
	}
	if b.MonthTo < 1 || b.MonthTo > 12 {
		return DateRange{}, fmt.Errorf("end %w", ErrInvalidMonth)
	}
	if b.YearFrom == b.YearTo && b.MonthFrom > b.MonthTo {
		return DateRange{}, ErrMonthOrderViolated
	}
	if b.YearFrom > b.YearTo {
		return DateRange{}, ErrYearOrderViolated
	}
	if b.YearTo > r.now().Year() {
		return DateRange{}, ErrFutureYear
	}
	if b.DayFrom < 1 {
		return DateRange{}, ErrInvalidDay
	}

	lastDay := lastDayOfMonth(b.YearTo, b.MonthTo)
	if b.DayTo > lastDay {
		return DateRange{}, fmt.Errorf("%w: day must not exceed %d for %d/%d", ErrDayOutOfRange, lastDay, b.MonthTo, b.YearTo)
	}
	if b.YearFrom == b.YearTo && b.MonthFrom == b.MonthTo && b.DayFrom > b.DayTo {
		return DateRange{}, ErrDayOrderViolated
	}

	start := time.Date(b.YearFrom, time.Month(b.MonthFrom), b.DayFrom, 0, 0, 0, 0, time.UTC)
	end := time.Date(b.YearTo, time.Month(b.MonthTo), b.DayTo, 0, 0, 0, 0, time.UTC)

	return DateRange{Start: start, End: end}, nil
}

// lastDayOfMonth returns the number of days in the given month, leap years
// included.
func lastDayOfMonth(year, month int) int {
	// Day zero of the next month normalizes to the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
