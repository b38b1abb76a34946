package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// fixedNow pins the resolver clock to mid-2025 so future-year checks are
// deterministic.
func fixedNow() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDateRangeResolver_Month(t *testing.T) {
	tests := []struct {
		name          string
		month, year   int
		expectedStart time.Time
		expectedEnd   time.Time
		expectedErr   error
	}{
		{
			name:          "april spans 30 days",
			month:         4,
			year:          2024,
			expectedStart: date(2024, time.April, 1),
			expectedEnd:   date(2024, time.April, 30),
		},
		{
			name:          "february in a leap year",
			month:         2,
			year:          2024,
			expectedStart: date(2024, time.February, 1),
			expectedEnd:   date(2024, time.February, 29),
		},
		{
			name:          "february in a common year",
			month:         2,
			year:          2023,
			expectedStart: date(2023, time.February, 1),
			expectedEnd:   date(2023, time.February, 28),
		},
		{
			name:        "month zero",
			month:       0,
			year:        2024,
			expectedErr: ErrInvalidMonth,
		},
		{
			name:        "month thirteen",
			month:       13,
			year:        2024,
			expectedErr: ErrInvalidMonth,
		},
		{
			name:        "year after the current year",
			month:       1,
			year:        2026,
			expectedErr: ErrFutureYear,
		},
	}

	resolver := NewDateRangeResolverAt(fixedNow)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := resolver.Month(tt.month, tt.year)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !r.Start.Equal(tt.expectedStart) || !r.End.Equal(tt.expectedEnd) {
				t.Fatalf("expected [%s, %s], got [%s, %s]", tt.expectedStart, tt.expectedEnd, r.Start, r.End)
			}
		})
	}
}

func TestDateRangeResolver_Year(t *testing.T) {
	resolver := NewDateRangeResolverAt(fixedNow)

	r, err := resolver.Year(2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Start.Equal(date(2024, time.January, 1)) || !r.End.Equal(date(2024, time.December, 31)) {
		t.Fatalf("expected full 2024, got [%s, %s]", r.Start, r.End)
	}

	// The current year itself is allowed.
	if _, err := resolver.Year(2025); err != nil {
		t.Fatalf("unexpected error for current year: %v", err)
	}

	if _, err := resolver.Year(2026); !errors.Is(err, ErrFutureYear) {
		t.Fatalf("expected ErrFutureYear, got %v", err)
	}
}

func TestDateRangeResolver_Custom(t *testing.T) {
	tests := []struct {
		name          string
		bounds        CustomRangeBounds
		expectedStart time.Time
		expectedEnd   time.Time
		expectedErr   error
	}{
		{
			name:          "multi-year range",
			bounds:        CustomRangeBounds{DayFrom: 1, MonthFrom: 1, YearFrom: 2023, DayTo: 31, MonthTo: 5, YearTo: 2025},
			expectedStart: date(2023, time.January, 1),
			expectedEnd:   date(2025, time.May, 31),
		},
		{
			name:          "single day range",
			bounds:        CustomRangeBounds{DayFrom: 20, MonthFrom: 4, YearFrom: 2024, DayTo: 20, MonthTo: 4, YearTo: 2024},
			expectedStart: date(2024, time.April, 20),
			expectedEnd:   date(2024, time.April, 20),
		},
		{
			name:        "start month out of range",
			bounds:      CustomRangeBounds{DayFrom: 1, MonthFrom: 13, YearFrom: 2024, DayTo: 1, MonthTo: 1, YearTo: 2024},
			expectedErr: ErrInvalidMonth,
		},
		{
			name:        "end month out of range",
			bounds:      CustomRangeBounds{DayFrom: 1, MonthFrom: 1, YearFrom: 2024, DayTo: 1, MonthTo: 0, YearTo: 2024},
			expectedErr: ErrInvalidMonth,
		},
		{
			name:        "months reversed within the same year",
			bounds:      CustomRangeBounds{DayFrom: 1, MonthFrom: 8, YearFrom: 2024, DayTo: 1, MonthTo: 3, YearTo: 2024},
			expectedErr: ErrMonthOrderViolated,
		},
		{
			name:        "years reversed",
			bounds:      CustomRangeBounds{DayFrom: 1, MonthFrom: 1, YearFrom: 2024, DayTo: 1, MonthTo: 1, YearTo: 2023},
			expectedErr: ErrYearOrderViolated,
		},
		{
			name:        "end year in the future",
			bounds:      CustomRangeBounds{DayFrom: 1, MonthFrom: 1, YearFrom: 2024, DayTo: 1, MonthTo: 1, YearTo: 2026},
			expectedErr: ErrFutureYear,
		},
		{
			name:        "start day below one",
			bounds:      CustomRangeBounds{DayFrom: 0, MonthFrom: 1, YearFrom: 2024, DayTo: 1, MonthTo: 2, YearTo: 2024},
			expectedErr: ErrInvalidDay,
		},
		{
			name:        "end day beyond the end month",
			bounds:      CustomRangeBounds{DayFrom: 1, MonthFrom: 1, YearFrom: 2024, DayTo: 31, MonthTo: 4, YearTo: 2024},
			expectedErr: ErrDayOutOfRange,
		},
		{
			name:        "days reversed within the same month",
			bounds:      CustomRangeBounds{DayFrom: 20, MonthFrom: 4, YearFrom: 2024, DayTo: 10, MonthTo: 4, YearTo: 2024},
			expectedErr: ErrDayOrderViolated,
		},
		{
			name: "reversed months in different years are fine",
			bounds: CustomRangeBounds{
				DayFrom: 1, MonthFrom: 11, YearFrom: 2023,
				DayTo: 1, MonthTo: 2, YearTo: 2024,
			},
			expectedStart: date(2023, time.November, 1),
			expectedEnd:   date(2024, time.February, 1),
		},
	}

	resolver := NewDateRangeResolverAt(fixedNow)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := resolver.Custom(tt.bounds)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !r.Start.Equal(tt.expectedStart) || !r.End.Equal(tt.expectedEnd) {
				t.Fatalf("expected [%s, %s], got [%s, %s]", tt.expectedStart, tt.expectedEnd, r.Start, r.End)
			}
		})
	}
}

func TestDateRangeResolver_Custom_MonthErrorsNameTheBound(t *testing.T) {
	resolver := NewDateRangeResolverAt(fixedNow)

	_, err := resolver.Custom(CustomRangeBounds{DayFrom: 1, MonthFrom: 13, YearFrom: 2024, DayTo: 1, MonthTo: 1, YearTo: 2024})
	if err == nil || !strings.Contains(err.Error(), "start") {
		t.Fatalf("expected start-month error, got %v", err)
	}

	_, err = resolver.Custom(CustomRangeBounds{DayFrom: 1, MonthFrom: 1, YearFrom: 2024, DayTo: 1, MonthTo: 13, YearTo: 2024})
	if err == nil || !strings.Contains(err.Error(), "end") {
		t.Fatalf("expected end-month error, got %v", err)
	}
}

func TestDateRangeResolver_Custom_DayOutOfRangeMessage(t *testing.T) {
	resolver := NewDateRangeResolverAt(fixedNow)

	_, err := resolver.Custom(CustomRangeBounds{DayFrom: 1, MonthFrom: 2, YearFrom: 2023, DayTo: 30, MonthTo: 2, YearTo: 2023})
	if !errors.Is(err, ErrDayOutOfRange) {
		t.Fatalf("expected ErrDayOutOfRange, got %v", err)
	}
	if !strings.Contains(err.Error(), "28") || !strings.Contains(err.Error(), "2/2023") {
		t.Fatalf("expected message to name the last valid day and month/year, got %q", err.Error())
	}
}

func TestDateRange_Contains(t *testing.T) {
	r := DateRange{Start: date(2024, time.April, 1), End: date(2024, time.April, 30)}

	if !r.Contains(date(2024, time.April, 1)) || !r.Contains(date(2024, time.April, 30)) {
		t.Fatal("bounds must be inclusive")
	}
	if r.Contains(date(2024, time.March, 31)) || r.Contains(date(2024, time.May, 1)) {
		t.Fatal("dates outside the range must be excluded")
	}
}
