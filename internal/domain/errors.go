package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidDocument   = errors.New("document must have at least 11 characters")
	ErrDuplicateDocument = errors.New("document already registered")

	// Entry errors
	ErrEntryNotFound       = errors.New("entry not found for this account")
	ErrInvalidEntryKind    = errors.New("entry kind must be credit or debit")
	ErrInvalidCategory     = errors.New("unknown category")
	ErrInvalidAmount       = errors.New("amount must not be negative")
	ErrInsufficientBalance = errors.New("insufficient balance for this operation")

	// Date range errors
	ErrInvalidMonth       = errors.New("month must be between 1 and 12")
	ErrFutureYear         = errors.New("year must not exceed the current year")
	ErrMonthOrderViolated = errors.New("start month must not be after end month")
	ErrYearOrderViolated  = errors.New("start year must not be after end year")
	ErrInvalidDay         = errors.New("start day must not be less than 1")
	ErrDayOutOfRange      = errors.New("end day exceeds the last day of the end month")
	ErrDayOrderViolated   = errors.New("start day must not be after end day")
)
