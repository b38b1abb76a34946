package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind is the direction of an entry's effect on the account balance.
type EntryKind string

const (
	KindCredit EntryKind = "credit"
	KindDebit  EntryKind = "debit"
)

// ParseEntryKind canonicalizes a caller-supplied kind. Matching is
// case-insensitive; anything but credit or debit is rejected. Parsing happens
// once at the boundary so nothing downstream compares raw strings.
func ParseEntryKind(s string) (EntryKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(KindCredit):
		return KindCredit, nil
	case string(KindDebit):
		return KindDebit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEntryKind, s)
	}
}

// Entry represents a single dated, categorized credit or debit event
// affecting exactly one account's balance.
type Entry struct {
	ID        string
	AccountID string
	Kind      EntryKind
	Amount    decimal.Decimal
	Date      time.Time // calendar date, no time component
	Category  Category
	CreatedAt time.Time
}

// Day truncates t to a calendar date in UTC. Entry dates are always stored
// this way so inclusive range comparisons never depend on the time of day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
