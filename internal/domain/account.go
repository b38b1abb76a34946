package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MinDocumentLength is the minimum number of characters a document must have.
const MinDocumentLength = 11

// Account holds a monetary balance and owns a set of ledger entries.
// Entries are stored independently keyed by AccountID; an account's entry
// list is always a query result, never a field kept in sync by hand.
type Account struct {
	ID        string
	Name      string
	Document  string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDocument checks the document format rule applied at account creation.
func ValidateDocument(document string) error {
	if len(document) < MinDocumentLength {
		return ErrInvalidDocument
	}
	return nil
}
