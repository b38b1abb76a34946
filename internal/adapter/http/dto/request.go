package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caioevan/fincontrol/internal/usecase"
)

// DateLayout is the wire format for entry dates.
const DateLayout = "2006-01-02"

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	Document       string          `json:"document"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:           r.Name,
		Document:       r.Document,
		InitialBalance: r.InitialBalance,
	}
}

// AddEntryRequest represents a request to record a ledger entry.
type AddEntryRequest struct {
	Kind     string          `json:"kind"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
	Category string          `json:"category"`
}

// ToUseCaseInput converts to use case input. The date must be in YYYY-MM-DD
// form.
func (r *AddEntryRequest) ToUseCaseInput(accountID string) (usecase.AddEntryInput, error) {
	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return usecase.AddEntryInput{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", r.Date)
	}

	return usecase.AddEntryInput{
		AccountID: accountID,
		Kind:      r.Kind,
		Amount:    r.Amount,
		Date:      date,
		Category:  r.Category,
	}, nil
}

// AddEntriesRequest represents a request to record multiple entries at once.
type AddEntriesRequest struct {
	Entries []AddEntryRequest `json:"entries"`
}

// ToUseCaseInputs converts to use case inputs, failing on the first entry
// with an unparsable date.
func (r *AddEntriesRequest) ToUseCaseInputs(accountID string) ([]usecase.AddEntryInput, error) {
	inputs := make([]usecase.AddEntryInput, len(r.Entries))
	for i, e := range r.Entries {
		input, err := e.ToUseCaseInput(accountID)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		inputs[i] = input
	}

	return inputs, nil
}
