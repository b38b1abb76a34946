package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/caioevan/fincontrol/internal/domain"
	"github.com/caioevan/fincontrol/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Document  string          `json:"document"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Document:  a.Document,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// BalanceResponse represents an account balance in API responses.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:        e.ID,
		AccountID: e.AccountID,
		Kind:      string(e.Kind),
		Amount:    e.Amount,
		Date:      e.Date.Format(DateLayout),
		Category:  string(e.Category),
		CreatedAt: e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// BatchItemResponse represents the outcome of one entry in a batch request.
type BatchItemResponse struct {
	Entry *EntryResponse `json:"entry,omitempty"`
	Error string         `json:"error,omitempty"`
}

// BatchResponse represents the outcome of a batch entry request.
type BatchResponse struct {
	Results []BatchItemResponse `json:"results"`
}

// BatchFromResults converts per-item batch outcomes to a response.
func BatchFromResults(results []usecase.AddEntryResult) *BatchResponse {
	out := &BatchResponse{Results: make([]BatchItemResponse, len(results))}
	for i, r := range results {
		if r.Err != nil {
			out.Results[i].Error = r.Err.Error()
			continue
		}
		out.Results[i].Entry = EntryFromDomain(r.Entry)
	}
	return out
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
