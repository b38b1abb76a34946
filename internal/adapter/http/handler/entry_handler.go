package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caioevan/fincontrol/internal/adapter/http/dto"
	"github.com/caioevan/fincontrol/internal/domain"
	"github.com/caioevan/fincontrol/internal/infrastructure/metrics"
	"github.com/caioevan/fincontrol/internal/usecase"
)

// LedgerService defines the behavior needed by EntryHandler.
type LedgerService interface {
	AddEntry(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error)
	AddEntries(ctx context.Context, inputs []usecase.AddEntryInput) []usecase.AddEntryResult
	DeleteEntry(ctx context.Context, accountID, entryID string) error
	GetEntry(ctx context.Context, accountID, entryID string) (*domain.Entry, error)
	ListEntries(ctx context.Context, accountID string) ([]*domain.Entry, error)
	ListEntriesByMonth(ctx context.Context, accountID string, month, year int) ([]*domain.Entry, error)
	ListEntriesByYear(ctx context.Context, accountID string, year int) ([]*domain.Entry, error)
	ListEntriesByCustomRange(ctx context.Context, accountID string, bounds domain.CustomRangeBounds) ([]*domain.Entry, error)
	ListEntriesByCategory(ctx context.Context, accountID, category string) ([]*domain.Entry, error)
}

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	ledgerUC LedgerService
	metrics  *metrics.Metrics
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(ledgerUC LedgerService, m *metrics.Metrics) *EntryHandler {
	return &EntryHandler{ledgerUC: ledgerUC, metrics: m}
}

// Add records a single entry against an account.
func (h *EntryHandler) Add(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(accountID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry", err.Error())
		return
	}

	entry, err := h.ledgerUC.AddEntry(r.Context(), input)
	if err != nil {
		h.observeAddFailure(err)
		writeError(w, mapDomainError(err), "failed to add entry", err.Error())

		return
	}

	h.observeAdded(entry)
	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// AddBatch records several entries in one request. Entries are applied in
// order and each succeeds or fails on its own.
func (h *EntryHandler) AddBatch(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.AddEntriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.Entries) == 0 {
		writeError(w, http.StatusBadRequest, "empty batch", "")
		return
	}

	inputs, err := req.ToUseCaseInputs(accountID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry", err.Error())
		return
	}

	results := h.ledgerUC.AddEntries(r.Context(), inputs)
	for _, res := range results {
		if res.Err != nil {
			h.observeAddFailure(res.Err)
			continue
		}
		h.observeAdded(res.Entry)
	}

	writeJSON(w, http.StatusMultiStatus, dto.BatchFromResults(results))
}

// Delete removes an entry and reverses its effect on the account balance.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	entryID := chi.URLParam(r, "entryID")
	if accountID == "" || entryID == "" {
		writeError(w, http.StatusBadRequest, "missing account or entry ID", "")
		return
	}

	if err := h.ledgerUC.DeleteEntry(r.Context(), accountID, entryID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete entry", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.EntriesDeleted.Inc()
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves an entry scoped to an account.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	entryID := chi.URLParam(r, "entryID")
	if accountID == "" || entryID == "" {
		writeError(w, http.StatusBadRequest, "missing account or entry ID", "")
		return
	}

	entry, err := h.ledgerUC.GetEntry(r.Context(), accountID, entryID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// List lists all entries of an account.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	entries, err := h.ledgerUC.ListEntries(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// ListByMonth lists entries of an account within a calendar month.
func (h *EntryHandler) ListByMonth(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	month, ok := requireIntQuery(r, "month")
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid 'month' parameter", "")
		return
	}
	year, ok := requireIntQuery(r, "year")
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid 'year' parameter", "")
		return
	}

	entries, err := h.ledgerUC.ListEntriesByMonth(r.Context(), accountID, month, year)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// ListByYear lists entries of an account within a calendar year.
func (h *EntryHandler) ListByYear(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	year, ok := requireIntQuery(r, "year")
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid 'year' parameter", "")
		return
	}

	entries, err := h.ledgerUC.ListEntriesByYear(r.Context(), accountID, year)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// ListByRange lists entries of an account within an arbitrary day range.
func (h *EntryHandler) ListByRange(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var bounds domain.CustomRangeBounds
	params := []struct {
		key  string
		dest *int
	}{
		{"day_from", &bounds.DayFrom},
		{"month_from", &bounds.MonthFrom},
		{"year_from", &bounds.YearFrom},
		{"day_to", &bounds.DayTo},
		{"month_to", &bounds.MonthTo},
		{"year_to", &bounds.YearTo},
	}
	for _, p := range params {
		v, ok := requireIntQuery(r, p.key)
		if !ok {
			writeError(w, http.StatusBadRequest, "missing or invalid '"+p.key+"' parameter", "")
			return
		}
		*p.dest = v
	}

	entries, err := h.ledgerUC.ListEntriesByCustomRange(r.Context(), accountID, bounds)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// ListByCategory lists entries of an account with a given category.
func (h *EntryHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "missing 'category' parameter", "")
		return
	}

	entries, err := h.ledgerUC.ListEntriesByCategory(r.Context(), accountID, category)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

func (h *EntryHandler) observeAdded(entry *domain.Entry) {
	if h.metrics == nil {
		return
	}

	h.metrics.EntriesCreated.WithLabelValues(string(entry.Kind)).Inc()
	amount, _ := entry.Amount.Float64()
	h.metrics.EntryAmount.Observe(amount)
}

func (h *EntryHandler) observeAddFailure(err error) {
	if h.metrics == nil {
		return
	}

	if errors.Is(err, domain.ErrInsufficientBalance) {
		h.metrics.InsufficientBalanceRejections.Inc()
	}
}
