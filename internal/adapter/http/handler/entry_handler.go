package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parishbooks/ledger/internal/adapter/http/dto"
	"github.com/parishbooks/ledger/internal/domain"
	"github.com/parishbooks/ledger/internal/usecase"
)

// EntryService is the engine surface the entry handler depends on.
type EntryService interface {
	CreateEntry(ctx context.Context, header usecase.HeaderInput, line usecase.LineInput) (*domain.Entry, error)
	UpdateEntry(ctx context.Context, entryID string, header usecase.HeaderInput, line usecase.LineInput) error
	DeleteEntry(ctx context.Context, entryID string) error
}

// EntryHandler handles single-entry HTTP requests, for edits made outside a
// full batch save.
type EntryHandler struct {
	batchUC EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(batchUC EntryService) *EntryHandler {
	return &EntryHandler{batchUC: batchUC}
}

// Create creates a single-line batch.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	header, line, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry", err.Error())
		return
	}

	entry, err := h.batchUC.CreateEntry(r.Context(), header, line)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Update rewrites a mapped entry and its postings in place.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	header, line, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry", err.Error())
		return
	}

	if err := h.batchUC.UpdateEntry(r.Context(), id, header, line); err != nil {
		writeError(w, mapDomainError(err), "failed to update entry", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes an entry together with its postings and owning header.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	if err := h.batchUC.DeleteEntry(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete entry", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
