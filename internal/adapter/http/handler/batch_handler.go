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

// BatchService is the engine surface the batch handler depends on.
type BatchService interface {
	CreateBatch(ctx context.Context, input usecase.CreateBatchInput) (*domain.Header, error)
	UpdateBatch(ctx context.Context, headerID string, input usecase.UpdateBatchInput) (*domain.Header, error)
	DeleteBatch(ctx context.Context, headerID string) error
}

// HeaderService is the read surface the batch handler depends on.
type HeaderService interface {
	GetBatch(ctx context.Context, headerID string) (*usecase.BatchDetail, error)
	ListHeaders(ctx context.Context, limit, offset int) ([]*domain.Header, error)
	ListPostings(ctx context.Context, headerID string) ([]*domain.Posting, error)
	RecentPostingsBySource(ctx context.Context, sourceID string, limit int) ([]*domain.Posting, error)
}

// BatchHandler handles batch-related HTTP requests.
type BatchHandler struct {
	batchUC  BatchService
	headerUC HeaderService
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(batchUC BatchService, headerUC HeaderService) *BatchHandler {
	return &BatchHandler{batchUC: batchUC, headerUC: headerUC}
}

// Create saves a new batch with its lines.
func (h *BatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid batch", err.Error())
		return
	}

	header, err := h.batchUC.CreateBatch(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create batch", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.HeaderFromDomain(header))
}

// Update reconciles an edited batch against its persisted state.
func (h *BatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing batch ID", "")
		return
	}

	var req dto.UpdateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid batch", err.Error())
		return
	}

	header, err := h.batchUC.UpdateBatch(r.Context(), id, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update batch", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HeaderFromDomain(header))
}

// Delete removes a batch and everything it owns.
func (h *BatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing batch ID", "")
		return
	}

	if err := h.batchUC.DeleteBatch(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete batch", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a batch with its entries.
func (h *BatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing batch ID", "")
		return
	}

	detail, err := h.headerUC.GetBatch(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get batch", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BatchDetailFromDomain(detail))
}

// List lists batch headers.
func (h *BatchHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	headers, err := h.headerUC.ListHeaders(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list batches", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HeadersFromDomain(headers))
}

// ListPostings lists the ledger postings belonging to a batch.
func (h *BatchHandler) ListPostings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing batch ID", "")
		return
	}

	postings, err := h.headerUC.ListPostings(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list postings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PostingsFromDomain(postings))
}

// RecentBySource lists the most recent postings for a giving source.
func (h *BatchHandler) RecentBySource(w http.ResponseWriter, r *http.Request) {
	sourceID := chi.URLParam(r, "id")
	if sourceID == "" {
		writeError(w, http.StatusBadRequest, "missing source ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", usecase.DefaultRecentPostings)

	postings, err := h.headerUC.RecentPostingsBySource(r.Context(), sourceID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list recent postings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PostingsFromDomain(postings))
}
