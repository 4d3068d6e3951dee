package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parishbooks/ledger/internal/adapter/http/dto"
	"github.com/parishbooks/ledger/internal/usecase"
)

// LedgerService is the consistency surface the ledger handler depends on.
type LedgerService interface {
	CheckConsistency(ctx context.Context) (bool, error)
	CheckHeaderBalance(ctx context.Context, headerID string) (*usecase.HeaderBalance, error)
}

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// CheckConsistency checks if total debits equal total credits.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	consistent, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrInconsistentLedger) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"status":     "inconsistent",
				"consistent": false,
				"message":    err.Error(),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "consistent",
		"consistent": consistent,
	})
}

// HeaderBalance reports the balance of one batch's postings.
func (h *LedgerHandler) HeaderBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing batch ID", "")
		return
	}

	balance, err := h.ledgerUC.CheckHeaderBalance(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to check batch balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HeaderBalanceFromDomain(balance))
}
