package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parishbooks/ledger/internal/domain"
	"github.com/parishbooks/ledger/internal/usecase"
)

// HeaderRequest carries the shared header fields of a batch.
type HeaderRequest struct {
	TransactionDate string `json:"transaction_date"` // YYYY-MM-DD
	Description     string `json:"description"`
	Status          string `json:"status,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *HeaderRequest) ToUseCaseInput() (usecase.HeaderInput, error) {
	date, err := time.Parse(time.DateOnly, r.TransactionDate)
	if err != nil {
		return usecase.HeaderInput{}, fmt.Errorf("%w: %q", domain.ErrMissingTransactionDay, r.TransactionDate)
	}

	if err := domain.ValidateDescription(r.Description); err != nil {
		return usecase.HeaderInput{}, err
	}

	return usecase.HeaderInput{
		TransactionDate: date,
		Description:     r.Description,
		Status:          domain.HeaderStatus(r.Status),
	}, nil
}

// LineRequest represents one logical line of a batch.
type LineRequest struct {
	Type              string          `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description,omitempty"`
	FundID            string          `json:"fund_id"`
	CategoryID        string          `json:"category_id"`
	SourceID          string          `json:"source_id"`
	SourceAccountID   string          `json:"source_account_id"`
	CategoryAccountID string          `json:"category_account_id"`
	AccountRefID      *string         `json:"account_ref_id,omitempty"`
	BatchID           *string         `json:"batch_id,omitempty"`
	MemberID          *string         `json:"member_id,omitempty"`
}

// ToUseCaseInput validates the line and converts it to use case input.
func (r *LineRequest) ToUseCaseInput() (usecase.LineInput, error) {
	entryType := domain.EntryType(r.Type)
	if !entryType.Valid() {
		return usecase.LineInput{}, fmt.Errorf("%w: %q", domain.ErrInvalidEntryType, r.Type)
	}

	if err := domain.ValidateAmount(r.Amount); err != nil {
		return usecase.LineInput{}, err
	}

	if strings.TrimSpace(r.SourceAccountID) == "" || strings.TrimSpace(r.CategoryAccountID) == "" {
		return usecase.LineInput{}, domain.ErrMissingLedgerAccount
	}

	if err := domain.ValidateDescription(r.Description); err != nil {
		return usecase.LineInput{}, err
	}

	return usecase.LineInput{
		Type:              entryType,
		Amount:            r.Amount,
		Description:       r.Description,
		FundID:            r.FundID,
		CategoryID:        r.CategoryID,
		SourceID:          r.SourceID,
		SourceAccountID:   r.SourceAccountID,
		CategoryAccountID: r.CategoryAccountID,
		AccountRefID:      r.AccountRefID,
		BatchID:           r.BatchID,
		MemberID:          r.MemberID,
	}, nil
}

// CreateBatchRequest represents a request to save a new batch.
type CreateBatchRequest struct {
	Header HeaderRequest `json:"header"`
	Lines  []LineRequest `json:"lines"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBatchRequest) ToUseCaseInput() (usecase.CreateBatchInput, error) {
	header, err := r.Header.ToUseCaseInput()
	if err != nil {
		return usecase.CreateBatchInput{}, err
	}

	lines := make([]usecase.LineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i], err = l.ToUseCaseInput()
		if err != nil {
			return usecase.CreateBatchInput{}, fmt.Errorf("line %d: %w", i, err)
		}
	}

	return usecase.CreateBatchInput{Header: header, Lines: lines}, nil
}

// UpdateLineRequest is a LineRequest addressing an already persisted entry.
type UpdateLineRequest struct {
	ID string `json:"id"`
	LineRequest
}

// UpdateBatchRequest represents a request to reconcile an edited batch. The
// client supplies explicit change sets; unchanged lines are simply omitted.
type UpdateBatchRequest struct {
	Header HeaderRequest       `json:"header"`
	Create []LineRequest       `json:"create,omitempty"`
	Update []UpdateLineRequest `json:"update,omitempty"`
	Delete []string            `json:"delete,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateBatchRequest) ToUseCaseInput() (usecase.UpdateBatchInput, error) {
	header, err := r.Header.ToUseCaseInput()
	if err != nil {
		return usecase.UpdateBatchInput{}, err
	}

	create := make([]usecase.LineInput, len(r.Create))
	for i, l := range r.Create {
		create[i], err = l.ToUseCaseInput()
		if err != nil {
			return usecase.UpdateBatchInput{}, fmt.Errorf("create line %d: %w", i, err)
		}
	}

	update := make([]usecase.UpdateLineInput, len(r.Update))
	for i, l := range r.Update {
		if l.ID == "" {
			return usecase.UpdateBatchInput{}, fmt.Errorf("update line %d: missing id", i)
		}

		line, err := l.ToUseCaseInput()
		if err != nil {
			return usecase.UpdateBatchInput{}, fmt.Errorf("update line %d: %w", i, err)
		}

		update[i] = usecase.UpdateLineInput{ID: l.ID, LineInput: line}
	}

	return usecase.UpdateBatchInput{
		Header: header,
		Create: create,
		Update: update,
		Delete: r.Delete,
	}, nil
}

// SaveEntryRequest represents a request to create or update a single entry
// outside a full batch edit.
type SaveEntryRequest struct {
	Header HeaderRequest `json:"header"`
	Line   LineRequest   `json:"line"`
}

// ToUseCaseInput converts to use case input.
func (r *SaveEntryRequest) ToUseCaseInput() (usecase.HeaderInput, usecase.LineInput, error) {
	header, err := r.Header.ToUseCaseInput()
	if err != nil {
		return usecase.HeaderInput{}, usecase.LineInput{}, err
	}

	line, err := r.Line.ToUseCaseInput()
	if err != nil {
		return usecase.HeaderInput{}, usecase.LineInput{}, err
	}

	return header, line, nil
}
