package dto

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parishbooks/ledger/internal/domain"
)

func validLine() LineRequest {
	return LineRequest{
		Type:              "income",
		Amount:            decimal.NewFromInt(150),
		FundID:            "fund-general",
		CategoryID:        "cat-offering",
		SourceID:          "src-plate",
		SourceAccountID:   "acc-undeposited",
		CategoryAccountID: "acc-offering-income",
	}
}

func TestHeaderRequest_ToUseCaseInput(t *testing.T) {
	tests := []struct {
		name        string
		request     HeaderRequest
		expectError error
	}{
		{
			name:    "valid header",
			request: HeaderRequest{TransactionDate: "2024-03-10", Description: "Sunday offering"},
		},
		{
			name:        "missing date",
			request:     HeaderRequest{Description: "no date"},
			expectError: domain.ErrMissingTransactionDay,
		},
		{
			name:        "malformed date",
			request:     HeaderRequest{TransactionDate: "10/03/2024", Description: "wrong format"},
			expectError: domain.ErrMissingTransactionDay,
		},
		{
			name: "description too long",
			request: HeaderRequest{
				TransactionDate: "2024-03-10",
				Description:     strings.Repeat("x", domain.MaxDescriptionLength+1),
			},
			expectError: domain.ErrDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.request.ToUseCaseInput()

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
			if !got.TransactionDate.Equal(want) {
				t.Fatalf("expected date %v, got %v", want, got.TransactionDate)
			}
		})
	}
}

func TestLineRequest_ToUseCaseInput(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*LineRequest)
		expectError error
	}{
		{
			name:   "valid income line",
			mutate: func(r *LineRequest) {},
		},
		{
			name:   "valid expense line",
			mutate: func(r *LineRequest) { r.Type = "expense" },
		},
		{
			name:        "unknown type",
			mutate:      func(r *LineRequest) { r.Type = "transfer" },
			expectError: domain.ErrInvalidEntryType,
		},
		{
			name:        "zero amount",
			mutate:      func(r *LineRequest) { r.Amount = decimal.Zero },
			expectError: domain.ErrInvalidAmount,
		},
		{
			name:        "negative amount",
			mutate:      func(r *LineRequest) { r.Amount = decimal.NewFromInt(-5) },
			expectError: domain.ErrInvalidAmount,
		},
		{
			name:        "missing source account",
			mutate:      func(r *LineRequest) { r.SourceAccountID = " " },
			expectError: domain.ErrMissingLedgerAccount,
		},
		{
			name:        "missing category account",
			mutate:      func(r *LineRequest) { r.CategoryAccountID = "" },
			expectError: domain.ErrMissingLedgerAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validLine()
			tt.mutate(&req)

			got, err := req.ToUseCaseInput()

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Type != domain.EntryType(req.Type) || !got.Amount.Equal(req.Amount) {
				t.Fatalf("ToUseCaseInput() = %+v, want fields from %+v", got, req)
			}
		})
	}
}

func TestUpdateBatchRequest_ToUseCaseInput(t *testing.T) {
	req := &UpdateBatchRequest{
		Header: HeaderRequest{TransactionDate: "2024-03-17", Description: "corrected"},
		Create: []LineRequest{validLine()},
		Update: []UpdateLineRequest{{ID: "ent-1", LineRequest: validLine()}},
		Delete: []string{"ent-2", "ent-3"},
	}

	got, err := req.ToUseCaseInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Create) != 1 || len(got.Update) != 1 || len(got.Delete) != 2 {
		t.Fatalf("unexpected change sets %+v", got)
	}
	if got.Update[0].ID != "ent-1" {
		t.Fatalf("expected update line ID ent-1, got %s", got.Update[0].ID)
	}
}

func TestUpdateBatchRequest_MissingUpdateID(t *testing.T) {
	req := &UpdateBatchRequest{
		Header: HeaderRequest{TransactionDate: "2024-03-17", Description: "x"},
		Update: []UpdateLineRequest{{LineRequest: validLine()}},
	}

	if _, err := req.ToUseCaseInput(); err == nil {
		t.Fatalf("expected error for update line without id")
	}
}

func TestCreateBatchRequest_ReportsFailingLine(t *testing.T) {
	bad := validLine()
	bad.Type = "transfer"

	req := &CreateBatchRequest{
		Header: HeaderRequest{TransactionDate: "2024-03-10", Description: "mixed"},
		Lines:  []LineRequest{validLine(), bad},
	}

	_, err := req.ToUseCaseInput()
	if err == nil {
		t.Fatalf("expected error for invalid line")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("expected error to name the failing line, got %v", err)
	}
}
