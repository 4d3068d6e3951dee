package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testHeader() *Header {
	return &Header{
		ID:              "hdr-1",
		TransactionDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Description:     "Sunday",
		Status:          HeaderStatusDraft,
	}
}

func TestEntry_BuildPostingPair_Direction(t *testing.T) {
	tests := []struct {
		name              string
		entryType         EntryType
		wantDebitAccount  string
		wantCreditAccount string
	}{
		{
			name:              "income debits the source account",
			entryType:         EntryTypeIncome,
			wantDebitAccount:  "a1",
			wantCreditAccount: "a2",
		},
		{
			name:              "expense debits the category account",
			entryType:         EntryTypeExpense,
			wantDebitAccount:  "a2",
			wantCreditAccount: "a1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &Entry{
				Type:              tt.entryType,
				Amount:            decimal.NewFromInt(100),
				SourceAccountID:   "a1",
				CategoryAccountID: "a2",
			}

			debit, credit := entry.BuildPostingPair(testHeader())

			if debit.AccountID != tt.wantDebitAccount {
				t.Errorf("debit account = %s, want %s", debit.AccountID, tt.wantDebitAccount)
			}
			if credit.AccountID != tt.wantCreditAccount {
				t.Errorf("credit account = %s, want %s", credit.AccountID, tt.wantCreditAccount)
			}
		})
	}
}

func TestEntry_BuildPostingPair_Balances(t *testing.T) {
	amounts := []string{"0.01", "1", "100", "12345.67", "999999999"}

	for _, amt := range amounts {
		for _, entryType := range []EntryType{EntryTypeIncome, EntryTypeExpense} {
			amount, err := decimal.NewFromString(amt)
			if err != nil {
				t.Fatalf("bad amount %s: %v", amt, err)
			}

			entry := &Entry{
				Type:              entryType,
				Amount:            amount,
				SourceAccountID:   "src",
				CategoryAccountID: "cat",
			}

			debit, credit := entry.BuildPostingPair(testHeader())

			if !debit.Debit.Equal(amount) || !debit.Credit.IsZero() {
				t.Errorf("%s/%s: debit posting = {%s, %s}, want {%s, 0}",
					entryType, amt, debit.Debit, debit.Credit, amt)
			}
			if !credit.Credit.Equal(amount) || !credit.Debit.IsZero() {
				t.Errorf("%s/%s: credit posting = {%s, %s}, want {0, %s}",
					entryType, amt, credit.Debit, credit.Credit, amt)
			}

			debits, credits := SumPostings([]*Posting{&debit, &credit})
			if !debits.Equal(credits) {
				t.Errorf("%s/%s: pair does not balance: debits=%s credits=%s",
					entryType, amt, debits, credits)
			}

			if err := debit.Validate(); err != nil {
				t.Errorf("debit posting invalid: %v", err)
			}
			if err := credit.Validate(); err != nil {
				t.Errorf("credit posting invalid: %v", err)
			}
		}
	}
}

func TestEntry_BuildPostingPair_DescriptionFallback(t *testing.T) {
	tests := []struct {
		name     string
		lineDesc string
		want     string
	}{
		{"blank line description uses header description", "", "Sunday"},
		{"whitespace-only description uses header description", "   \t", "Sunday"},
		{"line description wins when set", "Building fund pledge", "Building fund pledge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &Entry{
				Type:              EntryTypeIncome,
				Amount:            decimal.NewFromInt(50),
				Description:       tt.lineDesc,
				SourceAccountID:   "src",
				CategoryAccountID: "cat",
			}

			debit, credit := entry.BuildPostingPair(testHeader())

			if debit.Description != tt.want {
				t.Errorf("debit description = %q, want %q", debit.Description, tt.want)
			}
			if credit.Description != tt.want {
				t.Errorf("credit description = %q, want %q", credit.Description, tt.want)
			}
		})
	}
}

func TestEntry_BuildPostingPair_CarriesReferences(t *testing.T) {
	batchID := "batch-9"
	memberID := "mem-3"

	entry := &Entry{
		Type:              EntryTypeIncome,
		Amount:            decimal.NewFromInt(25),
		FundID:            "fund-1",
		CategoryID:        "cat-1",
		SourceID:          "src-1",
		SourceAccountID:   "a1",
		CategoryAccountID: "a2",
		BatchID:           &batchID,
		MemberID:          &memberID,
	}

	header := testHeader()
	debit, credit := entry.BuildPostingPair(header)

	for _, p := range []*Posting{&debit, &credit} {
		if p.HeaderID != header.ID {
			t.Errorf("posting header id = %s, want %s", p.HeaderID, header.ID)
		}
		if !p.Date.Equal(header.TransactionDate) {
			t.Errorf("posting date = %v, want %v", p.Date, header.TransactionDate)
		}
		if p.FundID != "fund-1" || p.CategoryID != "cat-1" || p.SourceID != "src-1" {
			t.Errorf("posting lost references: %+v", p)
		}
		if p.BatchID == nil || *p.BatchID != batchID {
			t.Errorf("posting lost batch id")
		}
		if p.MemberID == nil || *p.MemberID != memberID {
			t.Errorf("posting lost member id")
		}
	}
}

func TestSumPostings_MixedBatch(t *testing.T) {
	header := testHeader()

	income := &Entry{Type: EntryTypeIncome, Amount: decimal.NewFromInt(10), SourceAccountID: "a1", CategoryAccountID: "a2"}
	expense := &Entry{Type: EntryTypeExpense, Amount: decimal.NewFromInt(20), SourceAccountID: "a3", CategoryAccountID: "a4"}

	d1, c1 := income.BuildPostingPair(header)
	d2, c2 := expense.BuildPostingPair(header)

	debits, credits := SumPostings([]*Posting{&d1, &c1, &d2, &c2})

	want := decimal.NewFromInt(30)
	if !debits.Equal(want) || !credits.Equal(want) {
		t.Errorf("mixed batch totals = debits %s credits %s, want %s each", debits, credits, want)
	}
}
