package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType distinguishes the two directions a line can take through the books.
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

// Entry represents one user-intended financial movement within a batch.
// It is the pre-ledger form of a line: on save it expands into exactly two
// postings, one debit and one credit, linked back through a Mapping.
type Entry struct {
	ID                string
	HeaderID          string
	Type              EntryType
	Amount            decimal.Decimal
	Date              time.Time
	Description       string
	FundID            string
	CategoryID        string
	SourceID          string
	SourceAccountID   string
	CategoryAccountID string
	AccountRefID      *string
	BatchID           *string
	MemberID          *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// BuildPostingPair expands the entry into its two balanced postings.
//
// For income the source account is debited and the category account is
// credited; for expense the direction is swapped. The two postings always
// mirror each other, so the pair satisfies sum(debits) == sum(credits) in
// isolation. Posting IDs are left empty; the caller assigns them on persist.
func (e *Entry) BuildPostingPair(h *Header) (Posting, Posting) {
	base := Posting{
		HeaderID:    h.ID,
		Date:        h.TransactionDate,
		Description: h.DescriptionFor(e.Description),
		FundID:      e.FundID,
		CategoryID:  e.CategoryID,
		SourceID:    e.SourceID,
		BatchID:     e.BatchID,
		MemberID:    e.MemberID,
	}

	debit := base
	credit := base

	switch e.Type {
	case EntryTypeExpense:
		debit.AccountID = e.CategoryAccountID
		credit.AccountID = e.SourceAccountID
	default: // income
		debit.AccountID = e.SourceAccountID
		credit.AccountID = e.CategoryAccountID
	}

	debit.Debit = e.Amount
	debit.Credit = decimal.Zero
	credit.Debit = decimal.Zero
	credit.Credit = e.Amount

	return debit, credit
}
