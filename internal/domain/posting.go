package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Posting represents one physical debit-or-credit ledger row. Postings are
// created strictly in pairs and each is owned by exactly one entry; the
// fund/category/source references are copied from the parent entry for
// traceability.
type Posting struct {
	ID          string
	HeaderID    string
	AccountID   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Date        time.Time
	Description string
	FundID      string
	CategoryID  string
	SourceID    string
	BatchID     *string
	MemberID    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the single-posting invariant: exactly one of debit and
// credit is non-zero, and neither side is negative.
func (p *Posting) Validate() error {
	if p.Debit.IsNegative() || p.Credit.IsNegative() {
		return ErrInvalidAmount
	}
	if p.Debit.IsZero() == p.Credit.IsZero() {
		return ErrUnbalancedPosting
	}
	return nil
}

// SumPostings returns the total debits and credits across a set of postings.
func SumPostings(postings []*Posting) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, p := range postings {
		debits = debits.Add(p.Debit)
		credits = credits.Add(p.Credit)
	}
	return debits, credits
}
