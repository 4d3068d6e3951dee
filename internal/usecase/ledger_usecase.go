package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInconsistentLedger is returned when total debits do not equal
	// total credits.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")
)

// LedgerUseCase handles balance checks over persisted postings.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// CheckConsistency verifies the ledger-wide invariant: across all live
// postings, sum(debits) == sum(credits).
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (bool, error) {
	totalDebits, totalCredits, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return false, err
	}

	if !totalDebits.Equal(totalCredits) {
		return false, ErrInconsistentLedger
	}

	return true, nil
}

// HeaderBalance is the per-header balance report.
type HeaderBalance struct {
	HeaderID  string
	Debits    decimal.Decimal
	Credits   decimal.Decimal
	Balanced  bool
	CheckedAt time.Time
}

// CheckHeaderBalance verifies the invariant for one header: the postings
// reachable through its mappings must sum to equal debits and credits.
func (uc *LedgerUseCase) CheckHeaderBalance(ctx context.Context, headerID string) (*HeaderBalance, error) {
	debits, credits, err := uc.ledgerRepo.HeaderTotals(ctx, headerID)
	if err != nil {
		return nil, err
	}

	return &HeaderBalance{
		HeaderID:  headerID,
		Debits:    debits,
		Credits:   credits,
		Balanced:  debits.Equal(credits),
		CheckedAt: time.Now().UTC(),
	}, nil
}
