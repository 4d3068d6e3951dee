package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// CheckConsistency totals every debit and credit across the ledger.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (totalDebits, totalCredits decimal.Decimal, err error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM postings
	`

	var debits, credits pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(debits), numericToDecimal(credits), nil
}

// HeaderTotals totals the debits and credits of one header's postings.
func (r *LedgerRepository) HeaderTotals(ctx context.Context, headerID string) (debits, credits decimal.Decimal, err error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM postings
		WHERE header_id = $1
	`

	var d, c pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, headerID).Scan(&d, &c); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(d), numericToDecimal(c), nil
}
