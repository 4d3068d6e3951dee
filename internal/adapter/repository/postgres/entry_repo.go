package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parishbooks/ledger/internal/domain"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `
	id, header_id, entry_type, amount, entry_date, description,
	fund_id, category_id, source_id, source_account_id, category_account_id,
	account_ref_id, batch_id, member_id, created_at, updated_at
`

// Create creates a new entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.HeaderID,
		string(entry.Type),
		decimalToNumeric(entry.Amount),
		entry.Date,
		entry.Description,
		entry.FundID,
		entry.CategoryID,
		entry.SourceID,
		entry.SourceAccountID,
		entry.CategoryAccountID,
		entry.AccountRefID,
		entry.BatchID,
		entry.MemberID,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	return err
}

// Update rewrites an entry's line fields.
func (r *EntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	query := `
		UPDATE entries
		SET entry_type = $2, amount = $3, entry_date = $4, description = $5,
		    fund_id = $6, category_id = $7, source_id = $8,
		    source_account_id = $9, category_account_id = $10,
		    account_ref_id = $11, batch_id = $12, member_id = $13, updated_at = $14
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		entry.ID,
		string(entry.Type),
		decimalToNumeric(entry.Amount),
		entry.Date,
		entry.Description,
		entry.FundID,
		entry.CategoryID,
		entry.SourceID,
		entry.SourceAccountID,
		entry.CategoryAccountID,
		entry.AccountRefID,
		entry.BatchID,
		entry.MemberID,
		entry.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Delete removes an entry.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// ListByHeader lists the entries belonging to a header.
func (r *EntryRepository) ListByHeader(ctx context.Context, headerID string) ([]*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE header_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, headerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var entry domain.Entry
	var amount pgtype.Numeric

	err := row.Scan(
		&entry.ID,
		&entry.HeaderID,
		&entry.Type,
		&amount,
		&entry.Date,
		&entry.Description,
		&entry.FundID,
		&entry.CategoryID,
		&entry.SourceID,
		&entry.SourceAccountID,
		&entry.CategoryAccountID,
		&entry.AccountRefID,
		&entry.BatchID,
		&entry.MemberID,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Amount = numericToDecimal(amount)

	return &entry, nil
}
