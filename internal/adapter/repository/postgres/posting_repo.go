package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/parishbooks/ledger/internal/domain"
)

// PostingRepository implements usecase.PostingRepository.
type PostingRepository struct {
	pool *pgxpool.Pool
}

// NewPostingRepository creates a new PostingRepository.
func NewPostingRepository(pool *pgxpool.Pool) *PostingRepository {
	return &PostingRepository{pool: pool}
}

const postingColumns = `
	id, header_id, account_id, debit, credit, posting_date, description,
	fund_id, category_id, source_id, batch_id, member_id, created_at, updated_at
`

// Create creates a new posting.
func (r *PostingRepository) Create(ctx context.Context, posting *domain.Posting) error {
	if err := posting.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO postings (` + postingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		posting.ID,
		posting.HeaderID,
		posting.AccountID,
		decimalToNumeric(posting.Debit),
		decimalToNumeric(posting.Credit),
		posting.Date,
		posting.Description,
		posting.FundID,
		posting.CategoryID,
		posting.SourceID,
		posting.BatchID,
		posting.MemberID,
		posting.CreatedAt,
		posting.UpdatedAt,
	)

	return err
}

// Update rewrites a posting row, keeping its id.
func (r *PostingRepository) Update(ctx context.Context, posting *domain.Posting) error {
	if err := posting.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE postings
		SET header_id = $2, account_id = $3, debit = $4, credit = $5,
		    posting_date = $6, description = $7, fund_id = $8, category_id = $9,
		    source_id = $10, batch_id = $11, member_id = $12, updated_at = $13
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		posting.ID,
		posting.HeaderID,
		posting.AccountID,
		decimalToNumeric(posting.Debit),
		decimalToNumeric(posting.Credit),
		posting.Date,
		posting.Description,
		posting.FundID,
		posting.CategoryID,
		posting.SourceID,
		posting.BatchID,
		posting.MemberID,
		posting.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPostingNotFound
	}

	return nil
}

// Delete removes a posting.
func (r *PostingRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM postings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPostingNotFound
	}

	return nil
}

// ListByHeader lists the postings belonging to a header.
func (r *PostingRepository) ListByHeader(ctx context.Context, headerID string) ([]*domain.Posting, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM postings
		WHERE header_id = $1
		ORDER BY created_at, id
	`

	return r.queryPostings(ctx, query, headerID)
}

// ListRecentBySource lists the most recent postings for a giving source.
func (r *PostingRepository) ListRecentBySource(ctx context.Context, sourceID string, limit int) ([]*domain.Posting, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM postings
		WHERE source_id = $1
		ORDER BY posting_date DESC, created_at DESC
		LIMIT $2
	`

	return r.queryPostings(ctx, query, sourceID, limit)
}

func (r *PostingRepository) queryPostings(ctx context.Context, query string, args ...any) ([]*domain.Posting, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var postings []*domain.Posting
	for rows.Next() {
		posting, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}

		postings = append(postings, posting)
	}

	return postings, rows.Err()
}

func scanPosting(row pgx.Row) (*domain.Posting, error) {
	var posting domain.Posting
	var debit, credit pgtype.Numeric

	err := row.Scan(
		&posting.ID,
		&posting.HeaderID,
		&posting.AccountID,
		&debit,
		&credit,
		&posting.Date,
		&posting.Description,
		&posting.FundID,
		&posting.CategoryID,
		&posting.SourceID,
		&posting.BatchID,
		&posting.MemberID,
		&posting.CreatedAt,
		&posting.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	posting.Debit = numericToDecimal(debit)
	posting.Credit = numericToDecimal(credit)

	return &posting, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	// decimal.String always yields a form pgtype.Numeric parses.
	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
