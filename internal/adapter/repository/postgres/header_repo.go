package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parishbooks/ledger/internal/domain"
)

// HeaderRepository implements usecase.HeaderRepository.
type HeaderRepository struct {
	pool *pgxpool.Pool
}

// NewHeaderRepository creates a new HeaderRepository.
func NewHeaderRepository(pool *pgxpool.Pool) *HeaderRepository {
	return &HeaderRepository{pool: pool}
}

// Create creates a new header.
func (r *HeaderRepository) Create(ctx context.Context, header *domain.Header) error {
	query := `
		INSERT INTO headers (id, transaction_date, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		header.ID,
		header.TransactionDate,
		header.Description,
		string(header.Status),
		header.CreatedAt,
		header.UpdatedAt,
	)

	return err
}

// Update updates a header's mutable fields.
func (r *HeaderRepository) Update(ctx context.Context, header *domain.Header) error {
	query := `
		UPDATE headers
		SET transaction_date = $2, description = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		header.ID,
		header.TransactionDate,
		header.Description,
		string(header.Status),
		header.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrHeaderNotFound
	}

	return nil
}

// Delete removes a header.
func (r *HeaderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM headers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrHeaderNotFound
	}

	return nil
}

// GetByID retrieves a header by ID.
func (r *HeaderRepository) GetByID(ctx context.Context, id string) (*domain.Header, error) {
	query := `
		SELECT id, transaction_date, description, status, created_at, updated_at
		FROM headers
		WHERE id = $1
	`

	var header domain.Header
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&header.ID,
		&header.TransactionDate,
		&header.Description,
		&header.Status,
		&header.CreatedAt,
		&header.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHeaderNotFound
		}

		return nil, err
	}

	return &header, nil
}

// List lists headers with pagination, newest first.
func (r *HeaderRepository) List(ctx context.Context, limit, offset int) ([]*domain.Header, error) {
	query := `
		SELECT id, transaction_date, description, status, created_at, updated_at
		FROM headers
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var headers []*domain.Header
	for rows.Next() {
		var header domain.Header
		err := rows.Scan(
			&header.ID,
			&header.TransactionDate,
			&header.Description,
			&header.Status,
			&header.CreatedAt,
			&header.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		headers = append(headers, &header)
	}

	return headers, rows.Err()
}
