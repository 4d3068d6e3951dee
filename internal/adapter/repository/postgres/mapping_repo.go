package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parishbooks/ledger/internal/domain"
)

// MappingRepository implements usecase.MappingRepository.
type MappingRepository struct {
	pool *pgxpool.Pool
}

// NewMappingRepository creates a new MappingRepository.
func NewMappingRepository(pool *pgxpool.Pool) *MappingRepository {
	return &MappingRepository{pool: pool}
}

// Create creates a new mapping.
func (r *MappingRepository) Create(ctx context.Context, mapping *domain.Mapping) error {
	query := `
		INSERT INTO mappings (id, entry_id, header_id, debit_posting_id, credit_posting_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		mapping.ID,
		mapping.EntryID,
		mapping.HeaderID,
		mapping.DebitPostingID,
		mapping.CreditPostingID,
		mapping.CreatedAt,
	)

	return err
}

// Delete removes a mapping.
func (r *MappingRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM mappings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrMappingNotFound
	}

	return nil
}

// GetByEntryID retrieves the mapping for an entry.
func (r *MappingRepository) GetByEntryID(ctx context.Context, entryID string) (*domain.Mapping, error) {
	query := `
		SELECT id, entry_id, header_id, debit_posting_id, credit_posting_id, created_at
		FROM mappings
		WHERE entry_id = $1
	`

	var mapping domain.Mapping
	err := r.pool.QueryRow(ctx, query, entryID).Scan(
		&mapping.ID,
		&mapping.EntryID,
		&mapping.HeaderID,
		&mapping.DebitPostingID,
		&mapping.CreditPostingID,
		&mapping.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMappingNotFound
		}

		return nil, err
	}

	return &mapping, nil
}

// GetByHeaderID retrieves all mappings belonging to a header.
func (r *MappingRepository) GetByHeaderID(ctx context.Context, headerID string) ([]*domain.Mapping, error) {
	query := `
		SELECT id, entry_id, header_id, debit_posting_id, credit_posting_id, created_at
		FROM mappings
		WHERE header_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, headerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []*domain.Mapping
	for rows.Next() {
		var mapping domain.Mapping
		err := rows.Scan(
			&mapping.ID,
			&mapping.EntryID,
			&mapping.HeaderID,
			&mapping.DebitPostingID,
			&mapping.CreditPostingID,
			&mapping.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		mappings = append(mappings, &mapping)
	}

	return mappings, rows.Err()
}
