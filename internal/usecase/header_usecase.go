package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/parishbooks/ledger/internal/domain"
)

// HeaderUseCase handles read access to batches and their ledger rows.
type HeaderUseCase struct {
	headerRepo  HeaderRepository
	entryRepo   EntryRepository
	postingRepo PostingRepository
	cache       Cache
	logger      *slog.Logger
}

// NewHeaderUseCase creates a new HeaderUseCase. cache is optional.
func NewHeaderUseCase(headerRepo HeaderRepository, entryRepo EntryRepository, postingRepo PostingRepository, cache Cache, logger *slog.Logger) *HeaderUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &HeaderUseCase{
		headerRepo:  headerRepo,
		entryRepo:   entryRepo,
		postingRepo: postingRepo,
		cache:       cache,
		logger:      logger,
	}
}

// BatchDetail is a header together with its logical entries.
type BatchDetail struct {
	Header  *domain.Header
	Entries []*domain.Entry
}

// GetBatch retrieves a header and its entries.
func (uc *HeaderUseCase) GetBatch(ctx context.Context, headerID string) (*BatchDetail, error) {
	header, err := uc.headerRepo.GetByID(ctx, headerID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.ListByHeader(ctx, headerID)
	if err != nil {
		return nil, err
	}

	return &BatchDetail{Header: header, Entries: entries}, nil
}

// ListHeaders lists headers, newest first.
func (uc *HeaderUseCase) ListHeaders(ctx context.Context, limit, offset int) ([]*domain.Header, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.headerRepo.List(ctx, limit, offset)
}

// ListPostings lists the ledger postings belonging to a header.
func (uc *HeaderUseCase) ListPostings(ctx context.Context, headerID string) ([]*domain.Posting, error) {
	if _, err := uc.headerRepo.GetByID(ctx, headerID); err != nil {
		return nil, err
	}

	return uc.postingRepo.ListByHeader(ctx, headerID)
}

// RecentPostingsBySource returns the most recent postings for a giving
// source. Results are cached briefly since dashboards poll this query.
func (uc *HeaderUseCase) RecentPostingsBySource(ctx context.Context, sourceID string, limit int) ([]*domain.Posting, error) {
	if limit <= 0 {
		limit = DefaultRecentPostings
	}

	cacheKey := "recent-postings:" + sourceID

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, cacheKey); err == nil {
			var postings []*domain.Posting
			if err := json.Unmarshal(data, &postings); err == nil {
				return postings, nil
			}
		}
	}

	postings, err := uc.postingRepo.ListRecentBySource(ctx, sourceID, limit)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(postings); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, data, RecentPostingsCacheTTL); err != nil {
				uc.logger.WarnContext(ctx, "recent postings cache write failed", "source_id", sourceID, "error", err)
			}
		}
	}

	return postings, nil
}
