package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parishbooks/ledger/internal/domain"
)

// HeaderRepository defines data access for batch headers.
type HeaderRepository interface {
	Create(ctx context.Context, header *domain.Header) error
	Update(ctx context.Context, header *domain.Header) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Header, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Header, error)
}

// EntryRepository defines data access for logical entries.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	Update(ctx context.Context, entry *domain.Entry) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	ListByHeader(ctx context.Context, headerID string) ([]*domain.Entry, error)
}

// PostingRepository defines data access for ledger postings.
type PostingRepository interface {
	Create(ctx context.Context, posting *domain.Posting) error
	Update(ctx context.Context, posting *domain.Posting) error
	Delete(ctx context.Context, id string) error
	ListByHeader(ctx context.Context, headerID string) ([]*domain.Posting, error)
	ListRecentBySource(ctx context.Context, sourceID string, limit int) ([]*domain.Posting, error)
}

// MappingRepository defines data access for entry-to-posting mappings.
type MappingRepository interface {
	Create(ctx context.Context, mapping *domain.Mapping) error
	Delete(ctx context.Context, id string) error
	// GetByEntryID returns domain.ErrMappingNotFound when the entry has no mapping.
	GetByEntryID(ctx context.Context, entryID string) (*domain.Mapping, error)
	GetByHeaderID(ctx context.Context, headerID string) ([]*domain.Mapping, error)
}

// LedgerRepository defines data access for ledger-wide balance checks.
type LedgerRepository interface {
	CheckConsistency(ctx context.Context) (totalDebits, totalCredits decimal.Decimal, err error)
	HeaderTotals(ctx context.Context, headerID string) (debits, credits decimal.Decimal, err error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error)
	DeletePublished(ctx context.Context, before time.Time) error
}

// Retrier retries an operation on transient store errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Recorder counts engine-level events for observability. Implementations live
// in the metrics infrastructure; a no-op is used when none is supplied.
type Recorder interface {
	BatchCreated()
	BatchUpdated()
	BatchDeleted()
	PostingsWritten(n int)
	MappingSkipped()
}
