// Package mocks also carries hand-written in-memory fakes for tests that
// assert on resulting store state rather than on call sequences.
package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/parishbooks/ledger/internal/domain"
)

// MemoryLedger is an in-memory stand-in for the four persistence stores. The
// accessor methods return views implementing the corresponding repository
// interfaces, all sharing one state and one mutex.
type MemoryLedger struct {
	mu       sync.RWMutex
	Headers  map[string]*domain.Header
	Entries  map[string]*domain.Entry
	Postings map[string]*domain.Posting
	Mappings map[string]*domain.Mapping
}

// NewMemoryLedger creates an empty MemoryLedger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		Headers:  make(map[string]*domain.Header),
		Entries:  make(map[string]*domain.Entry),
		Postings: make(map[string]*domain.Posting),
		Mappings: make(map[string]*domain.Mapping),
	}
}

// HeaderRepo returns a HeaderRepository view.
func (l *MemoryLedger) HeaderRepo() *MemHeaderRepo { return &MemHeaderRepo{l} }

// EntryRepo returns an EntryRepository view.
func (l *MemoryLedger) EntryRepo() *MemEntryRepo { return &MemEntryRepo{l} }

// PostingRepo returns a PostingRepository view.
func (l *MemoryLedger) PostingRepo() *MemPostingRepo { return &MemPostingRepo{l} }

// MappingRepo returns a MappingRepository view.
func (l *MemoryLedger) MappingRepo() *MemMappingRepo { return &MemMappingRepo{l} }

// MappingsForHeader returns the live mappings for a header.
func (l *MemoryLedger) MappingsForHeader(headerID string) []*domain.Mapping {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*domain.Mapping
	for _, m := range l.Mappings {
		if m.HeaderID == headerID {
			out = append(out, m)
		}
	}
	return out
}

// PostingsForHeader returns the live postings for a header.
func (l *MemoryLedger) PostingsForHeader(headerID string) []*domain.Posting {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*domain.Posting
	for _, p := range l.Postings {
		if p.HeaderID == headerID {
			out = append(out, p)
		}
	}
	return out
}

// MemHeaderRepo is the HeaderRepository view of a MemoryLedger.
type MemHeaderRepo struct{ l *MemoryLedger }

func (r *MemHeaderRepo) Create(ctx context.Context, header *domain.Header) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	copied := *header
	r.l.Headers[header.ID] = &copied
	return nil
}

func (r *MemHeaderRepo) Update(ctx context.Context, header *domain.Header) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if _, ok := r.l.Headers[header.ID]; !ok {
		return domain.ErrHeaderNotFound
	}
	copied := *header
	r.l.Headers[header.ID] = &copied
	return nil
}

func (r *MemHeaderRepo) Delete(ctx context.Context, id string) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	delete(r.l.Headers, id)
	return nil
}

func (r *MemHeaderRepo) GetByID(ctx context.Context, id string) (*domain.Header, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	if h, ok := r.l.Headers[id]; ok {
		copied := *h
		return &copied, nil
	}
	return nil, domain.ErrHeaderNotFound
}

func (r *MemHeaderRepo) List(ctx context.Context, limit, offset int) ([]*domain.Header, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	var out []*domain.Header
	for _, h := range r.l.Headers {
		copied := *h
		out = append(out, &copied)
	}
	return out, nil
}

// MemEntryRepo is the EntryRepository view of a MemoryLedger.
type MemEntryRepo struct{ l *MemoryLedger }

func (r *MemEntryRepo) Create(ctx context.Context, entry *domain.Entry) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	copied := *entry
	r.l.Entries[entry.ID] = &copied
	return nil
}

func (r *MemEntryRepo) Update(ctx context.Context, entry *domain.Entry) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if _, ok := r.l.Entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	copied := *entry
	r.l.Entries[entry.ID] = &copied
	return nil
}

func (r *MemEntryRepo) Delete(ctx context.Context, id string) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	delete(r.l.Entries, id)
	return nil
}

func (r *MemEntryRepo) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	if e, ok := r.l.Entries[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (r *MemEntryRepo) ListByHeader(ctx context.Context, headerID string) ([]*domain.Entry, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	var out []*domain.Entry
	for _, e := range r.l.Entries {
		if e.HeaderID == headerID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

// MemPostingRepo is the PostingRepository view of a MemoryLedger.
type MemPostingRepo struct{ l *MemoryLedger }

func (r *MemPostingRepo) Create(ctx context.Context, posting *domain.Posting) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	copied := *posting
	r.l.Postings[posting.ID] = &copied
	return nil
}

func (r *MemPostingRepo) Update(ctx context.Context, posting *domain.Posting) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if _, ok := r.l.Postings[posting.ID]; !ok {
		return domain.ErrPostingNotFound
	}
	copied := *posting
	r.l.Postings[posting.ID] = &copied
	return nil
}

func (r *MemPostingRepo) Delete(ctx context.Context, id string) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if _, ok := r.l.Postings[id]; !ok {
		return domain.ErrPostingNotFound
	}
	delete(r.l.Postings, id)
	return nil
}

func (r *MemPostingRepo) ListByHeader(ctx context.Context, headerID string) ([]*domain.Posting, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	var out []*domain.Posting
	for _, p := range r.l.Postings {
		if p.HeaderID == headerID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *MemPostingRepo) ListRecentBySource(ctx context.Context, sourceID string, limit int) ([]*domain.Posting, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	var out []*domain.Posting
	for _, p := range r.l.Postings {
		if p.SourceID == sourceID {
			copied := *p
			out = append(out, &copied)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// MemMappingRepo is the MappingRepository view of a MemoryLedger.
type MemMappingRepo struct{ l *MemoryLedger }

func (r *MemMappingRepo) Create(ctx context.Context, mapping *domain.Mapping) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	copied := *mapping
	r.l.Mappings[mapping.ID] = &copied
	return nil
}

func (r *MemMappingRepo) Delete(ctx context.Context, id string) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	delete(r.l.Mappings, id)
	return nil
}

func (r *MemMappingRepo) GetByEntryID(ctx context.Context, entryID string) (*domain.Mapping, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	for _, m := range r.l.Mappings {
		if m.EntryID == entryID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, domain.ErrMappingNotFound
}

func (r *MemMappingRepo) GetByHeaderID(ctx context.Context, headerID string) ([]*domain.Mapping, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	var out []*domain.Mapping
	for _, m := range r.l.Mappings {
		if m.HeaderID == headerID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

// SeqIDGenerator generates deterministic ids for tests.
type SeqIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSeqIDGenerator creates a SeqIDGenerator with the given prefix.
func NewSeqIDGenerator(prefix string) *SeqIDGenerator {
	return &SeqIDGenerator{prefix: prefix}
}

// Generate returns the next id in sequence.
func (g *SeqIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
