package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parishbooks/ledger/internal/domain"
)

// BatchUseCase is the reconciliation engine. It expands each logical line of
// a batch into a balanced debit/credit posting pair, tracks the mapping
// between the line and its two postings, and reconciles batch edits against
// previously persisted postings.
//
// The four stores are independent: there is no cross-store transaction. Every
// operation is best-effort and a failure partway through a multi-line batch
// leaves previously processed lines committed and the rest untouched. Callers
// detect partial application by re-reading the header's mappings. Within one
// line's processing, postings are always written before the mapping that
// references them and deleted before it, so a mapping never points at rows
// that were never written.
type BatchUseCase struct {
	headerRepo  HeaderRepository
	entryRepo   EntryRepository
	postingRepo PostingRepository
	mappingRepo MappingRepository
	auditRepo   AuditRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	logger      *slog.Logger
	recorder    Recorder
}

// BatchUseCaseConfig holds dependencies for BatchUseCase. AuditRepo,
// OutboxRepo, Logger and Recorder are optional.
type BatchUseCaseConfig struct {
	HeaderRepo  HeaderRepository
	EntryRepo   EntryRepository
	PostingRepo PostingRepository
	MappingRepo MappingRepository
	AuditRepo   AuditRepository
	OutboxRepo  OutboxRepository
	IDGen       IDGenerator
	Logger      *slog.Logger
	Recorder    Recorder
}

// NewBatchUseCase creates a new BatchUseCase.
func NewBatchUseCase(cfg BatchUseCaseConfig) *BatchUseCase {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Recorder == nil {
		cfg.Recorder = nopRecorder{}
	}

	return &BatchUseCase{
		headerRepo:  cfg.HeaderRepo,
		entryRepo:   cfg.EntryRepo,
		postingRepo: cfg.PostingRepo,
		mappingRepo: cfg.MappingRepo,
		auditRepo:   cfg.AuditRepo,
		outboxRepo:  cfg.OutboxRepo,
		idGen:       cfg.IDGen,
		logger:      cfg.Logger,
		recorder:    cfg.Recorder,
	}
}

// HeaderInput carries the header fields for create and update operations.
type HeaderInput struct {
	TransactionDate time.Time
	Description     string
	Status          domain.HeaderStatus
}

// LineInput carries one logical line. Validation of amount, type and resolved
// ledger accounts happens upstream of the engine.
type LineInput struct {
	Type              domain.EntryType
	Amount            decimal.Decimal
	Description       string
	FundID            string
	CategoryID        string
	SourceID          string
	SourceAccountID   string
	CategoryAccountID string
	AccountRefID      *string
	BatchID           *string
	MemberID          *string
}

// UpdateLineInput is a LineInput addressing an already-persisted entry.
type UpdateLineInput struct {
	ID string
	LineInput
}

// CreateBatchInput is the input for CreateBatch.
type CreateBatchInput struct {
	Header HeaderInput
	Lines  []LineInput
}

// UpdateBatchInput is the input for UpdateBatch. The caller diffs the edited
// batch against persisted state and supplies the three change sets
// explicitly; unchanged lines are simply not passed and cost zero store
// calls.
type UpdateBatchInput struct {
	Header HeaderInput
	Create []LineInput
	Update []UpdateLineInput
	Delete []string
}

// CreateBatch persists a new header together with its lines, producing two
// balanced postings and one mapping per line.
func (uc *BatchUseCase) CreateBatch(ctx context.Context, input CreateBatchInput) (*domain.Header, error) {
	status, err := domain.ValidateHeaderStatus(input.Header.Status)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	header := &domain.Header{
		ID:              uc.idGen.Generate(),
		TransactionDate: input.Header.TransactionDate,
		Description:     input.Header.Description,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.headerRepo.Create(ctx, header); err != nil {
		return nil, fmt.Errorf("create header: %w", err)
	}

	for i, line := range input.Lines {
		if _, err := uc.createLine(ctx, header, line, now); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
	}

	uc.recorder.BatchCreated()
	uc.audit(ctx, domain.AuditActionBatchCreate, domain.AggregateTypeHeader, header.ID, nil, header)
	uc.outbox(ctx, domain.AggregateTypeHeader, header.ID, domain.EventTypeBatchCreated, domain.BatchCreatedEvent{
		HeaderID:        header.ID,
		TransactionDate: header.TransactionDate.Format(time.DateOnly),
		Description:     header.Description,
		LineCount:       len(input.Lines),
		TotalAmount:     sumLines(input.Lines).String(),
	})

	return header, nil
}

// UpdateBatch reconciles persisted state with the supplied change sets. The
// header's own fields are written first; deletions, in-place updates and
// creations then run line by line, each independently of the others.
func (uc *BatchUseCase) UpdateBatch(ctx context.Context, headerID string, input UpdateBatchInput) (*domain.Header, error) {
	header, err := uc.updateHeader(ctx, headerID, input.Header)
	if err != nil {
		return nil, err
	}

	mappings, err := uc.mappingRepo.GetByHeaderID(ctx, headerID)
	if err != nil {
		return nil, fmt.Errorf("load mappings: %w", err)
	}

	byEntryID := make(map[string]*domain.Mapping, len(mappings))
	for _, m := range mappings {
		byEntryID[m.EntryID] = m
	}

	now := time.Now().UTC()

	for _, entryID := range input.Delete {
		mapping, ok := byEntryID[entryID]
		if !ok {
			uc.skipMissingMapping(ctx, "delete", entryID, headerID)
			continue
		}

		if err := uc.deleteLine(ctx, mapping); err != nil {
			return nil, fmt.Errorf("delete entry %s: %w", entryID, err)
		}
	}

	for _, line := range input.Update {
		mapping, ok := byEntryID[line.ID]
		if !ok {
			uc.skipMissingMapping(ctx, "update", line.ID, headerID)
			continue
		}

		if err := uc.updateLine(ctx, header, mapping, line, now); err != nil {
			return nil, fmt.Errorf("update entry %s: %w", line.ID, err)
		}
	}

	for i, line := range input.Create {
		if _, err := uc.createLine(ctx, header, line, now); err != nil {
			return nil, fmt.Errorf("new line %d: %w", i, err)
		}
	}

	uc.recorder.BatchUpdated()
	uc.audit(ctx, domain.AuditActionBatchUpdate, domain.AggregateTypeHeader, header.ID, nil, header)
	uc.outbox(ctx, domain.AggregateTypeHeader, header.ID, domain.EventTypeBatchUpdated, domain.BatchUpdatedEvent{
		HeaderID:     header.ID,
		CreatedLines: len(input.Create),
		UpdatedLines: len(input.Update),
		DeletedLines: len(input.Delete),
	})

	return header, nil
}

// DeleteBatch removes a header and everything it transitively owns.
func (uc *BatchUseCase) DeleteBatch(ctx context.Context, headerID string) error {
	mappings, err := uc.mappingRepo.GetByHeaderID(ctx, headerID)
	if err != nil {
		return fmt.Errorf("load mappings: %w", err)
	}

	for _, mapping := range mappings {
		if err := uc.deleteLine(ctx, mapping); err != nil {
			return fmt.Errorf("delete entry %s: %w", mapping.EntryID, err)
		}
	}

	if err := uc.headerRepo.Delete(ctx, headerID); err != nil {
		return fmt.Errorf("delete header: %w", err)
	}

	uc.recorder.BatchDeleted()
	uc.audit(ctx, domain.AuditActionBatchDelete, domain.AggregateTypeHeader, headerID, nil, nil)
	uc.outbox(ctx, domain.AggregateTypeHeader, headerID, domain.EventTypeBatchDeleted, domain.BatchDeletedEvent{
		HeaderID:     headerID,
		DeletedLines: len(mappings),
	})

	return nil
}

// CreateEntry creates a header with a single line, for edits made outside a
// full batch context. Returns the created entry.
func (uc *BatchUseCase) CreateEntry(ctx context.Context, headerInput HeaderInput, line LineInput) (*domain.Entry, error) {
	status, err := domain.ValidateHeaderStatus(headerInput.Status)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	header := &domain.Header{
		ID:              uc.idGen.Generate(),
		TransactionDate: headerInput.TransactionDate,
		Description:     headerInput.Description,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.headerRepo.Create(ctx, header); err != nil {
		return nil, fmt.Errorf("create header: %w", err)
	}

	entry, err := uc.createLine(ctx, header, line, now)
	if err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionEntryCreate, domain.AggregateTypeEntry, entry.ID, nil, entry)
	uc.outbox(ctx, domain.AggregateTypeEntry, entry.ID, domain.EventTypeEntryCreated, domain.EntryChangedEvent{
		EntryID:  entry.ID,
		HeaderID: header.ID,
		Type:     string(entry.Type),
		Amount:   entry.Amount.String(),
	})

	return entry, nil
}

// UpdateEntry rewrites one mapped entry and its two postings in place,
// updating the owning header's fields in the same call.
func (uc *BatchUseCase) UpdateEntry(ctx context.Context, entryID string, headerInput HeaderInput, line LineInput) error {
	mapping, err := uc.mappingRepo.GetByEntryID(ctx, entryID)
	if err != nil {
		return err
	}

	header, err := uc.updateHeader(ctx, mapping.HeaderID, headerInput)
	if err != nil {
		return err
	}

	if err := uc.updateLine(ctx, header, mapping, UpdateLineInput{ID: entryID, LineInput: line}, time.Now().UTC()); err != nil {
		return err
	}

	uc.audit(ctx, domain.AuditActionEntryUpdate, domain.AggregateTypeEntry, entryID, nil, nil)
	uc.outbox(ctx, domain.AggregateTypeEntry, entryID, domain.EventTypeEntryUpdated, domain.EntryChangedEvent{
		EntryID:  entryID,
		HeaderID: header.ID,
		Type:     string(line.Type),
		Amount:   line.Amount.String(),
	})

	return nil
}

// DeleteEntry removes one mapped entry, its postings and its mapping, and the
// header that owned it. Single-entry batches own their header exclusively, so
// the header goes with the line.
func (uc *BatchUseCase) DeleteEntry(ctx context.Context, entryID string) error {
	mapping, err := uc.mappingRepo.GetByEntryID(ctx, entryID)
	if err != nil {
		if errors.Is(err, domain.ErrMappingNotFound) {
			uc.skipMissingMapping(ctx, "delete", entryID, "")
			return nil
		}
		return err
	}

	if err := uc.deleteLine(ctx, mapping); err != nil {
		return err
	}

	if err := uc.headerRepo.Delete(ctx, mapping.HeaderID); err != nil {
		return fmt.Errorf("delete header: %w", err)
	}

	uc.audit(ctx, domain.AuditActionEntryDelete, domain.AggregateTypeEntry, entryID, nil, nil)
	uc.outbox(ctx, domain.AggregateTypeEntry, entryID, domain.EventTypeEntryDeleted, domain.EntryChangedEvent{
		EntryID:  entryID,
		HeaderID: mapping.HeaderID,
	})

	return nil
}

// createLine runs the per-line create steps against an existing header:
// debit posting, credit posting, entry, then the mapping tying them together.
func (uc *BatchUseCase) createLine(ctx context.Context, header *domain.Header, line LineInput, now time.Time) (*domain.Entry, error) {
	entry := uc.buildEntry(header, line, now)
	debit, credit := entry.BuildPostingPair(header)

	debit.ID = uc.idGen.Generate()
	debit.CreatedAt = now
	debit.UpdatedAt = now
	if err := uc.postingRepo.Create(ctx, &debit); err != nil {
		return nil, fmt.Errorf("create debit posting: %w", err)
	}

	credit.ID = uc.idGen.Generate()
	credit.CreatedAt = now
	credit.UpdatedAt = now
	if err := uc.postingRepo.Create(ctx, &credit); err != nil {
		return nil, fmt.Errorf("create credit posting: %w", err)
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	mapping := &domain.Mapping{
		ID:              uc.idGen.Generate(),
		EntryID:         entry.ID,
		HeaderID:        header.ID,
		DebitPostingID:  debit.ID,
		CreditPostingID: credit.ID,
		CreatedAt:       now,
	}
	if err := uc.mappingRepo.Create(ctx, mapping); err != nil {
		return nil, fmt.Errorf("create mapping: %w", err)
	}

	uc.recorder.PostingsWritten(2)

	return entry, nil
}

// updateLine rebuilds the posting pair from the edited line and rewrites the
// two existing postings in place. Posting ids and the mapping row are
// preserved.
func (uc *BatchUseCase) updateLine(ctx context.Context, header *domain.Header, mapping *domain.Mapping, line UpdateLineInput, now time.Time) error {
	entry := uc.buildEntry(header, line.LineInput, now)
	entry.ID = line.ID
	debit, credit := entry.BuildPostingPair(header)

	debit.ID = mapping.DebitPostingID
	debit.UpdatedAt = now
	if err := uc.postingRepo.Update(ctx, &debit); err != nil {
		return fmt.Errorf("update debit posting: %w", err)
	}

	credit.ID = mapping.CreditPostingID
	credit.UpdatedAt = now
	if err := uc.postingRepo.Update(ctx, &credit); err != nil {
		return fmt.Errorf("update credit posting: %w", err)
	}

	if err := uc.entryRepo.Update(ctx, entry); err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	return nil
}

// deleteLine removes the two postings, then the entry, then the mapping. The
// ordering means a reader that queries postings before mappings never sees a
// mapping whose postings are gone for longer than the final delete call.
func (uc *BatchUseCase) deleteLine(ctx context.Context, mapping *domain.Mapping) error {
	if err := uc.postingRepo.Delete(ctx, mapping.DebitPostingID); err != nil {
		return fmt.Errorf("delete debit posting: %w", err)
	}

	if err := uc.postingRepo.Delete(ctx, mapping.CreditPostingID); err != nil {
		return fmt.Errorf("delete credit posting: %w", err)
	}

	if err := uc.entryRepo.Delete(ctx, mapping.EntryID); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	if err := uc.mappingRepo.Delete(ctx, mapping.ID); err != nil {
		return fmt.Errorf("delete mapping: %w", err)
	}

	return nil
}

func (uc *BatchUseCase) updateHeader(ctx context.Context, headerID string, input HeaderInput) (*domain.Header, error) {
	status, err := domain.ValidateHeaderStatus(input.Status)
	if err != nil {
		return nil, err
	}

	header := &domain.Header{
		ID:              headerID,
		TransactionDate: input.TransactionDate,
		Description:     input.Description,
		Status:          status,
		UpdatedAt:       time.Now().UTC(),
	}

	if err := uc.headerRepo.Update(ctx, header); err != nil {
		return nil, fmt.Errorf("update header: %w", err)
	}

	return header, nil
}

func (uc *BatchUseCase) buildEntry(header *domain.Header, line LineInput, now time.Time) *domain.Entry {
	return &domain.Entry{
		ID:                uc.idGen.Generate(),
		HeaderID:          header.ID,
		Type:              line.Type,
		Amount:            line.Amount,
		Date:              header.TransactionDate,
		Description:       line.Description,
		FundID:            line.FundID,
		CategoryID:        line.CategoryID,
		SourceID:          line.SourceID,
		SourceAccountID:   line.SourceAccountID,
		CategoryAccountID: line.CategoryAccountID,
		AccountRefID:      line.AccountRefID,
		BatchID:           line.BatchID,
		MemberID:          line.MemberID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// skipMissingMapping records the defensive no-op taken when an addressed
// entry has no mapping, typically a line the UI flagged but never persisted.
func (uc *BatchUseCase) skipMissingMapping(ctx context.Context, op, entryID, headerID string) {
	uc.recorder.MappingSkipped()
	uc.logger.WarnContext(ctx, "no mapping for entry, skipping",
		"op", op,
		"entry_id", entryID,
		"header_id", headerID,
	)
}

// audit writes an audit row best-effort; a failed audit write never fails the
// ledger operation it describes.
func (uc *BatchUseCase) audit(ctx context.Context, action domain.AuditAction, resourceType, resourceID string, before, after any) {
	if uc.auditRepo == nil {
		return
	}

	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Action:       string(action),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		BeforeState:  domain.MarshalState(before),
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.auditRepo.Create(ctx, log); err != nil {
		uc.logger.WarnContext(ctx, "audit write failed", "action", action, "error", err)
	}
}

// outbox records an event best-effort for the publisher worker to drain.
func (uc *BatchUseCase) outbox(ctx context.Context, aggregateType, aggregateID, eventType string, payload any) {
	if uc.outboxRepo == nil {
		return
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Payload:       domain.MarshalState(payload),
		CreatedAt:     time.Now().UTC(),
	}

	if err := uc.outboxRepo.Create(ctx, event); err != nil {
		uc.logger.WarnContext(ctx, "outbox write failed", "event_type", eventType, "error", err)
	}
}

func sumLines(lines []LineInput) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}
	return total
}

type nopRecorder struct{}

func (nopRecorder) BatchCreated()       {}
func (nopRecorder) BatchUpdated()       {}
func (nopRecorder) BatchDeleted()       {}
func (nopRecorder) PostingsWritten(int) {}
func (nopRecorder) MappingSkipped()     {}
