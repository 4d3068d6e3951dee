package domain

import "time"

// Event types
const (
	EventTypeBatchCreated = "batch.created"
	EventTypeBatchUpdated = "batch.updated"
	EventTypeBatchDeleted = "batch.deleted"
	EventTypeEntryCreated = "entry.created"
	EventTypeEntryUpdated = "entry.updated"
	EventTypeEntryDeleted = "entry.deleted"
)

// Aggregate types
const (
	AggregateTypeHeader = "header"
	AggregateTypeEntry  = "entry"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// BatchCreatedEvent payload
type BatchCreatedEvent struct {
	HeaderID        string `json:"header_id"`
	TransactionDate string `json:"transaction_date"`
	Description     string `json:"description"`
	LineCount       int    `json:"line_count"`
	TotalAmount     string `json:"total_amount"`
}

// BatchUpdatedEvent payload
type BatchUpdatedEvent struct {
	HeaderID     string `json:"header_id"`
	CreatedLines int    `json:"created_lines"`
	UpdatedLines int    `json:"updated_lines"`
	DeletedLines int    `json:"deleted_lines"`
}

// BatchDeletedEvent payload
type BatchDeletedEvent struct {
	HeaderID     string `json:"header_id"`
	DeletedLines int    `json:"deleted_lines"`
}

// EntryChangedEvent payload, shared by single-entry create/update/delete events.
type EntryChangedEvent struct {
	EntryID  string `json:"entry_id"`
	HeaderID string `json:"header_id"`
	Type     string `json:"type,omitempty"`
	Amount   string `json:"amount,omitempty"`
}
