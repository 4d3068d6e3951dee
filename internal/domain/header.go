package domain

import (
	"strings"
	"time"
)

// HeaderStatus represents the workflow status of a batch header.
type HeaderStatus string

const (
	HeaderStatusDraft  HeaderStatus = "draft"
	HeaderStatusPosted HeaderStatus = "posted"
	HeaderStatusVoid   HeaderStatus = "void"
)

// Header represents a savable batch of financial lines sharing a date,
// description and status. It owns its entries transitively through mappings.
type Header struct {
	ID              string
	TransactionDate time.Time
	Description     string
	Status          HeaderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DescriptionFor returns the description to stamp on postings built for a
// line, falling back to the header description when the line's own
// description is blank.
func (h *Header) DescriptionFor(lineDescription string) string {
	if strings.TrimSpace(lineDescription) == "" {
		return h.Description
	}
	return lineDescription
}
