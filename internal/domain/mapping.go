package domain

import "time"

// Mapping links one entry to the two postings it expanded into. An entry has
// at most one mapping, and both posting ids must resolve to live postings
// carrying equal amounts. A mapping is created after its postings and deleted
// after them, so it never references rows that were never written.
type Mapping struct {
	ID              string
	EntryID         string
	HeaderID        string
	DebitPostingID  string
	CreditPostingID string
	CreatedAt       time.Time
}
