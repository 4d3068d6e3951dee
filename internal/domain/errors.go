package domain

import "errors"

var (
	// Header errors
	ErrHeaderNotFound = errors.New("batch header not found")

	// Entry errors
	ErrEntryNotFound    = errors.New("entry not found")
	ErrInvalidEntryType = errors.New("entry type must be income or expense")
	ErrInvalidAmount    = errors.New("amount must be positive")

	// Posting errors
	ErrPostingNotFound   = errors.New("posting not found")
	ErrUnbalancedPosting = errors.New("posting must have exactly one of debit or credit set")

	// Mapping errors
	ErrMappingNotFound = errors.New("entry has no posting mapping")
)
