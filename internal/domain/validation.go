package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrMissingLedgerAccount  = errors.New("line is missing a resolved ledger account")
	ErrDescriptionTooLong    = errors.New("description exceeds maximum length")
	ErrAmountTooLarge        = errors.New("amount exceeds maximum allowed")
	ErrMissingTransactionDay = errors.New("transaction date is required")
)

// Validation constants
const (
	MaxDescriptionLength = 500
	MaxLineAmount        = "1000000000" // 1 billion
)

// ValidateAmount validates a line amount before it is expanded into postings.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxLineAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxLineAmount)
	}

	return nil
}

// ValidateDescription validates a header or line description.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: maximum is %d characters", ErrDescriptionTooLong, MaxDescriptionLength)
	}

	return nil
}

// ValidateEntry validates a line before the engine is invoked. Amount and
// type checks belong to the caller-facing surface, not the reconciliation
// engine itself.
func ValidateEntry(e *Entry) error {
	if !e.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidEntryType, e.Type)
	}

	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}

	if strings.TrimSpace(e.SourceAccountID) == "" || strings.TrimSpace(e.CategoryAccountID) == "" {
		return ErrMissingLedgerAccount
	}

	return ValidateDescription(e.Description)
}

// ValidateHeaderStatus validates a header status value, defaulting blank to draft.
func ValidateHeaderStatus(status HeaderStatus) (HeaderStatus, error) {
	switch status {
	case "":
		return HeaderStatusDraft, nil
	case HeaderStatusDraft, HeaderStatusPosted, HeaderStatusVoid:
		return status, nil
	default:
		return "", fmt.Errorf("invalid header status %q", status)
	}
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
