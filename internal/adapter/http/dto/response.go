package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/parishbooks/ledger/internal/domain"
	"github.com/parishbooks/ledger/internal/usecase"
)

// HeaderResponse represents a batch header in API responses.
type HeaderResponse struct {
	ID              string    `json:"id"`
	TransactionDate string    `json:"transaction_date"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HeaderFromDomain converts a domain header to a response.
func HeaderFromDomain(h *domain.Header) *HeaderResponse {
	return &HeaderResponse{
		ID:              h.ID,
		TransactionDate: h.TransactionDate.Format(time.DateOnly),
		Description:     h.Description,
		Status:          string(h.Status),
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}

// HeadersFromDomain converts domain headers to responses.
func HeadersFromDomain(headers []*domain.Header) []*HeaderResponse {
	result := make([]*HeaderResponse, len(headers))
	for i, h := range headers {
		result[i] = HeaderFromDomain(h)
	}
	return result
}

// EntryResponse represents a logical entry in API responses.
type EntryResponse struct {
	ID                string          `json:"id"`
	HeaderID          string          `json:"header_id"`
	Type              string          `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	Date              string          `json:"date"`
	Description       string          `json:"description,omitempty"`
	FundID            string          `json:"fund_id"`
	CategoryID        string          `json:"category_id"`
	SourceID          string          `json:"source_id"`
	SourceAccountID   string          `json:"source_account_id"`
	CategoryAccountID string          `json:"category_account_id"`
	AccountRefID      *string         `json:"account_ref_id,omitempty"`
	BatchID           *string         `json:"batch_id,omitempty"`
	MemberID          *string         `json:"member_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:                e.ID,
		HeaderID:          e.HeaderID,
		Type:              string(e.Type),
		Amount:            e.Amount,
		Date:              e.Date.Format(time.DateOnly),
		Description:       e.Description,
		FundID:            e.FundID,
		CategoryID:        e.CategoryID,
		SourceID:          e.SourceID,
		SourceAccountID:   e.SourceAccountID,
		CategoryAccountID: e.CategoryAccountID,
		AccountRefID:      e.AccountRefID,
		BatchID:           e.BatchID,
		MemberID:          e.MemberID,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// PostingResponse represents a ledger posting in API responses.
type PostingResponse struct {
	ID          string          `json:"id"`
	HeaderID    string          `json:"header_id"`
	AccountID   string          `json:"account_id"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	FundID      string          `json:"fund_id"`
	CategoryID  string          `json:"category_id"`
	SourceID    string          `json:"source_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PostingFromDomain converts a domain posting to a response.
func PostingFromDomain(p *domain.Posting) *PostingResponse {
	return &PostingResponse{
		ID:          p.ID,
		HeaderID:    p.HeaderID,
		AccountID:   p.AccountID,
		Debit:       p.Debit,
		Credit:      p.Credit,
		Date:        p.Date.Format(time.DateOnly),
		Description: p.Description,
		FundID:      p.FundID,
		CategoryID:  p.CategoryID,
		SourceID:    p.SourceID,
		CreatedAt:   p.CreatedAt,
	}
}

// PostingsFromDomain converts domain postings to responses.
func PostingsFromDomain(postings []*domain.Posting) []*PostingResponse {
	result := make([]*PostingResponse, len(postings))
	for i, p := range postings {
		result[i] = PostingFromDomain(p)
	}
	return result
}

// BatchDetailResponse is a header together with its entries.
type BatchDetailResponse struct {
	Header  *HeaderResponse  `json:"header"`
	Entries []*EntryResponse `json:"entries"`
}

// BatchDetailFromDomain converts a use case batch detail to a response.
func BatchDetailFromDomain(d *usecase.BatchDetail) *BatchDetailResponse {
	return &BatchDetailResponse{
		Header:  HeaderFromDomain(d.Header),
		Entries: EntriesFromDomain(d.Entries),
	}
}

// ConsistencyResponse reports the ledger-wide balance check.
type ConsistencyResponse struct {
	Consistent bool `json:"consistent"`
}

// HeaderBalanceResponse reports one header's balance check.
type HeaderBalanceResponse struct {
	HeaderID  string          `json:"header_id"`
	Debits    decimal.Decimal `json:"debits"`
	Credits   decimal.Decimal `json:"credits"`
	Balanced  bool            `json:"balanced"`
	CheckedAt time.Time       `json:"checked_at"`
}

// HeaderBalanceFromDomain converts a use case balance report to a response.
func HeaderBalanceFromDomain(b *usecase.HeaderBalance) *HeaderBalanceResponse {
	return &HeaderBalanceResponse{
		HeaderID:  b.HeaderID,
		Debits:    b.Debits,
		Credits:   b.Credits,
		Balanced:  b.Balanced,
		CheckedAt: b.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
