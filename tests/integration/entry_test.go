package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/parishbooks/ledger/internal/adapter/http/dto"
	"github.com/parishbooks/ledger/internal/adapter/repository/postgres"
	"github.com/parishbooks/ledger/tests/testutil"
)

func TestSingleEntryLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB, postgres.NewOutboxRepository(testDB.Pool))

	save := dto.SaveEntryRequest{
		Header: dto.HeaderRequest{TransactionDate: "2024-03-10", Description: "one-off gift"},
		Line:   incomeLine("75"),
	}
	body, _ := json.Marshal(save)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/entries/", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var entry dto.EntryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	t.Run("creates its own header and posting pair", func(t *testing.T) {
		if got := testDB.CountRows(ctx, "headers"); got != 1 {
			t.Fatalf("expected 1 header, got %d", got)
		}
		if got := testDB.CountRows(ctx, "postings"); got != 2 {
			t.Fatalf("expected 2 postings, got %d", got)
		}
		if got := testDB.CountRows(ctx, "outbox_events"); got == 0 {
			t.Fatal("expected outbox events to be recorded")
		}
	})

	t.Run("update rewrites postings in place", func(t *testing.T) {
		save.Line = expenseLine("90")
		body, _ := json.Marshal(save)

		r := httptest.NewRequest(http.MethodPut, "/api/v1/entries/"+entry.ID, bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
		}

		if got := testDB.CountRows(ctx, "postings"); got != 2 {
			t.Fatalf("expected posting rows to be reused, got %d", got)
		}

		debits, credits := testDB.PostingTotals(ctx)
		want := decimal.NewFromInt(90)
		if !debits.Equal(want) || !credits.Equal(want) {
			t.Fatalf("expected totals 90/90, got %s/%s", debits, credits)
		}
	})

	t.Run("delete removes the owning header too", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodDelete, "/api/v1/entries/"+entry.ID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
		}

		for _, table := range []string{"mappings", "postings", "entries", "headers"} {
			if got := testDB.CountRows(ctx, table); got != 0 {
				t.Fatalf("expected %s to be empty, got %d rows", table, got)
			}
		}
	})
}
