package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/parishbooks/ledger/internal/adapter/http/handler"
	apimiddleware "github.com/parishbooks/ledger/internal/adapter/http/middleware"
	"github.com/parishbooks/ledger/internal/usecase"
	"github.com/parishbooks/ledger/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RequestLoggerObservesRequests(t *testing.T) {
	var buf bytes.Buffer
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RequestLogger = apimiddleware.NewRequestLogger(zerolog.New(&buf))
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	out := buf.String()
	if !strings.Contains(out, "request completed") {
		t.Fatalf("expected a request log line, got %q", out)
	}
	if !strings.Contains(out, `"path":"/health"`) {
		t.Errorf("expected log line to carry the request path, got %q", out)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"header":{"transaction_date":"2024-03-10","description":"Sunday offering"},"lines":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/batches/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_BatchRoundTrip(t *testing.T) {
	router := NewRouter(newRouterConfig())

	body := `{
		"header": {"transaction_date": "2024-03-10", "description": "Sunday offering"},
		"lines": [{
			"type": "income",
			"amount": "150",
			"fund_id": "fund-general",
			"category_id": "cat-offering",
			"source_id": "src-plate",
			"source_account_id": "acc-undeposited",
			"category_account_id": "acc-offering-income"
		}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/batches/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/batches/hdr-1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for created batch, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/batches/hdr-1/postings", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for postings, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/batches/",
		"GET /api/v1/batches/",
		"GET /api/v1/batches/{id}",
		"PUT /api/v1/batches/{id}",
		"DELETE /api/v1/batches/{id}",
		"GET /api/v1/batches/{id}/postings",
		"GET /api/v1/batches/{id}/balance",
		"POST /api/v1/entries/",
		"PUT /api/v1/entries/{id}",
		"DELETE /api/v1/entries/{id}",
		"GET /api/v1/sources/{id}/postings/recent",
		"GET /api/v1/ledger/consistency",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	ledger := mocks.NewMemoryLedger()

	batchUC := usecase.NewBatchUseCase(usecase.BatchUseCaseConfig{
		HeaderRepo:  ledger.HeaderRepo(),
		EntryRepo:   ledger.EntryRepo(),
		PostingRepo: ledger.PostingRepo(),
		MappingRepo: ledger.MappingRepo(),
		IDGen:       mocks.NewSeqIDGenerator("hdr"),
	})
	headerUC := usecase.NewHeaderUseCase(ledger.HeaderRepo(), ledger.EntryRepo(), ledger.PostingRepo(), nil, nil)

	cfg := RouterConfig{
		BatchHandler:  handler.NewBatchHandler(batchUC, headerUC),
		EntryHandler:  handler.NewEntryHandler(batchUC),
		LedgerHandler: handler.NewLedgerHandler(&stubLedgerService{}),
		HealthHandler: handler.NewHealthHandler(nil, nil),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubLedgerService struct{}

func (stubLedgerService) CheckConsistency(ctx context.Context) (bool, error) {
	return true, nil
}

func (stubLedgerService) CheckHeaderBalance(ctx context.Context, headerID string) (*usecase.HeaderBalance, error) {
	return &usecase.HeaderBalance{HeaderID: headerID, Debits: decimal.Zero, Credits: decimal.Zero, Balanced: true}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
