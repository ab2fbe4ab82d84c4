package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-enrichment/internal/entity"
	middlewarepkg "github.com/octobees/lead-enrichment/internal/middleware"
	"github.com/octobees/lead-enrichment/internal/provider"
	"github.com/octobees/lead-enrichment/internal/repository"
	"github.com/octobees/lead-enrichment/internal/service"
)

type companiesRepoStub struct {
	records map[string]*entity.Company
	inserts int
}

func (s *companiesRepoStub) FindByDomain(ctx context.Context, domain string) (*entity.Company, error) {
	if record, ok := s.records[domain]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, repository.ErrCompanyNotFound
}

func (s *companiesRepoStub) Insert(ctx context.Context, company *entity.Company) error {
	s.inserts++
	if s.records == nil {
		s.records = make(map[string]*entity.Company)
	}
	copied := *company
	s.records[company.Domain] = &copied
	return nil
}

type historyRepoStub struct {
	upserts int
	entries []entity.HistoryEntry
}

func (s *historyRepoStub) Upsert(ctx context.Context, userID, domain string, at time.Time) error {
	s.upserts++
	return nil
}

func (s *historyRepoStub) ListByUser(ctx context.Context, userID string) ([]entity.HistoryEntry, error) {
	return s.entries, nil
}

type fetcherStub struct {
	calls   int
	company *entity.Company
	err     error
}

func (s *fetcherStub) FetchCompany(ctx context.Context, domain string) (*entity.Company, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	copied := *s.company
	return &copied, nil
}

func strPtr(v string) *string { return &v }

func newEnrichContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/enrich", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middlewarepkg.ContextKeyUserID, "user-1")
	return c, rec
}

func TestEnrichHandler_Success(t *testing.T) {
	companies := &companiesRepoStub{}
	history := &historyRepoStub{}
	fetcher := &fetcherStub{company: &entity.Company{
		Domain:      "example.com",
		CompanyName: strPtr("Example Inc"),
		Industry:    strPtr("Software"),
	}}
	h := NewEnrichHandler(service.NewEnrichmentService(companies, history, fetcher, nil))

	c, rec := newEnrichContext(t, `{"domain":"www.example.com"}`)
	if err := h.Enrich(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got entity.Company
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Domain != "example.com" || *got.CompanyName != "Example Inc" {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
	if history.upserts != 1 {
		t.Fatalf("expected one history write, got %d", history.upserts)
	}
}

func TestEnrichHandler_CachedRecordIsStable(t *testing.T) {
	companies := &companiesRepoStub{}
	history := &historyRepoStub{}
	fetcher := &fetcherStub{company: &entity.Company{
		Domain:      "example.com",
		CompanyName: strPtr("Example Inc"),
	}}
	h := NewEnrichHandler(service.NewEnrichmentService(companies, history, fetcher, nil))

	c, first := newEnrichContext(t, `{"domain":"example.com"}`)
	if err := h.Enrich(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, second := newEnrichContext(t, `{"domain":"example.com"}`)
	if err := h.Enrich(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fetcher.calls != 1 {
		t.Fatalf("expected the second request to hit the cache, got %d provider calls", fetcher.calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("cached response differs from fetched response:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}

func TestEnrichHandler_InvalidJSON(t *testing.T) {
	h := NewEnrichHandler(service.NewEnrichmentService(&companiesRepoStub{}, &historyRepoStub{}, &fetcherStub{}, nil))

	c, rec := newEnrichContext(t, "not-json")
	if err := h.Enrich(c); err != nil {
		t.Fatalf("handler should write response: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEnrichHandler_InvalidDomain(t *testing.T) {
	h := NewEnrichHandler(service.NewEnrichmentService(&companiesRepoStub{}, &historyRepoStub{}, &fetcherStub{}, nil))

	c, rec := newEnrichContext(t, `{"domain":"not a domain"}`)
	if err := h.Enrich(c); err != nil {
		t.Fatalf("handler should write response: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"Invalid domain"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestEnrichHandler_EnrichmentUnavailable(t *testing.T) {
	companies := &companiesRepoStub{}
	history := &historyRepoStub{}
	fetcher := &fetcherStub{company: &entity.Company{Domain: "example.com"}}
	h := NewEnrichHandler(service.NewEnrichmentService(companies, history, fetcher, nil))

	c, rec := newEnrichContext(t, `{"domain":"example.com"}`)
	if err := h.Enrich(c); err != nil {
		t.Fatalf("handler should write response: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"Unable to fetch data for this domain"}` {
		t.Fatalf("unexpected body: %s", body)
	}
	if companies.inserts != 0 || history.upserts != 0 {
		t.Fatalf("unusable payload must not persist or log history")
	}
}

func TestEnrichHandler_FetchFailed(t *testing.T) {
	fetcher := &fetcherStub{err: fmt.Errorf("%w: timeout", provider.ErrFetchFailed)}
	h := NewEnrichHandler(service.NewEnrichmentService(&companiesRepoStub{}, &historyRepoStub{}, fetcher, nil))

	c, rec := newEnrichContext(t, `{"domain":"example.com"}`)
	if err := h.Enrich(c); err != nil {
		t.Fatalf("handler should write response: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}
