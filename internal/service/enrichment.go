package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/octobees/lead-enrichment/internal/entity"
	"github.com/octobees/lead-enrichment/internal/provider"
	"github.com/octobees/lead-enrichment/internal/repository"
)

// ErrEnrichmentUnavailable indicates the provider answered but had no
// usable data for the domain. Distinct from a transport failure so
// callers can tell "try again" from "this domain has no data".
var ErrEnrichmentUnavailable = errors.New("no enrichment data for domain")

// EnrichmentService sequences the enrichment workflow: normalize the
// domain, check the cache, fetch and persist on a miss, and record the
// lookup in the user's history.
type EnrichmentService struct {
	companies repository.CompaniesRepository
	history   repository.HistoryRepository
	fetcher   provider.CompanyFetcher
	logger    *zap.Logger
	now       func() time.Time

	inflight singleflight.Group
}

// NewEnrichmentService constructs the service with its collaborators
// injected.
func NewEnrichmentService(companies repository.CompaniesRepository, history repository.HistoryRepository, fetcher provider.CompanyFetcher, logger *zap.Logger) *EnrichmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrichmentService{
		companies: companies,
		history:   history,
		fetcher:   fetcher,
		logger:    logger,
		now:       time.Now,
	}
}

// Enrich resolves the raw domain to a company record, fetching and
// caching it on first lookup. Every successful resolution updates the
// user's history; a history write failure is logged but never fails the
// response the user already earned.
func (s *EnrichmentService) Enrich(ctx context.Context, userID, rawDomain string) (*entity.Company, error) {
	domain, err := NormalizeDomain(rawDomain)
	if err != nil {
		return nil, err
	}

	company, err := s.companies.FindByDomain(ctx, domain)
	switch {
	case err == nil:
		s.logHistory(ctx, userID, domain)
		return company, nil
	case !errors.Is(err, repository.ErrCompanyNotFound):
		return nil, fmt.Errorf("cache lookup: %w", err)
	}

	// Concurrent misses on the same domain share a single fetch instead
	// of racing duplicate inserts into the cache.
	fetched, err, _ := s.inflight.Do(domain, func() (any, error) {
		return s.fetchAndStore(ctx, domain)
	})
	if err != nil {
		return nil, err
	}

	s.logHistory(ctx, userID, domain)
	return fetched.(*entity.Company), nil
}

func (s *EnrichmentService) fetchAndStore(ctx context.Context, domain string) (*entity.Company, error) {
	company, err := s.fetcher.FetchCompany(ctx, domain)
	if err != nil {
		return nil, err
	}

	if company.CompanyName == nil || strings.TrimSpace(*company.CompanyName) == "" {
		return nil, ErrEnrichmentUnavailable
	}

	// The normalized domain is the cache key regardless of what the
	// provider echoed back.
	company.Domain = domain

	if err := s.companies.Insert(ctx, company); err != nil {
		return nil, fmt.Errorf("store company: %w", err)
	}
	return company, nil
}

// logHistory records the lookup best-effort. The record was already
// served (or fetched); failing the request over bookkeeping would throw
// away a good answer.
func (s *EnrichmentService) logHistory(ctx context.Context, userID, domain string) {
	if err := s.history.Upsert(ctx, userID, domain, s.now()); err != nil {
		s.logger.Warn("history write failed",
			zap.String("user_id", userID),
			zap.String("domain", domain),
			zap.Error(err))
	}
}
