package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/octobees/lead-enrichment/internal/entity"
)

// CompanyFetcher retrieves company data for a normalized domain from a
// third-party enrichment provider.
type CompanyFetcher interface {
	FetchCompany(ctx context.Context, domain string) (*entity.Company, error)
}

// ErrFetchFailed marks transport and protocol failures talking to the
// provider. Rate limiting, auth failure, and downtime all surface as
// this one class; the caller may simply resubmit.
var ErrFetchFailed = errors.New("company data fetch failed")

// AbstractClient fetches company data from the Abstract company
// enrichment API. One synchronous request per domain; no retries.
type AbstractClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewAbstractClient builds a provider client. A nil http.Client falls
// back to a default with a conservative timeout.
func NewAbstractClient(client *http.Client, baseURL, apiKey string) *AbstractClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &AbstractClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// FetchCompany issues the enrichment request for the domain. The
// returned record may carry a null company name; deciding whether that
// payload is usable is the caller's concern.
func (c *AbstractClient) FetchCompany(ctx context.Context, domain string) (*entity.Company, error) {
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("domain", domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: provider returned status %d", ErrFetchFailed, resp.StatusCode)
	}

	var company entity.Company
	if err := json.NewDecoder(resp.Body).Decode(&company); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrFetchFailed, err)
	}

	return &company, nil
}

var _ CompanyFetcher = (*AbstractClient)(nil)
