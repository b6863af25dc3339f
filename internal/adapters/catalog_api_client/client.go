// Package catalog_api_client reaches a remote inventory service over HTTP
// and serves the catalog ports from its answers.
package catalog_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// doRequest posts payload as JSON and decodes a 2xx answer into out.
// Transport failures and 5xx answers wrap domain.ErrCatalogUnavailable.
func (c *Client) doRequest(ctx context.Context, path string, payload, out interface{}) error {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "CatalogApiClient",
		"path":      path,
	})

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set(contextkeys.TraceHeader, traceID)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	clientLogger.Debug("Sending request to catalog service", nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		clientLogger.Error("Failed to perform request to catalog service", err, nil)
		return fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		err := fmt.Errorf("catalog service returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
		clientLogger.Error("Received error response from catalog service", err, port.Fields{"status_code": resp.StatusCode})
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
		}
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		clientLogger.Error("Failed to decode response from catalog service", err, nil)
		return fmt.Errorf("%w: decode response: %w", domain.ErrCatalogUnavailable, err)
	}
	return nil
}

func (c *Client) QueryItems(ctx context.Context, filters domain.FilterState, page domain.Pagination, sortKey domain.SortKey) (*domain.ItemPage, error) {
	var res searchResponse
	err := c.doRequest(ctx, "/api/v1/inventory/search", searchRequest{
		Filters: filters,
		Page:    page.Page,
		Limit:   page.Limit,
		Sort:    string(sortKey),
	}, &res)
	if err != nil {
		return nil, err
	}

	items := res.Items
	if items == nil {
		items = []domain.ItemSummary{}
	}
	return &domain.ItemPage{
		Items:      items,
		TotalCount: res.TotalCount,
		TotalPages: domain.TotalPagesFor(res.TotalCount, page.Limit),
		Page:       page.Page,
		PageSize:   page.Limit,
	}, nil
}

// AggregateFacets drops dimensions the storefront does not know.
func (c *Client) AggregateFacets(ctx context.Context, filters domain.FilterState) (domain.FacetOptionSet, error) {
	var res facetsResponse
	if err := c.doRequest(ctx, "/api/v1/inventory/facets", facetsRequest{Filters: filters}, &res); err != nil {
		return nil, err
	}

	set := domain.NewFacetOptionSet()
	for name, opts := range res.Facets {
		dim, ok := domain.ParseDimension(name)
		if !ok {
			continue
		}
		set[dim] = domain.MergeOptions(opts)
	}
	return set, nil
}

func (c *Client) LookupDealers(ctx context.Context, names []string) ([]domain.Dealer, error) {
	if len(names) == 0 {
		return []domain.Dealer{}, nil
	}
	var res dealersResponse
	if err := c.doRequest(ctx, "/api/v1/dealers/lookup", dealersRequest{Names: names}, &res); err != nil {
		return nil, err
	}
	if res.Dealers == nil {
		return []domain.Dealer{}, nil
	}
	return res.Dealers, nil
}
