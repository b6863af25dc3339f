package catalog_api_client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
)

func TestQueryItems(t *testing.T) {
	t.Parallel()

	var got searchRequest
	var traceID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/inventory/search", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		traceID = r.Header.Get("X-Trace-ID")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(searchResponse{
			Items:      []domain.ItemSummary{{ID: "V-1", Make: "Ford"}},
			TotalCount: 41,
		})
	}))
	defer srv.Close()

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")
	filters := domain.FilterState{Make: []string{"Ford"}, PriceMax: "30000"}

	page, err := NewClient(srv.URL+"/", time.Second).QueryItems(ctx, filters, domain.NewPagination(2, 20), domain.SortPriceAsc)
	require.NoError(t, err)

	assert.Equal(t, "trace-1", traceID)
	assert.Equal(t, filters, got.Filters)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, "price_asc", got.Sort)
	assert.Equal(t, 41, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 1)
}

func TestAggregateFacetsKeepsKnownDimensions(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"facets":{"make":[{"name":"Ford","count":3},{"name":"Ford","count":2}],"horsepower":[{"name":"300","count":1}]}}`))
	}))
	defer srv.Close()

	set, err := NewClient(srv.URL, time.Second).AggregateFacets(context.Background(), domain.FilterState{})
	require.NoError(t, err)

	assert.Len(t, set, len(domain.AllDimensions))
	assert.Equal(t, []domain.FacetOption{{Name: "Ford", Count: 5}}, set[domain.DimensionMake])
	assert.NotNil(t, set[domain.DimensionTrim])
}

func TestLookupDealers(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req dealersRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"Metro Motors"}, req.Names)
		w.Write([]byte(`{"dealers":[{"id":"D-1","name":"Metro Motors","city":"Austin"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	dealers, err := client.LookupDealers(context.Background(), []string{"Metro Motors"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Dealer{{ID: "D-1", Name: "Metro Motors", City: "Austin"}}, dealers)

	// no names, no request
	dealers, err = NewClient("http://127.0.0.1:1", time.Second).LookupDealers(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, dealers)
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		status          int
		body            string
		wantUnavailable bool
	}{
		{name: "server error", status: http.StatusBadGateway, body: "upstream down", wantUnavailable: true},
		{name: "throttled", status: http.StatusTooManyRequests, wantUnavailable: true},
		{name: "bad request", status: http.StatusBadRequest, body: "bad filters"},
		{name: "garbage body", status: http.StatusOK, body: "{not json", wantUnavailable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).QueryItems(context.Background(), domain.FilterState{}, domain.NewPagination(1, 20), domain.SortNewest)
			require.Error(t, err)
			assert.Equal(t, tt.wantUnavailable, errors.Is(err, domain.ErrCatalogUnavailable))
		})
	}
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).AggregateFacets(context.Background(), domain.FilterState{})
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}
