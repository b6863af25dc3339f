package rest

import (
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/filterurl"
)

// PageMeta describes the returned page.
type PageMeta struct {
	TotalRecords    int  `json:"totalRecords"`
	TotalPages      int  `json:"totalPages"`
	CurrentPage     int  `json:"currentPage"`
	PageSize        int  `json:"pageSize"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// SearchResponse is the envelope of GET /cars.
type SearchResponse struct {
	Success        bool                  `json:"success"`
	Data           []domain.ItemSummary  `json:"data"`
	Meta           PageMeta              `json:"meta"`
	Filters        domain.FacetOptionSet `json:"filters"`
	Dealers        []domain.Dealer       `json:"dealers"`
	AppliedFilters domain.FilterState    `json:"appliedFilters"`
	CanonicalURL   string                `json:"canonicalUrl"`
	Degraded       []string              `json:"degraded,omitempty"`
}

// SearchErrorResponse has the success shape with empty defaults, so the
// frontend can render an empty page without special cases.
type SearchErrorResponse struct {
	Success        bool                  `json:"success"`
	Error          string                `json:"error"`
	Data           []domain.ItemSummary  `json:"data"`
	Meta           PageMeta              `json:"meta"`
	Filters        domain.FacetOptionSet `json:"filters"`
	Dealers        []domain.Dealer       `json:"dealers"`
	AppliedFilters domain.FilterState    `json:"appliedFilters"`
	CanonicalURL   string                `json:"canonicalUrl"`
}

func newSearchResponse(res *domain.SearchResult) SearchResponse {
	return SearchResponse{
		Success: true,
		Data:    res.Page.Items,
		Meta: PageMeta{
			TotalRecords:    res.Page.TotalCount,
			TotalPages:      res.Page.TotalPages,
			CurrentPage:     res.Page.Page,
			PageSize:        res.Page.PageSize,
			HasNextPage:     res.HasNextPage(),
			HasPreviousPage: res.HasPreviousPage(),
		},
		Filters:        res.Facets,
		Dealers:        res.Dealers,
		AppliedFilters: res.Filters,
		CanonicalURL:   res.CanonicalURL,
		Degraded:       res.Degraded,
	}
}

func newSearchErrorResponse(message string, filters domain.FilterState) SearchErrorResponse {
	return SearchErrorResponse{
		Success:        false,
		Error:          message,
		Data:           []domain.ItemSummary{},
		Filters:        domain.NewFacetOptionSet(),
		Dealers:        []domain.Dealer{},
		AppliedFilters: filters,
		CanonicalURL:   filterurl.Generate(filters),
	}
}

type FacetsResponse struct {
	Filters        domain.FacetOptionSet `json:"filters"`
	AppliedFilters domain.FilterState    `json:"appliedFilters"`
	CanonicalURL   string                `json:"canonicalUrl"`
}

type CanonicalResponse struct {
	CanonicalURL string             `json:"canonicalUrl"`
	Filters      domain.FilterState `json:"filters"`
	// Redirect is true when the requested URL differs from its canonical form.
	Redirect bool `json:"redirect"`
}

type ApplyFilterRequest struct {
	URL    string   `json:"url"`
	Facet  string   `json:"facet"`
	Action string   `json:"action"`
	Values []string `json:"values"`
}

type ApplyFilterResponse struct {
	URL     string             `json:"url"`
	Filters domain.FilterState `json:"filters"`
}
