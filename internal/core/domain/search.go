package domain

// SearchRequest is one user-facing inventory search.
type SearchRequest struct {
	Filters    FilterState
	Pagination Pagination
	Sort       SortKey
}

// SearchResult bundles the item page with the data needed to render the
// filter sidebar. Facets and Dealers are empty, never nil, when their
// fetch failed; Degraded names the parts that were dropped.
type SearchResult struct {
	Page         ItemPage
	Facets       FacetOptionSet
	Dealers      []Dealer
	Filters      FilterState
	CanonicalURL string
	Degraded     []string
}

func (r SearchResult) HasNextPage() bool {
	return r.Page.Page < r.Page.TotalPages
}

func (r SearchResult) HasPreviousPage() bool {
	return r.Page.Page > 1
}
