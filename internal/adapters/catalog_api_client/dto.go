package catalog_api_client

import "storefront-service/internal/core/domain"

type searchRequest struct {
	Filters domain.FilterState `json:"filters"`
	Page    int                `json:"page"`
	Limit   int                `json:"limit"`
	Sort    string             `json:"sort"`
}

type searchResponse struct {
	Items      []domain.ItemSummary `json:"items"`
	TotalCount int                  `json:"total_count"`
}

type facetsRequest struct {
	Filters domain.FilterState `json:"filters"`
}

type facetsResponse struct {
	Facets map[string][]domain.FacetOption `json:"facets"`
}

type dealersRequest struct {
	Names []string `json:"names"`
}

type dealersResponse struct {
	Dealers []domain.Dealer `json:"dealers"`
}
