package port

import (
	"context"

	"storefront-service/internal/core/domain"
)

// CatalogPort is the inventory backend. Transport failures are wrapped in
// domain.ErrCatalogUnavailable.
type CatalogPort interface {
	// QueryItems returns one sorted page of items matching every filter.
	QueryItems(ctx context.Context, filters domain.FilterState, page domain.Pagination, sort domain.SortKey) (*domain.ItemPage, error)

	// AggregateFacets counts, for every dimension, the values present in the
	// candidate set matching filters. A dimension without candidates maps to
	// an empty list.
	AggregateFacets(ctx context.Context, filters domain.FilterState) (domain.FacetOptionSet, error)
}

// SellerDirectoryPort resolves dealer display names to directory records.
type SellerDirectoryPort interface {
	LookupDealers(ctx context.Context, names []string) ([]domain.Dealer, error)
}
