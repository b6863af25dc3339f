package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/filterurl"
	"storefront-service/internal/core/port"
	usecases_port "storefront-service/internal/core/port/usecases_port"
)

// Names of the optional parts reported in SearchResult.Degraded.
const (
	PartFacets  = "facets"
	PartDealers = "dealers"
)

// SearchInventoryUseCase serves one storefront listing request: the item
// page, the sidebar facets and dealer labels are fetched concurrently.
type SearchInventoryUseCase struct {
	catalog   port.CatalogPort
	facets    usecases_port.ResolveFacetOptionsUseCase
	directory port.SellerDirectoryPort
}

// NewSearchInventoryUseCase wires the orchestrator. directory may be nil,
// in which case dealer labels are never looked up.
func NewSearchInventoryUseCase(catalog port.CatalogPort, facets usecases_port.ResolveFacetOptionsUseCase, directory port.SellerDirectoryPort) *SearchInventoryUseCase {
	return &SearchInventoryUseCase{catalog: catalog, facets: facets, directory: directory}
}

// Execute fails only when the item page cannot be fetched. Facet or dealer
// failures leave those parts empty and are listed in Degraded.
func (uc *SearchInventoryUseCase) Execute(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	const op = "usecase.SearchInventory.Execute"

	filters := req.Filters.Normalize()
	pagination := domain.NewPagination(req.Pagination.Page, req.Pagination.Limit)
	sortKey := domain.ParseSortKey(string(req.Sort))

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchInventory",
		"filters":  filterurl.Generate(filters),
		"page":     pagination.Page,
		"limit":    pagination.Limit,
		"sort":     string(sortKey),
	})

	ucLogger.Info("Use case started", nil)

	var (
		page       *domain.ItemPage
		facets     domain.FacetOptionSet
		dealers    []domain.Dealer
		facetsErr  error
		dealersErr error
	)

	g, gctx := errgroup.WithContext(ctx)

	// --- Step 1: items (required) ---
	g.Go(func() error {
		p, err := uc.catalog.QueryItems(gctx, filters, pagination, sortKey)
		if err != nil {
			return fmt.Errorf("%s: query items: %w", op, err)
		}
		if p == nil {
			empty := domain.EmptyItemPage(pagination)
			p = &empty
		}
		page = p
		return nil
	})

	// --- Step 2: facet options (optional) ---
	g.Go(func() error {
		set, err := uc.facets.Execute(gctx, filters)
		if err != nil {
			facetsErr = err
			return nil
		}
		facets = set
		return nil
	})

	// --- Step 3: dealer labels for the selected dealers (optional) ---
	if uc.directory != nil && len(filters.Dealer) > 0 {
		g.Go(func() error {
			d, err := uc.directory.LookupDealers(gctx, filters.Dealer)
			if err != nil {
				dealersErr = err
				return nil
			}
			dealers = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		ucLogger.Error("Catalog query failed", err, nil)
		return nil, err
	}

	result := &domain.SearchResult{
		Page:         *page,
		Facets:       facets,
		Dealers:      dealers,
		Filters:      filters,
		CanonicalURL: filterurl.Generate(filters),
		Degraded:     []string{},
	}
	if result.Page.Items == nil {
		result.Page.Items = []domain.ItemSummary{}
	}
	if result.Page.Page == 0 {
		result.Page.Page = pagination.Page
	}
	if result.Page.PageSize == 0 {
		result.Page.PageSize = pagination.Limit
	}
	if result.Page.TotalPages == 0 {
		result.Page.TotalPages = domain.TotalPagesFor(result.Page.TotalCount, result.Page.PageSize)
	}

	if facetsErr != nil {
		ucLogger.Warn("Facet options unavailable, responding without them", port.Fields{"error": facetsErr.Error()})
		result.Degraded = append(result.Degraded, PartFacets)
	}
	if result.Facets == nil {
		result.Facets = domain.NewFacetOptionSet()
	}
	if dealersErr != nil {
		ucLogger.Warn("Dealer lookup failed, responding without labels", port.Fields{"error": dealersErr.Error()})
		result.Degraded = append(result.Degraded, PartDealers)
	}
	if result.Dealers == nil {
		result.Dealers = []domain.Dealer{}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.Page.TotalCount,
		"items_on_page": len(result.Page.Items),
		"degraded":      result.Degraded,
	})

	return result, nil
}
