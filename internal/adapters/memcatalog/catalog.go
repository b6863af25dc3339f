// Package memcatalog serves the catalog ports from an in-memory inventory
// loaded from a JSON fixture. It backs local development and tests.
package memcatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"
	"storefront-service/internal/core/slug"
)

// Fixture is the on-disk layout of a catalog file.
type Fixture struct {
	Items   []domain.ItemSummary `json:"items"`
	Dealers []domain.Dealer      `json:"dealers"`
}

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	items   []domain.ItemSummary
	dealers []domain.Dealer
}

func New(items []domain.ItemSummary, dealers []domain.Dealer) *Catalog {
	return &Catalog{
		items:   append([]domain.ItemSummary(nil), items...),
		dealers: append([]domain.Dealer(nil), dealers...),
	}
}

// LoadFile reads a Fixture from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog fixture: %w", err)
	}
	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("decode catalog fixture %s: %w", path, err)
	}
	return New(fx.Items, fx.Dealers), nil
}

func (c *Catalog) Len() int {
	return len(c.items)
}

func (c *Catalog) QueryItems(ctx context.Context, filters domain.FilterState, page domain.Pagination, sortKey domain.SortKey) (*domain.ItemPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	matched := lo.Filter(c.items, func(it domain.ItemSummary, _ int) bool { return filters.Matches(it) })
	sortItems(matched, sortKey)

	result := domain.ItemPage{
		Items:      []domain.ItemSummary{},
		TotalCount: len(matched),
		TotalPages: domain.TotalPagesFor(len(matched), page.Limit),
		Page:       page.Page,
		PageSize:   page.Limit,
	}
	if offset := page.Offset(); offset < len(matched) {
		end := min(offset+page.Limit, len(matched))
		result.Items = append(result.Items, matched[offset:end]...)
	}

	contextkeys.LoggerFromContext(ctx).Debug("In-memory catalog query", port.Fields{
		"component": "memcatalog",
		"matched":   len(matched),
	})
	return &result, nil
}

func (c *Catalog) AggregateFacets(ctx context.Context, filters domain.FilterState) (domain.FacetOptionSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	raw := make(map[domain.FacetDimension][]domain.FacetOption, len(domain.AllDimensions))
	for _, it := range c.items {
		if !filters.Matches(it) {
			continue
		}
		for _, dim := range domain.AllDimensions {
			if dim == domain.DimensionMileage {
				for _, key := range domain.MileageBucketsFor(it.Mileage) {
					raw[dim] = append(raw[dim], domain.FacetOption{Name: key, Count: 1})
				}
				continue
			}
			if name, id := it.FacetValue(dim); name != "" {
				raw[dim] = append(raw[dim], domain.FacetOption{Name: name, Count: 1, ID: id})
			}
		}
	}

	set := domain.NewFacetOptionSet()
	for dim, opts := range raw {
		set[dim] = domain.MergeOptions(opts)
	}
	return set, nil
}

// LookupDealers returns the directory records whose name or id matches one
// of names, in directory order.
func (c *Catalog) LookupDealers(ctx context.Context, names []string) ([]domain.Dealer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wanted := lo.SliceToMap(names, func(n string) (string, struct{}) { return slug.Slugify(n), struct{}{} })
	return lo.Filter(c.dealers, func(d domain.Dealer, _ int) bool {
		_, byName := wanted[slug.Slugify(d.Name)]
		_, byID := wanted[slug.Slugify(d.ID)]
		return byName || byID
	}), nil
}

func sortItems(items []domain.ItemSummary, key domain.SortKey) {
	less := func(a, b domain.ItemSummary) (bool, bool) {
		switch key {
		case domain.SortPriceAsc:
			return a.Price < b.Price, a.Price == b.Price
		case domain.SortPriceDesc:
			return a.Price > b.Price, a.Price == b.Price
		case domain.SortMileageAsc:
			return a.Mileage < b.Mileage, a.Mileage == b.Mileage
		case domain.SortYearDesc:
			return a.Year > b.Year, a.Year == b.Year
		case domain.SortYearAsc:
			return a.Year < b.Year, a.Year == b.Year
		default:
			return a.ListedAt.After(b.ListedAt), a.ListedAt.Equal(b.ListedAt)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		lt, eq := less(items[i], items[j])
		if !eq {
			return lt
		}
		return strings.Compare(items[i].ID, items[j].ID) < 0
	})
}
