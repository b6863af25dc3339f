package cache

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/filterurl"
	"storefront-service/internal/core/port"
)

// CachedCatalog is a read-through page cache in front of a CatalogPort.
// Facet aggregation passes straight through; the resolver caches whole
// option sets itself.
type CachedCatalog struct {
	next          port.CatalogPort
	cache         port.CachePort
	ttl           time.Duration
	flightTimeout time.Duration
	group         singleflight.Group
}

// DefaultFlightTimeout bounds one shared upstream page query.
const DefaultFlightTimeout = 10 * time.Second

func NewCachedCatalog(next port.CatalogPort, cache port.CachePort, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{next: next, cache: cache, ttl: ttl, flightTimeout: DefaultFlightTimeout}
}

func (c *CachedCatalog) QueryItems(ctx context.Context, filters domain.FilterState, page domain.Pagination, sort domain.SortKey) (*domain.ItemPage, error) {
	key := fmt.Sprintf("items:%s:%d:%d:%s", sort, page.Page, page.Limit, filterurl.Generate(filters))
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "CachedCatalog", "cache_key": key})

	var cached domain.ItemPage
	hit, err := c.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Page cache read failed", port.Fields{"error": err.Error()})
	} else if hit {
		logger.Debug("Item page served from cache", nil)
		return &cached, nil
	}

	// one upstream query per key, detached from the callers waiting on it
	ch := c.group.DoChan(key, func() (interface{}, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.flightTimeout)
		defer cancel()

		fetched, err := c.next.QueryItems(flightCtx, filters, page, sort)
		if err != nil || fetched == nil {
			return fetched, err
		}
		if err := c.cache.Set(flightCtx, key, fetched, c.ttl); err != nil {
			logger.Warn("Page cache write failed", port.Fields{"error": err.Error()})
		}
		return fetched, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	result, _ := res.Val.(*domain.ItemPage)
	if result == nil {
		return nil, nil
	}
	out := *result
	out.Items = append([]domain.ItemSummary(nil), result.Items...)
	return &out, nil
}

func (c *CachedCatalog) AggregateFacets(ctx context.Context, filters domain.FilterState) (domain.FacetOptionSet, error) {
	return c.next.AggregateFacets(ctx, filters)
}
