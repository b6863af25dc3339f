package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/filterurl"
	"storefront-service/internal/core/port"
)

const (
	DefaultFacetCacheTTL      = 2 * time.Minute
	DefaultFacetConcurrency   = 4
	DefaultFacetFlightTimeout = 10 * time.Second
)

type ResolveFacetOptionsConfig struct {
	Policy      domain.SelfPolicy
	CacheTTL    time.Duration
	Concurrency int
	// FlightTimeout bounds one shared computation, independent of the
	// callers waiting on it.
	FlightTimeout time.Duration
}

// ResolveFacetOptionsUseCase computes the option list and match count of
// every facet dimension for a filter state.
type ResolveFacetOptionsUseCase struct {
	catalog port.CatalogPort
	cache   port.CachePort
	cfg     ResolveFacetOptionsConfig
	group   singleflight.Group
}

// NewResolveFacetOptionsUseCase builds the resolver. cache may be nil.
func NewResolveFacetOptionsUseCase(catalog port.CatalogPort, cache port.CachePort, cfg ResolveFacetOptionsConfig) *ResolveFacetOptionsUseCase {
	if cfg.Policy == "" {
		cfg.Policy = domain.ExcludeSelf
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultFacetCacheTTL
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultFacetConcurrency
	}
	if cfg.FlightTimeout <= 0 {
		cfg.FlightTimeout = DefaultFacetFlightTimeout
	}
	return &ResolveFacetOptionsUseCase{catalog: catalog, cache: cache, cfg: cfg}
}

// Execute returns one ordered option list per dimension. Every dimension is
// present; dimensions without candidates map to an empty list.
func (uc *ResolveFacetOptionsUseCase) Execute(ctx context.Context, filters domain.FilterState) (domain.FacetOptionSet, error) {
	filters = filters.Normalize()
	key := uc.cacheKey(filters)

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "ResolveFacetOptions",
		"cache_key": key,
		"policy":    string(uc.cfg.Policy),
	})

	ucLogger.Debug("Use case started", nil)

	if uc.cache != nil {
		var cached domain.FacetOptionSet
		hit, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			ucLogger.Warn("Facet cache read failed, computing fresh", port.Fields{"error": err.Error()})
		} else if hit {
			ucLogger.Debug("Facet options served from cache", nil)
			return complete(cached), nil
		}
	}

	// Identical concurrent requests share one computation on a context
	// detached from every caller. Each caller waits on its own ctx.
	ch := uc.group.DoChan(key, func() (interface{}, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.FlightTimeout)
		defer cancel()

		set, err := uc.compute(flightCtx, filters)
		if err != nil {
			return nil, err
		}
		if uc.cache != nil {
			if err := uc.cache.Set(flightCtx, key, set, uc.cfg.CacheTTL); err != nil {
				ucLogger.Warn("Facet cache write failed", port.Fields{"error": err.Error()})
			}
		}
		return set, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		ucLogger.Debug("Caller gave up waiting for facet options", port.Fields{"error": ctx.Err().Error()})
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		ucLogger.Error("Failed to resolve facet options", res.Err, nil)
		return nil, res.Err
	}
	result := res.Val.(domain.FacetOptionSet)

	ucLogger.Debug("Use case finished successfully", port.Fields{"shared_flight": res.Shared})
	// every waiter receives the same map
	return result.Clone(), nil
}

func (uc *ResolveFacetOptionsUseCase) Universe(ctx context.Context) (domain.FacetOptionSet, error) {
	return uc.Execute(ctx, domain.FilterState{})
}

// compute issues one aggregation over the full filter state plus, under
// ExcludeSelf, one per selected dimension with that dimension's own filter
// removed. The calls run concurrently.
func (uc *ResolveFacetOptionsUseCase) compute(ctx context.Context, filters domain.FilterState) (domain.FacetOptionSet, error) {
	var selected []domain.FacetDimension
	if uc.cfg.Policy == domain.ExcludeSelf {
		selected = lo.Filter(domain.AllDimensions, func(d domain.FacetDimension, _ int) bool {
			return filters.HasSelection(d)
		})
	}

	results := make([]domain.FacetOptionSet, 1+len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.Concurrency)

	g.Go(func() error {
		set, err := uc.catalog.AggregateFacets(gctx, filters)
		if err != nil {
			return fmt.Errorf("aggregate facets: %w", err)
		}
		results[0] = set
		return nil
	})
	for i, dim := range selected {
		g.Go(func() error {
			set, err := uc.catalog.AggregateFacets(gctx, filters.Without(dim))
			if err != nil {
				return fmt.Errorf("aggregate facets without %s: %w", dim, err)
			}
			results[i+1] = set
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	own := make(map[domain.FacetDimension]domain.FacetOptionSet, len(selected))
	for i, dim := range selected {
		own[dim] = results[i+1]
	}

	out := domain.NewFacetOptionSet()
	for _, dim := range domain.AllDimensions {
		source := results[0]
		if set, ok := own[dim]; ok {
			source = set
		}
		opts := domain.MergeOptions(source[dim])
		domain.SortOptions(dim, opts)
		out[dim] = opts
	}
	return out, nil
}

func (uc *ResolveFacetOptionsUseCase) cacheKey(filters domain.FilterState) string {
	return "facets:" + string(uc.cfg.Policy) + ":" + filterurl.Generate(filters)
}

// complete restores the every-dimension-present shape after a cache round trip.
func complete(set domain.FacetOptionSet) domain.FacetOptionSet {
	out := domain.NewFacetOptionSet()
	for dim, opts := range set {
		if opts != nil {
			out[dim] = opts
		}
	}
	return out
}
