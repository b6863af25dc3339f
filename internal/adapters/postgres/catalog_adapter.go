package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"
)

// CatalogAdapter serves CatalogPort and SellerDirectoryPort from PostgreSQL.
type CatalogAdapter struct {
	pool *pgxpool.Pool
	qb   queryBuilder
}

func NewCatalogAdapter(pool *pgxpool.Pool) (*CatalogAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &CatalogAdapter{pool: pool, qb: newQueryBuilder()}, nil
}

// QueryItems sends the count and the page in one batch.
func (a *CatalogAdapter) QueryItems(ctx context.Context, filters domain.FilterState, page domain.Pagination, sortKey domain.SortKey) (*domain.ItemPage, error) {
	countSQL, countArgs, err := a.qb.count(filters)
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}
	pageSQL, pageArgs, err := a.qb.page(filters, page, sortKey)
	if err != nil {
		return nil, fmt.Errorf("build page query: %w", err)
	}

	batch := &pgx.Batch{}
	batch.Queue(countSQL, countArgs...)
	batch.Queue(pageSQL, pageArgs...)

	br := a.pool.SendBatch(ctx, batch)
	defer br.Close()

	var total int
	if err := br.QueryRow().Scan(&total); err != nil {
		return nil, unavailable("count items", err)
	}

	rows, err := br.Query()
	if err != nil {
		return nil, unavailable("query items", err)
	}
	items, err := pgx.CollectRows(rows, scanItem)
	if err != nil {
		return nil, unavailable("scan items", err)
	}

	contextkeys.LoggerFromContext(ctx).Debug("Postgres catalog query", port.Fields{
		"component": "postgres_catalog",
		"matched":   total,
	})

	return &domain.ItemPage{
		Items:      items,
		TotalCount: total,
		TotalPages: domain.TotalPagesFor(total, page.Limit),
		Page:       page.Page,
		PageSize:   page.Limit,
	}, nil
}

// AggregateFacets runs one GROUP BY per list dimension plus the mileage
// buckets, all in a single batch.
func (a *CatalogAdapter) AggregateFacets(ctx context.Context, filters domain.FilterState) (domain.FacetOptionSet, error) {
	batch := &pgx.Batch{}
	var dims []domain.FacetDimension
	for _, dim := range domain.AllDimensions {
		if dim == domain.DimensionMileage {
			continue
		}
		sql, args, err := a.qb.facet(dim, filters)
		if err != nil {
			return nil, fmt.Errorf("build %s facet query: %w", dim, err)
		}
		batch.Queue(sql, args...)
		dims = append(dims, dim)
	}
	mileageSQL, mileageArgs, err := a.qb.mileage(filters)
	if err != nil {
		return nil, fmt.Errorf("build mileage facet query: %w", err)
	}
	batch.Queue(mileageSQL, mileageArgs...)

	br := a.pool.SendBatch(ctx, batch)
	defer br.Close()

	set := domain.NewFacetOptionSet()
	for _, dim := range dims {
		rows, err := br.Query()
		if err != nil {
			return nil, unavailable(fmt.Sprintf("aggregate %s", dim), err)
		}
		opts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FacetOption, error) {
			var o domain.FacetOption
			var count int64
			err := row.Scan(&o.Name, &o.ID, &count)
			o.Count = uint(count)
			return o, err
		})
		if err != nil {
			return nil, unavailable(fmt.Sprintf("scan %s", dim), err)
		}
		set[dim] = domain.MergeOptions(opts)
	}

	counts := make([]int64, len(domain.MileageBuckets))
	dest := make([]any, len(counts))
	for i := range counts {
		dest[i] = &counts[i]
	}
	if err := br.QueryRow().Scan(dest...); err != nil {
		return nil, unavailable("aggregate mileage", err)
	}
	opts := make([]domain.FacetOption, 0, len(counts))
	for i, b := range domain.MileageBuckets {
		opts = append(opts, domain.FacetOption{Name: b.Key, Count: uint(counts[i])})
	}
	set[domain.DimensionMileage] = domain.MergeOptions(opts)

	return set, nil
}

// LookupDealers matches names against dealer display names by slug and
// against dealer ids.
func (a *CatalogAdapter) LookupDealers(ctx context.Context, names []string) ([]domain.Dealer, error) {
	if len(names) == 0 {
		return []domain.Dealer{}, nil
	}
	sql, args, err := a.qb.dealers(names)
	if err != nil {
		return nil, fmt.Errorf("build dealer query: %w", err)
	}
	rows, err := a.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, unavailable("lookup dealers", err)
	}
	dealers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Dealer, error) {
		var d domain.Dealer
		err := row.Scan(&d.ID, &d.Name, &d.City, &d.State, &d.Phone, &d.Website, &d.Rating)
		return d, err
	})
	if err != nil {
		return nil, unavailable("scan dealers", err)
	}
	return dealers, nil
}

func scanItem(row pgx.CollectableRow) (domain.ItemSummary, error) {
	var it domain.ItemSummary
	err := row.Scan(
		&it.ID, &it.VIN, &it.Title, &it.Year, &it.Make, &it.Model,
		&it.Trim, &it.Condition, &it.BodyType,
		&it.DriveType, &it.Transmission, &it.FuelType,
		&it.ExteriorColor, &it.InteriorColor,
		&it.Mileage, &it.Price, &it.MonthlyPayment, &it.SellerType,
		&it.DealerID, &it.DealerName,
		&it.City, &it.State, &it.Images, &it.ListedAt,
	)
	return it, err
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrCatalogUnavailable, op, err)
}
