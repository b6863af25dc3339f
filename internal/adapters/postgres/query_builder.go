package postgres

import (
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/samber/lo"

	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/slug"
)

const itemsTable = "inventory_items i"

// dimensionColumns maps every list dimension to the column holding its
// display value.
var dimensionColumns = map[domain.FacetDimension]string{
	domain.DimensionMake:          "i.make",
	domain.DimensionModel:         "i.model",
	domain.DimensionTrim:          "i.trim_level",
	domain.DimensionYear:          "NULLIF(i.year, 0)::text",
	domain.DimensionCondition:     "i.condition",
	domain.DimensionBodyType:      "i.body_type",
	domain.DimensionDriveType:     "i.drivetrain",
	domain.DimensionTransmission:  "i.transmission",
	domain.DimensionFuelType:      "i.fuel_type",
	domain.DimensionExteriorColor: "i.exterior_color",
	domain.DimensionInteriorColor: "i.interior_color",
	domain.DimensionSellerType:    "i.seller_type",
	domain.DimensionDealer:        "i.dealer_name",
	domain.DimensionCity:          "i.city",
	domain.DimensionState:         "i.state",
}

var itemColumns = []string{
	"i.id", "COALESCE(i.vin, '')", "i.title", "i.year", "i.make", "i.model",
	"COALESCE(i.trim_level, '')", "COALESCE(i.condition, '')", "COALESCE(i.body_type, '')",
	"COALESCE(i.drivetrain, '')", "COALESCE(i.transmission, '')", "COALESCE(i.fuel_type, '')",
	"COALESCE(i.exterior_color, '')", "COALESCE(i.interior_color, '')",
	"i.mileage", "i.price", "i.monthly_payment", "COALESCE(i.seller_type, '')",
	"COALESCE(i.dealer_id, '')", "COALESCE(i.dealer_name, '')",
	"COALESCE(i.city, '')", "COALESCE(i.state, '')", "i.images", "i.listed_at",
}

var sortClauses = map[domain.SortKey]string{
	domain.SortNewest:     "i.listed_at DESC",
	domain.SortPriceAsc:   "i.price ASC",
	domain.SortPriceDesc:  "i.price DESC",
	domain.SortMileageAsc: "i.mileage ASC",
	domain.SortYearDesc:   "i.year DESC",
	domain.SortYearAsc:    "i.year ASC",
}

// slugExpr renders the SQL twin of slug.Slugify for a column.
func slugExpr(column string) string {
	return fmt.Sprintf(
		`trim(both '-' from regexp_replace(regexp_replace(lower(unaccent(%s)), '[^a-z0-9_[:space:]-]', '', 'g'), '[[:space:]-]+', '-', 'g'))`,
		column,
	)
}

type queryBuilder struct {
	sb sq.StatementBuilderType
}

func newQueryBuilder() queryBuilder {
	return queryBuilder{sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

// where returns the predicate for every active facet and range. Only active
// listings are ever visible.
func (qb queryBuilder) where(filters domain.FilterState) sq.And {
	conds := sq.And{sq.Eq{"i.status": "active"}}

	for _, dim := range domain.AllDimensions {
		if dim == domain.DimensionMileage || !filters.HasSelection(dim) {
			continue
		}
		values := filters.Values(dim)
		slugs := lo.Uniq(lo.Map(values, func(v string, _ int) string { return slug.Slugify(v) }))
		byName := sq.Expr(slugExpr(dimensionColumns[dim])+" = ANY(?)", slugs)

		if dim == domain.DimensionDealer {
			conds = append(conds, sq.Or{byName, sq.Expr(slugExpr("i.dealer_id")+" = ANY(?)", slugs)})
			continue
		}
		conds = append(conds, byName)
	}

	if b, ok := domain.FindMileageBucket(filters.MileageBucket); ok {
		if b.Min > 0 {
			conds = append(conds, sq.GtOrEq{"i.mileage": b.Min})
		}
		if b.Max > 0 {
			conds = append(conds, sq.Lt{"i.mileage": b.Max})
		}
	}

	conds = appendRange(conds, "i.price", filters.PriceMin, filters.PriceMax)
	conds = appendRange(conds, "i.year", filters.YearMin, filters.YearMax)
	conds = appendRange(conds, "i.monthly_payment", filters.PaymentMin, filters.PaymentMax)
	return conds
}

func appendRange(conds sq.And, column, min, max string) sq.And {
	if v, err := strconv.ParseFloat(strings.TrimSpace(min), 64); err == nil {
		conds = append(conds, sq.GtOrEq{column: v})
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(max), 64); err == nil {
		conds = append(conds, sq.LtOrEq{column: v})
	}
	return conds
}

func (qb queryBuilder) count(filters domain.FilterState) (string, []interface{}, error) {
	return qb.sb.Select("COUNT(*)").From(itemsTable).Where(qb.where(filters)).ToSql()
}

func (qb queryBuilder) page(filters domain.FilterState, page domain.Pagination, sortKey domain.SortKey) (string, []interface{}, error) {
	order, ok := sortClauses[sortKey]
	if !ok {
		order = sortClauses[domain.SortNewest]
	}
	return qb.sb.Select(itemColumns...).
		From(itemsTable).
		Where(qb.where(filters)).
		OrderBy(order, "i.id ASC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
}

// facet counts one list dimension. Dealers are grouped by id as well, so
// two dealers sharing a display name stay apart.
func (qb queryBuilder) facet(dim domain.FacetDimension, filters domain.FilterState) (string, []interface{}, error) {
	column := dimensionColumns[dim]
	idColumn := "''"
	if dim == domain.DimensionDealer {
		idColumn = "COALESCE(i.dealer_id, '')"
	}
	return qb.sb.Select(column+" AS name", idColumn+" AS id", "COUNT(*)").
		From(itemsTable).
		Where(qb.where(filters)).
		Where(sq.Expr(fmt.Sprintf("COALESCE(%s, '') <> ''", column))).
		GroupBy("1", "2").
		ToSql()
}

// mileage counts every bucket in one row; buckets overlap.
func (qb queryBuilder) mileage(filters domain.FilterState) (string, []interface{}, error) {
	cols := lo.Map(domain.MileageBuckets, func(b domain.MileageBucket, _ int) string {
		switch {
		case b.Max == 0:
			return fmt.Sprintf("COUNT(*) FILTER (WHERE i.mileage >= %d)", b.Min)
		case b.Min == 0:
			return fmt.Sprintf("COUNT(*) FILTER (WHERE i.mileage < %d)", b.Max)
		default:
			return fmt.Sprintf("COUNT(*) FILTER (WHERE i.mileage >= %d AND i.mileage < %d)", b.Min, b.Max)
		}
	})
	return qb.sb.Select(cols...).From(itemsTable).Where(qb.where(filters)).ToSql()
}

func (qb queryBuilder) dealers(names []string) (string, []interface{}, error) {
	slugs := lo.Uniq(lo.Map(names, func(v string, _ int) string { return slug.Slugify(v) }))
	return qb.sb.Select("d.id", "d.name", "COALESCE(d.city, '')", "COALESCE(d.state, '')",
		"COALESCE(d.phone, '')", "COALESCE(d.website, '')", "COALESCE(d.rating, 0)").
		From("dealers d").
		Where(sq.Or{
			sq.Expr(slugExpr("d.name")+" = ANY(?)", slugs),
			sq.Expr(slugExpr("d.id")+" = ANY(?)", slugs),
		}).
		OrderBy("d.name", "d.id").
		ToSql()
}
