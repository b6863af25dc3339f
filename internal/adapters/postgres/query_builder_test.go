package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/core/domain"
)

func TestWhereEmptyStateOnlyFiltersStatus(t *testing.T) {
	t.Parallel()

	sql, args, err := newQueryBuilder().count(domain.FilterState{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM inventory_items i WHERE (i.status = $1)", sql)
	assert.Equal(t, []interface{}{"active"}, args)
}

func TestWhereListFacetsCompareBySlug(t *testing.T) {
	t.Parallel()

	sql, args, err := newQueryBuilder().count(domain.FilterState{
		Make:  []string{"Mercedes-Benz", "mercedes benz", "BMW"},
		Model: []string{"F-150"},
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "lower(unaccent(i.make))")
	assert.Contains(t, sql, "lower(unaccent(i.model))")
	assert.Contains(t, sql, "= ANY($2)")
	assert.Contains(t, sql, "= ANY($3)")
	require.Len(t, args, 3)
	assert.Equal(t, []string{"mercedes-benz", "bmw"}, args[1])
	assert.Equal(t, []string{"f-150"}, args[2])
}

func TestWhereDealerMatchesNameOrID(t *testing.T) {
	t.Parallel()

	// "D 1" is how a URL-decoded dealer id arrives
	sql, args, err := newQueryBuilder().count(domain.FilterState{Dealer: []string{"D 1", "O'Brien Motors"}})
	require.NoError(t, err)

	assert.Contains(t, sql, slugExpr("i.dealer_name")+" = ANY($2)")
	assert.Contains(t, sql, slugExpr("i.dealer_id")+" = ANY($3)")
	slugs := []string{"d-1", "obrien-motors"}
	assert.Equal(t, []interface{}{"active", slugs, slugs}, args)
}

func TestDealersLookupMatchesIDBySlug(t *testing.T) {
	t.Parallel()

	sql, args, err := newQueryBuilder().dealers([]string{"D 1"})
	require.NoError(t, err)

	assert.Contains(t, sql, slugExpr("d.id")+" = ANY($2)")
	assert.Equal(t, []interface{}{[]string{"d-1"}, []string{"d-1"}}, args)
}

func TestWhereRangesAndMileage(t *testing.T) {
	t.Parallel()

	sql, args, err := newQueryBuilder().count(domain.FilterState{
		MileageBucket: "under-30000",
		PriceMin:      "10000",
		PriceMax:      "abc",
		YearMin:       "2018",
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "i.mileage < $2")
	assert.Contains(t, sql, "i.price >= $3")
	assert.Contains(t, sql, "i.year >= $4")
	assert.NotContains(t, sql, "i.price <=")
	assert.Equal(t, []interface{}{"active", 30000, 10000.0, 2018.0}, args)
}

func TestPageQuery(t *testing.T) {
	t.Parallel()

	sql, _, err := newQueryBuilder().page(domain.FilterState{}, domain.NewPagination(3, 20), domain.SortPriceDesc)
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY i.price DESC, i.id ASC LIMIT 20 OFFSET 40")

	sql, _, err = newQueryBuilder().page(domain.FilterState{}, domain.NewPagination(1, 20), "bogus")
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY i.listed_at DESC, i.id ASC")
}

func TestFacetQueryGroupsDealersByID(t *testing.T) {
	t.Parallel()

	sql, _, err := newQueryBuilder().facet(domain.DimensionDealer, domain.FilterState{})
	require.NoError(t, err)
	assert.Contains(t, sql, "SELECT i.dealer_name AS name, COALESCE(i.dealer_id, '') AS id, COUNT(*)")
	assert.Contains(t, sql, "GROUP BY 1, 2")

	sql, _, err = newQueryBuilder().facet(domain.DimensionYear, domain.FilterState{})
	require.NoError(t, err)
	assert.Contains(t, sql, "SELECT NULLIF(i.year, 0)::text AS name, '' AS id")
}

func TestMileageQueryCountsEveryBucket(t *testing.T) {
	t.Parallel()

	sql, _, err := newQueryBuilder().mileage(domain.FilterState{})
	require.NoError(t, err)
	assert.Contains(t, sql, "COUNT(*) FILTER (WHERE i.mileage < 15000)")
	assert.Contains(t, sql, "COUNT(*) FILTER (WHERE i.mileage >= 100000)")
}
