package memcatalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/filterurl"
)

func fixedCatalog() *Catalog {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	items := []domain.ItemSummary{
		{ID: "1", Make: "Toyota", Model: "Camry", Year: 2022, Condition: "Used", Mileage: 12000, Price: 24000, ListedAt: day},
		{ID: "2", Make: "Toyota", Model: "RAV4", Year: 2020, Condition: "Used", Mileage: 45000, Price: 21000, ListedAt: day.Add(time.Hour)},
		{ID: "3", Make: "Ford", Model: "F-150", Year: 2023, Condition: "New", Mileage: 10, Price: 52000, ListedAt: day.Add(2 * time.Hour), DealerID: "D-1", DealerName: "Metro Motors"},
		{ID: "4", Make: "Honda", Model: "Civic", Year: 2019, Condition: "Used", Mileage: 120000, Price: 9000, ListedAt: day.Add(3 * time.Hour), DealerID: "D-2", DealerName: "Metro Motors"},
	}
	dealers := []domain.Dealer{{ID: "D-1", Name: "Metro Motors"}, {ID: "D-2", Name: "Metro Motors"}, {ID: "D-3", Name: "Lakeside Auto"}}
	return New(items, dealers)
}

func TestQueryItems(t *testing.T) {
	t.Parallel()

	c := fixedCatalog()
	ctx := context.Background()

	page, err := c.QueryItems(ctx, domain.FilterState{Make: []string{"toyota"}}, domain.NewPagination(1, 1), domain.SortPriceAsc)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "2", page.Items[0].ID)

	page, err = c.QueryItems(ctx, domain.FilterState{}, domain.NewPagination(1, 20), domain.SortNewest)
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(page.Items))

	page, err = c.QueryItems(ctx, domain.FilterState{}, domain.NewPagination(5, 20), domain.SortNewest)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 4, page.TotalCount)
}

func TestQueryItemsCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fixedCatalog().QueryItems(ctx, domain.FilterState{}, domain.NewPagination(1, 20), domain.SortNewest)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestAggregateFacets(t *testing.T) {
	t.Parallel()

	set, err := fixedCatalog().AggregateFacets(context.Background(), domain.FilterState{Condition: []string{"Used"}})
	require.NoError(t, err)

	assert.ElementsMatch(t, []domain.FacetOption{{Name: "Toyota", Count: 2}, {Name: "Honda", Count: 1}}, set[domain.DimensionMake])
	assert.ElementsMatch(t, []domain.FacetOption{{Name: "Metro Motors", Count: 1, ID: "D-2"}}, set[domain.DimensionDealer])
	assert.ElementsMatch(t, []domain.FacetOption{
		{Name: "under-15000", Count: 1},
		{Name: "under-30000", Count: 1},
		{Name: "under-60000", Count: 2},
		{Name: "under-100000", Count: 2},
		{Name: "over-100000", Count: 1},
	}, set[domain.DimensionMileage])
	assert.NotNil(t, set[domain.DimensionTrim])
	assert.Empty(t, set[domain.DimensionTrim])
}

func TestLookupDealers(t *testing.T) {
	t.Parallel()

	dealers, err := fixedCatalog().LookupDealers(context.Background(), []string{"metro motors"})
	require.NoError(t, err)
	assert.Len(t, dealers, 2)

	dealers, err = fixedCatalog().LookupDealers(context.Background(), []string{"D-3"})
	require.NoError(t, err)
	require.Len(t, dealers, 1)
	assert.Equal(t, "Lakeside Auto", dealers[0].Name)
}

func TestDealerIDSurvivesURLRoundTrip(t *testing.T) {
	t.Parallel()

	c := fixedCatalog()
	ctx := context.Background()

	u := filterurl.Generate(domain.FilterState{Dealer: []string{"D-1"}})
	parsed, issues := filterurl.ParseURL(u)
	require.Empty(t, issues)

	page, err := c.QueryItems(ctx, parsed, domain.NewPagination(1, 20), domain.SortNewest)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, ids(page.Items))

	dealers, err := c.LookupDealers(ctx, parsed.Dealer)
	require.NoError(t, err)
	require.Len(t, dealers, 1)
	assert.Equal(t, "D-1", dealers[0].ID)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	fx := GenerateInventory(gofakeit.New(3), 25, 4)
	data, err := fx.JSON()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 25, c.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestGenerateInventoryIsReproducible(t *testing.T) {
	t.Parallel()

	a := GenerateInventory(gofakeit.New(11), 10, 3)
	b := GenerateInventory(gofakeit.New(11), 10, 3)
	assert.Equal(t, a, b)
	for _, it := range a.Items {
		assert.NotEmpty(t, it.Make)
		if it.SellerType == "Dealer" {
			assert.NotEmpty(t, it.DealerID)
		}
	}
}

func ids(items []domain.ItemSummary) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
