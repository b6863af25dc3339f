package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterStateWithValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		dim    FacetDimension
		values []string
		want   []string
	}{
		{name: "dedupes by slug keeping first spelling", dim: DimensionMake, values: []string{"Land Rover", "land-rover", "Toyota"}, want: []string{"Land Rover", "Toyota"}},
		{name: "drops blanks", dim: DimensionModel, values: []string{"  ", "", "Camry "}, want: []string{"Camry"}},
		{name: "drops punctuation only", dim: DimensionTrim, values: []string{"!!", "LE"}, want: []string{"LE"}},
		{name: "nil clears", dim: DimensionCity, values: nil, want: nil},
		{name: "mileage keeps first", dim: DimensionMileage, values: []string{"under-30000", "under-60000"}, want: []string{"under-30000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FilterState{City: []string{"Austin"}}.WithValues(tt.dim, tt.values)
			assert.Equal(t, tt.want, got.Values(tt.dim))
		})
	}
}

func TestFilterStateWithValuesDoesNotAlias(t *testing.T) {
	t.Parallel()

	base := FilterState{Make: []string{"Toyota", "Honda"}}
	next := base.WithValues(DimensionModel, []string{"Camry"})
	next.Make[0] = "Ford"

	assert.Equal(t, []string{"Toyota", "Honda"}, base.Make)
	assert.Empty(t, base.Model)
}

func TestFilterStateWithout(t *testing.T) {
	t.Parallel()

	s := FilterState{Make: []string{"Toyota"}, VehicleType: []string{"SUV"}, MileageBucket: "under-15000"}

	assert.False(t, s.Without(DimensionMake).HasSelection(DimensionMake))
	assert.True(t, s.Without(DimensionMake).HasSelection(DimensionBodyType))
	assert.Empty(t, s.Without(DimensionMileage).MileageBucket)
	assert.Equal(t, []string{"Toyota"}, s.Make)
}

func TestFilterStateIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, FilterState{}.IsEmpty())
	assert.False(t, FilterState{PriceMax: "30000"}.IsEmpty())
	assert.False(t, FilterState{MileageBucket: "over-100000"}.IsEmpty())
	assert.False(t, FilterState{Dealer: []string{"Metro Motors"}}.IsEmpty())
}

func TestFilterStateNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    FilterState
		check func(t *testing.T, got FilterState)
	}{
		{
			name: "swaps inverted price range",
			in:   FilterState{PriceMin: "40000", PriceMax: "10000"},
			check: func(t *testing.T, got FilterState) {
				assert.Equal(t, "10000", got.PriceMin)
				assert.Equal(t, "40000", got.PriceMax)
			},
		},
		{
			name: "swaps inverted year range",
			in:   FilterState{YearMin: "2024", YearMax: "2015"},
			check: func(t *testing.T, got FilterState) {
				assert.Equal(t, "2015", got.YearMin)
				assert.Equal(t, "2024", got.YearMax)
			},
		},
		{
			name: "drops non numeric bounds",
			in:   FilterState{PaymentMin: "cheap", PaymentMax: "500"},
			check: func(t *testing.T, got FilterState) {
				assert.Empty(t, got.PaymentMin)
				assert.Equal(t, "500", got.PaymentMax)
			},
		},
		{
			name: "drops unknown mileage bucket",
			in:   FilterState{MileageBucket: "under-5"},
			check: func(t *testing.T, got FilterState) {
				assert.Empty(t, got.MileageBucket)
			},
		},
		{
			name: "dedupes lists",
			in:   FilterState{Make: []string{"Toyota", "TOYOTA", " toyota "}},
			check: func(t *testing.T, got FilterState) {
				assert.Equal(t, []string{"Toyota"}, got.Make)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, tt.in.Normalize())
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := FilterState{Make: []string{"Toyota"}, Condition: []string{"Used"}, PriceMax: "30000"}
	partial := FilterState{Make: []string{"Honda"}, PriceMin: "5000"}

	got := Merge(base, partial)

	assert.Equal(t, []string{"Honda"}, got.Make)
	assert.Equal(t, []string{"Used"}, got.Condition)
	assert.Equal(t, "5000", got.PriceMin)
	assert.Equal(t, "30000", got.PriceMax)
	assert.Equal(t, []string{"Toyota"}, base.Make)
}

func TestSameSelection(t *testing.T) {
	t.Parallel()

	assert.True(t, SameSelection([]string{"Toyota", "Honda"}, []string{"honda", "TOYOTA"}))
	assert.True(t, SameSelection(nil, []string{}))
	assert.False(t, SameSelection([]string{"Toyota"}, []string{"Toyota", "Honda"}))
	assert.False(t, SameSelection([]string{"Toyota"}, nil))
}

func TestParseDimension(t *testing.T) {
	t.Parallel()

	dim, ok := ParseDimension("body_type")
	require.True(t, ok)
	assert.Equal(t, DimensionBodyType, dim)

	_, ok = ParseDimension("color")
	assert.False(t, ok)
}
