package filterurl

import (
	"fmt"
	"net/url"
	"strconv"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/slug"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		state domain.FilterState
		want  string
	}{
		{
			name:  "empty state",
			state: domain.FilterState{},
			want:  "/cars",
		},
		{
			name:  "make model trim and year",
			state: domain.FilterState{Make: []string{"Toyota"}, Model: []string{"Camry"}, Trim: []string{"LE"}, Year: []string{"2022"}},
			want:  "/cars/toyota/camry?trim=le&year=2022",
		},
		{
			name:  "punctuated model",
			state: domain.FilterState{Make: []string{"Ford"}, Model: []string{"F-150"}, Condition: []string{"Used"}},
			want:  "/cars/ford/f-150?condition=used",
		},
		{
			name:  "multi make never embeds",
			state: domain.FilterState{Make: []string{"Toyota", "Honda", "Ford"}, VehicleType: []string{"SUV / Crossover"}},
			want:  "/cars?make=toyota,honda,ford&body_type=suv-crossover",
		},
		{
			name:  "single make with several models",
			state: domain.FilterState{Make: []string{"Toyota"}, Model: []string{"Camry", "Corolla"}},
			want:  "/cars/toyota?model=camry,corolla",
		},
		{
			name:  "model without make stays in query",
			state: domain.FilterState{Model: []string{"Civic"}},
			want:  "/cars?model=civic",
		},
		{
			name:  "year range collapses",
			state: domain.FilterState{YearMin: "2018", YearMax: "2021"},
			want:  "/cars?year=2018-2021",
		},
		{
			name:  "single year bound",
			state: domain.FilterState{YearMax: "2021"},
			want:  "/cars?year_max=2021",
		},
		{
			name:  "year list keeps range bounds apart",
			state: domain.FilterState{Year: []string{"2020"}, YearMin: "2018", YearMax: "2021"},
			want:  "/cars?year=2020&year_min=2018&year_max=2021",
		},
		{
			name: "fixed parameter order",
			state: domain.FilterState{
				Transmission:  []string{"Automatic"},
				State:         []string{"TX"},
				SellerType:    []string{"Dealer"},
				PaymentMax:    "600",
				PaymentMin:    "200",
				MileageBucket: "under-30000",
				InteriorColor: []string{"Black"},
				FuelType:      []string{"Hybrid"},
				ExteriorColor: []string{"Pearl White"},
				DriveType:     []string{"AWD"},
				Dealer:        []string{"Metro Motors"},
				City:          []string{"Austin"},
				PriceMax:      "40000",
				PriceMin:      "10000",
				VehicleType:   []string{"Sedan"},
				Condition:     []string{"Certified"},
			},
			want: "/cars?condition=certified&body_type=sedan&price_min=10000&price_max=40000&city=austin" +
				"&dealer=metro-motors&drivetrain=awd&exterior_color=pearl-white&fuel_type=hybrid" +
				"&interior_color=black&mileage=under-30000&payment_min=200&payment_max=600" +
				"&seller_type=dealer&state=tx&transmission=automatic",
		},
		{
			name:  "blank and duplicate values are skipped",
			state: domain.FilterState{Make: []string{"", "  "}, Condition: []string{"Used", "used", "!!"}, PriceMin: "abc"},
			want:  "/cars?condition=used",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Generate(tt.state))
		})
	}
}

func TestGenerateNeverEmitsEmptyParameters(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(7)
	for i := 0; i < 200; i++ {
		u := Generate(randomState(faker))
		parsed, err := url.Parse(u)
		require.NoError(t, err)

		assert.NotContains(t, u, "=&")
		assert.NotContains(t, u, ",,")
		assert.NotEqual(t, byte('?'), u[len(u)-1])
		for name, values := range parsed.Query() {
			for _, v := range values {
				assert.NotEmpty(t, v, name)
			}
		}
	}
}

func TestGenerateQuery(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", GenerateQuery(domain.FilterState{Make: []string{"Toyota"}}))
	assert.Equal(t, "?condition=new", GenerateQuery(domain.FilterState{Condition: []string{"New"}}))
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		path  string
		query string
		check func(t *testing.T, got domain.FilterState, issues []error)
	}{
		{
			name: "path make and model",
			path: "/cars/ford/f-150",
			check: func(t *testing.T, got domain.FilterState, issues []error) {
				assert.Equal(t, []string{"Ford"}, got.Make)
				assert.Equal(t, []string{"F 150"}, got.Model)
				assert.Empty(t, issues)
			},
		},
		{
			name:  "path wins over query make and model",
			path:  "/cars/toyota/camry",
			query: "make=honda&model=civic&trim=le",
			check: func(t *testing.T, got domain.FilterState, _ []error) {
				assert.Equal(t, []string{"Toyota"}, got.Make)
				assert.Equal(t, []string{"Camry"}, got.Model)
				assert.Equal(t, []string{"Le"}, got.Trim)
			},
		},
		{
			name:  "comma lists and repeated parameters",
			path:  "/cars",
			query: "make=toyota,honda&make=ford&body_type=suv-crossover",
			check: func(t *testing.T, got domain.FilterState, _ []error) {
				assert.Equal(t, []string{"Toyota", "Honda", "Ford"}, got.Make)
				assert.Equal(t, []string{"Suv Crossover"}, got.VehicleType)
			},
		},
		{
			name:  "year range",
			path:  "/cars",
			query: "year=2018-2021",
			check: func(t *testing.T, got domain.FilterState, _ []error) {
				assert.Equal(t, "2018", got.YearMin)
				assert.Equal(t, "2021", got.YearMax)
				assert.Empty(t, got.Year)
			},
		},
		{
			name:  "year list drops junk",
			path:  "/cars",
			query: "year=2020,abcd,2021",
			check: func(t *testing.T, got domain.FilterState, issues []error) {
				assert.Equal(t, []string{"2020", "2021"}, got.Year)
				require.Len(t, issues, 1)
				assert.ErrorIs(t, issues[0], domain.ErrMalformedFragment)
			},
		},
		{
			name:  "malformed numbers fall back to empty",
			path:  "/cars",
			query: "price_min=cheap&price_max=25000&mileage=tons",
			check: func(t *testing.T, got domain.FilterState, issues []error) {
				assert.Empty(t, got.PriceMin)
				assert.Equal(t, "25000", got.PriceMax)
				assert.Empty(t, got.MileageBucket)
				assert.Len(t, issues, 2)
			},
		},
		{
			name:  "unknown parameters are ignored",
			path:  "/cars",
			query: "utm_source=mail&color=red&sort=price_asc",
			check: func(t *testing.T, got domain.FilterState, issues []error) {
				assert.True(t, got.IsEmpty())
				assert.Empty(t, issues)
			},
		},
		{
			name:  "foreign root carries no path facets",
			path:  "/trucks/ford",
			query: "condition=new",
			check: func(t *testing.T, got domain.FilterState, issues []error) {
				assert.Empty(t, got.Make)
				assert.Equal(t, []string{"New"}, got.Condition)
				assert.Len(t, issues, 1)
			},
		},
		{
			name: "bad escape in path segment",
			path: "/cars/%zz/camry",
			check: func(t *testing.T, got domain.FilterState, issues []error) {
				assert.Empty(t, got.Make)
				assert.Empty(t, got.Model)
				assert.NotEmpty(t, issues)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			got, issues := ParseDetailed(tt.path, q)
			tt.check(t, got, issues)
		})
	}
}

func TestParseURL(t *testing.T) {
	t.Parallel()

	got, issues := ParseURL("/cars/toyota/camry?trim=le&year=2022")
	assert.Empty(t, issues)
	assert.Equal(t, []string{"Toyota"}, got.Make)
	assert.Equal(t, []string{"Camry"}, got.Model)
	assert.Equal(t, []string{"Le"}, got.Trim)
	assert.Equal(t, []string{"2022"}, got.Year)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(42)
	for i := 0; i < 500; i++ {
		state := randomState(faker)
		u := Generate(state)

		parsed, issues := ParseURL(u)
		require.Empty(t, issues, u)

		for _, dim := range domain.AllDimensions {
			assert.ElementsMatch(t, slugSet(state.Values(dim)), slugSet(parsed.Values(dim)), "%s in %s", dim, u)
		}
		assert.Equal(t, state.PriceMin, parsed.PriceMin, u)
		assert.Equal(t, state.PriceMax, parsed.PriceMax, u)
		assert.Equal(t, state.YearMin, parsed.YearMin, u)
		assert.Equal(t, state.YearMax, parsed.YearMax, u)
		assert.Equal(t, state.PaymentMin, parsed.PaymentMin, u)
		assert.Equal(t, state.PaymentMax, parsed.PaymentMax, u)

		// the decoded state is already canonical
		assert.Equal(t, u, Generate(parsed))
	}
}

func TestRoundTripDealerID(t *testing.T) {
	t.Parallel()

	u := Generate(domain.FilterState{Dealer: []string{"D-1"}})
	assert.Equal(t, "/cars?dealer=d-1", u)

	parsed, issues := ParseURL(u)
	require.Empty(t, issues)
	require.Len(t, parsed.Dealer, 1)
	assert.Equal(t, "d-1", slug.Slugify(parsed.Dealer[0]))
	assert.Equal(t, u, Generate(parsed))
}

func slugSet(values []string) []string {
	return lo.Uniq(lo.FilterMap(values, func(v string, _ int) (string, bool) {
		s := slug.Slugify(v)
		return s, s != ""
	}))
}

func randomState(f *gofakeit.Faker) domain.FilterState {
	words := func(n int, gen func() string) []string {
		out := make([]string, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, gen())
		}
		return out
	}
	maybe := func(gen func() string) string {
		if f.Bool() {
			return gen()
		}
		return ""
	}
	number := func(min, max int) func() string {
		return func() string { return strconv.Itoa(f.IntRange(min, max)) }
	}
	year := func() string { return strconv.Itoa(f.IntRange(1995, 2025)) }
	dealerRef := func() string {
		if f.Bool() {
			return fmt.Sprintf("D-%03d", f.IntRange(1, 999))
		}
		return f.Company()
	}

	s := domain.FilterState{
		Make:          words(f.IntRange(0, 3), f.CarMaker),
		Model:         words(f.IntRange(0, 3), f.CarModel),
		Trim:          words(f.IntRange(0, 2), func() string { return f.RandomString([]string{"LE", "XSE", "Sport Touring", "EX-L", "Limited"}) }),
		Year:          words(f.IntRange(0, 2), year),
		Condition:     words(f.IntRange(0, 2), func() string { return f.RandomString([]string{"New", "Used", "Certified"}) }),
		VehicleType:   words(f.IntRange(0, 2), f.CarType),
		DriveType:     words(f.IntRange(0, 1), func() string { return f.RandomString([]string{"AWD", "FWD", "RWD", "4WD"}) }),
		Transmission:  words(f.IntRange(0, 1), f.CarTransmissionType),
		FuelType:      words(f.IntRange(0, 2), f.CarFuelType),
		ExteriorColor: words(f.IntRange(0, 2), f.Color),
		InteriorColor: words(f.IntRange(0, 2), f.Color),
		SellerType:    words(f.IntRange(0, 1), func() string { return f.RandomString([]string{"Dealer", "Private Seller"}) }),
		Dealer:        words(f.IntRange(0, 2), dealerRef),
		City:          words(f.IntRange(0, 2), f.City),
		State:         words(f.IntRange(0, 2), f.StateAbr),

		PriceMin:   maybe(number(1000, 20000)),
		PriceMax:   maybe(number(20001, 90000)),
		YearMin:    maybe(number(1995, 2010)),
		YearMax:    maybe(number(2011, 2025)),
		PaymentMin: maybe(number(100, 400)),
		PaymentMax: maybe(number(401, 1500)),
	}
	if f.Bool() {
		s.MileageBucket = f.RandomString([]string{"under-15000", "under-30000", "under-60000", "under-100000", "over-100000"})
	}
	return s.Normalize()
}
