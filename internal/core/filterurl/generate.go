// Package filterurl maps a FilterState to its canonical storefront URL and
// decodes storefront URLs back into a partial FilterState.
package filterurl

import (
	"net/url"
	"strings"

	"github.com/samber/lo"

	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/slug"
)

// Root is the fixed first path segment of every inventory URL.
const Root = "cars"

// Query parameter names that are not facet dimensions.
const (
	ParamYearMin    = "year_min"
	ParamYearMax    = "year_max"
	ParamPriceMin   = "price_min"
	ParamPriceMax   = "price_max"
	ParamPaymentMin = "payment_min"
	ParamPaymentMax = "payment_max"
)

type param struct {
	name  string
	value func(domain.FilterState) []string
}

func listParam(dim domain.FacetDimension) param {
	return param{name: string(dim), value: func(s domain.FilterState) []string { return s.Values(dim) }}
}

func scalarParam(name string, get func(domain.FilterState) string) param {
	return param{name: name, value: func(s domain.FilterState) []string {
		if v := get(s); v != "" {
			return []string{v}
		}
		return nil
	}}
}

// queryOrder lists every parameter after make and model in emission order.
// Year is handled separately because of range collapsing.
var queryOrder = []param{
	listParam(domain.DimensionCondition),
	listParam(domain.DimensionBodyType),
	scalarParam(ParamPriceMin, func(s domain.FilterState) string { return s.PriceMin }),
	scalarParam(ParamPriceMax, func(s domain.FilterState) string { return s.PriceMax }),
	listParam(domain.DimensionCity),
	listParam(domain.DimensionDealer),
	listParam(domain.DimensionDriveType),
	listParam(domain.DimensionExteriorColor),
	listParam(domain.DimensionFuelType),
	listParam(domain.DimensionInteriorColor),
	listParam(domain.DimensionMileage),
	scalarParam(ParamPaymentMin, func(s domain.FilterState) string { return s.PaymentMin }),
	scalarParam(ParamPaymentMax, func(s domain.FilterState) string { return s.PaymentMax }),
	listParam(domain.DimensionSellerType),
	listParam(domain.DimensionState),
	listParam(domain.DimensionTransmission),
}

var numericParams = map[string]bool{
	ParamPriceMin: true, ParamPriceMax: true,
	ParamYearMin: true, ParamYearMax: true,
	ParamPaymentMin: true, ParamPaymentMax: true,
}

// Generate renders the canonical URL of a filter state. A single make is
// embedded in the path, and a single model under it; every other facet is
// a comma-joined list of slugs in a fixed parameter order. Empty facets are
// never emitted and the result has no trailing "?".
func Generate(state domain.FilterState) string {
	makes := slugs(state.Make)
	models := slugs(state.Model)

	path := "/" + Root
	var q query

	if len(makes) == 1 {
		path += "/" + makes[0]
		if len(models) == 1 {
			path += "/" + models[0]
			models = nil
		}
		makes = nil
	}
	q.add(string(domain.DimensionMake), makes)
	q.add(string(domain.DimensionModel), models)
	q.add(string(domain.DimensionTrim), slugs(state.Trim))
	q.addYear(state)

	for _, p := range queryOrder {
		values := p.value(state)
		if numericParams[p.name] {
			q.addNumber(p.name, values)
			continue
		}
		q.add(p.name, slugs(values))
	}

	return path + q.String()
}

// GenerateQuery is Generate without the path: the bare "?..." part, or "".
func GenerateQuery(state domain.FilterState) string {
	u := Generate(state)
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[i:]
	}
	return ""
}

type query struct {
	b strings.Builder
}

func (q *query) add(name string, values []string) {
	if len(values) == 0 {
		return
	}
	if q.b.Len() == 0 {
		q.b.WriteByte('?')
	} else {
		q.b.WriteByte('&')
	}
	q.b.WriteString(name)
	q.b.WriteByte('=')
	q.b.WriteString(strings.Join(values, ","))
}

func (q *query) addNumber(name string, values []string) {
	values = lo.FilterMap(values, func(v string, _ int) (string, bool) {
		v = strings.TrimSpace(v)
		return url.QueryEscape(v), v != "" && domain.IsNumeric(v)
	})
	q.add(name, values)
}

// addYear emits the year list, then the range. Both bounds collapse into a
// single year=min-max token unless the year list already owns "year".
func (q *query) addYear(s domain.FilterState) {
	years := slugs(s.Year)
	low, high := strings.TrimSpace(s.YearMin), strings.TrimSpace(s.YearMax)
	if low != "" && !domain.IsNumeric(low) {
		low = ""
	}
	if high != "" && !domain.IsNumeric(high) {
		high = ""
	}

	if len(years) == 0 && low != "" && high != "" {
		q.add(string(domain.DimensionYear), []string{url.QueryEscape(low) + "-" + url.QueryEscape(high)})
		return
	}
	q.add(string(domain.DimensionYear), years)
	q.addNumber(ParamYearMin, []string{low})
	q.addNumber(ParamYearMax, []string{high})
}

func (q *query) String() string {
	return q.b.String()
}

func slugs(values []string) []string {
	out := lo.FilterMap(values, func(v string, _ int) (string, bool) {
		s := slug.Slugify(v)
		return s, s != ""
	})
	return lo.Uniq(out)
}
