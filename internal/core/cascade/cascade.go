// Package cascade enforces the forward-only facet dependencies
// make -> model -> trim after every facet mutation.
package cascade

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/slug"
)

// Action is a facet mutation requested by the storefront UI.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
	ActionToggle Action = "toggle"
	ActionSet    Action = "set"
	ActionClear  Action = "clear"
)

func ParseAction(v string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(v)))
	switch a {
	case ActionAdd, ActionRemove, ActionToggle, ActionSet, ActionClear:
		return a, nil
	}
	return "", fmt.Errorf("%w: unknown facet action %q", domain.ErrInvalidArgument, v)
}

// Enforce compares the state before and after a mutation and clears the
// dependents of whichever parent changed. A make change clears model and
// trim; a model change clears trim. Nothing else cascades.
func Enforce(before, after domain.FilterState) domain.FilterState {
	out := after.Clone()
	if !domain.SameSelection(before.Make, after.Make) {
		out.Model = nil
		out.Trim = nil
		return out
	}
	if !domain.SameSelection(before.Model, after.Model) {
		out.Trim = nil
	}
	return out
}

// Apply runs one mutation against a list or mileage dimension and enforces
// the cascade on the result.
func Apply(state domain.FilterState, dim domain.FacetDimension, action Action, values []string) domain.FilterState {
	current := state.Values(dim)
	var next []string

	switch action {
	case ActionAdd:
		next = append(append([]string{}, current...), values...)
	case ActionRemove:
		next = lo.Reject(current, func(v string, _ int) bool { return containsSlug(values, v) })
	case ActionToggle:
		next = lo.Reject(current, func(v string, _ int) bool { return containsSlug(values, v) })
		for _, v := range values {
			if !containsSlug(current, v) {
				next = append(next, v)
			}
		}
	case ActionSet:
		next = values
	case ActionClear:
		next = nil
	default:
		return state.Clone()
	}

	if dim == domain.DimensionMileage && action != ActionRemove && action != ActionClear && len(values) > 0 {
		// single-select: the latest pick replaces the previous bucket
		next = []string{values[len(values)-1]}
		if action == ActionToggle && containsSlug(current, values[len(values)-1]) {
			next = nil
		}
	}

	return Enforce(state, state.WithValues(dim, next))
}

// Toggle adds the value when absent and removes it when present.
func Toggle(state domain.FilterState, dim domain.FacetDimension, value string) domain.FilterState {
	return Apply(state, dim, ActionToggle, []string{value})
}

// Set replaces the selection of a dimension.
func Set(state domain.FilterState, dim domain.FacetDimension, values ...string) domain.FilterState {
	return Apply(state, dim, ActionSet, values)
}

// Clear removes the selection of a dimension.
func Clear(state domain.FilterState, dim domain.FacetDimension) domain.FilterState {
	return Apply(state, dim, ActionClear, nil)
}

// Range names one numeric bound of FilterState.
type Range string

const (
	RangePriceMin   Range = "price_min"
	RangePriceMax   Range = "price_max"
	RangeYearMin    Range = "year_min"
	RangeYearMax    Range = "year_max"
	RangePaymentMin Range = "payment_min"
	RangePaymentMax Range = "payment_max"
)

func ParseRange(v string) (Range, bool) {
	r := Range(strings.TrimSpace(v))
	switch r {
	case RangePriceMin, RangePriceMax, RangeYearMin, RangeYearMax, RangePaymentMin, RangePaymentMax:
		return r, true
	}
	return "", false
}

// SetRange updates one range bound and re-normalizes the pair. Ranges never
// cascade.
func SetRange(state domain.FilterState, r Range, value string) domain.FilterState {
	out := state.Clone()
	switch r {
	case RangePriceMin:
		out.PriceMin = value
	case RangePriceMax:
		out.PriceMax = value
	case RangeYearMin:
		out.YearMin = value
	case RangeYearMax:
		out.YearMax = value
	case RangePaymentMin:
		out.PaymentMin = value
	case RangePaymentMax:
		out.PaymentMax = value
	}
	return out.Normalize()
}

func containsSlug(values []string, v string) bool {
	s := slug.Slugify(v)
	return lo.ContainsBy(values, func(x string) bool { return slug.Slugify(x) == s })
}
