package domain

import (
	"strconv"
	"strings"

	"storefront-service/internal/core/slug"
)

// Matches reports whether an item satisfies every active facet and range.
// List facets compare by slug, so spelling differences never exclude an item.
func (s FilterState) Matches(item ItemSummary) bool {
	for _, dim := range AllDimensions {
		if dim == DimensionMileage || !s.HasSelection(dim) {
			continue
		}
		name, id := item.FacetValue(dim)
		if !matchesAny(s.Values(dim), name, id) {
			return false
		}
	}

	if s.MileageBucket != "" {
		if b, ok := FindMileageBucket(s.MileageBucket); ok && !b.Contains(item.Mileage) {
			return false
		}
	}

	return inRange(item.Price, s.PriceMin, s.PriceMax) &&
		inRange(float64(item.Year), s.YearMin, s.YearMax) &&
		inRange(item.MonthlyPayment, s.PaymentMin, s.PaymentMax)
}

func matchesAny(selected []string, name, id string) bool {
	if name == "" && id == "" {
		return false
	}
	nameSlug, idSlug := slug.Slugify(name), slug.Slugify(id)
	for _, v := range selected {
		s := slug.Slugify(v)
		if s == "" {
			continue
		}
		if s == nameSlug || s == idSlug {
			return true
		}
	}
	return false
}

func inRange(v float64, min, max string) bool {
	if low, err := strconv.ParseFloat(strings.TrimSpace(min), 64); err == nil && v < low {
		return false
	}
	if high, err := strconv.ParseFloat(strings.TrimSpace(max), 64); err == nil && v > high {
		return false
	}
	return true
}
