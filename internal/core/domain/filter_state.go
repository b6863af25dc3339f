package domain

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"storefront-service/internal/core/slug"
)

// FacetDimension names a filterable dimension. The value doubles as the URL
// query parameter and as the key of FacetOptionSet in responses.
type FacetDimension string

const (
	DimensionMake          FacetDimension = "make"
	DimensionModel         FacetDimension = "model"
	DimensionTrim          FacetDimension = "trim"
	DimensionYear          FacetDimension = "year"
	DimensionCondition     FacetDimension = "condition"
	DimensionBodyType      FacetDimension = "body_type"
	DimensionDriveType     FacetDimension = "drivetrain"
	DimensionTransmission  FacetDimension = "transmission"
	DimensionFuelType      FacetDimension = "fuel_type"
	DimensionExteriorColor FacetDimension = "exterior_color"
	DimensionInteriorColor FacetDimension = "interior_color"
	DimensionSellerType    FacetDimension = "seller_type"
	DimensionDealer        FacetDimension = "dealer"
	DimensionCity          FacetDimension = "city"
	DimensionState         FacetDimension = "state"
	DimensionMileage       FacetDimension = "mileage"
)

// AllDimensions lists every dimension the facet resolver reports on.
var AllDimensions = []FacetDimension{
	DimensionMake, DimensionModel, DimensionTrim, DimensionYear, DimensionCondition,
	DimensionBodyType, DimensionDriveType, DimensionTransmission, DimensionFuelType,
	DimensionExteriorColor, DimensionInteriorColor, DimensionSellerType, DimensionDealer,
	DimensionCity, DimensionState, DimensionMileage,
}

// ParseDimension maps a wire name to a known dimension.
func ParseDimension(name string) (FacetDimension, bool) {
	d := FacetDimension(strings.TrimSpace(name))
	return d, lo.Contains(AllDimensions, d)
}

// FilterState holds every active facet of one search. List facets store
// display strings; the slug form is always derived. A zero FilterState
// means "no filters".
type FilterState struct {
	Make          []string `json:"make,omitempty"`
	Model         []string `json:"model,omitempty"`
	Trim          []string `json:"trim,omitempty"`
	Year          []string `json:"year,omitempty"`
	Condition     []string `json:"condition,omitempty"`
	VehicleType   []string `json:"vehicle_type,omitempty"`
	DriveType     []string `json:"drive_type,omitempty"`
	Transmission  []string `json:"transmission,omitempty"`
	FuelType      []string `json:"fuel_type,omitempty"`
	ExteriorColor []string `json:"exterior_color,omitempty"`
	InteriorColor []string `json:"interior_color,omitempty"`
	SellerType    []string `json:"seller_type,omitempty"`
	Dealer        []string `json:"dealer,omitempty"`
	City          []string `json:"city,omitempty"`
	State         []string `json:"state,omitempty"`

	MileageBucket string `json:"mileage,omitempty"`
	PriceMin      string `json:"price_min,omitempty"`
	PriceMax      string `json:"price_max,omitempty"`
	YearMin       string `json:"year_min,omitempty"`
	YearMax       string `json:"year_max,omitempty"`
	PaymentMin    string `json:"payment_min,omitempty"`
	PaymentMax    string `json:"payment_max,omitempty"`
}

func (s *FilterState) listField(dim FacetDimension) *[]string {
	switch dim {
	case DimensionMake:
		return &s.Make
	case DimensionModel:
		return &s.Model
	case DimensionTrim:
		return &s.Trim
	case DimensionYear:
		return &s.Year
	case DimensionCondition:
		return &s.Condition
	case DimensionBodyType:
		return &s.VehicleType
	case DimensionDriveType:
		return &s.DriveType
	case DimensionTransmission:
		return &s.Transmission
	case DimensionFuelType:
		return &s.FuelType
	case DimensionExteriorColor:
		return &s.ExteriorColor
	case DimensionInteriorColor:
		return &s.InteriorColor
	case DimensionSellerType:
		return &s.SellerType
	case DimensionDealer:
		return &s.Dealer
	case DimensionCity:
		return &s.City
	case DimensionState:
		return &s.State
	}
	return nil
}

// Values returns the selection of a dimension. Mileage yields at most one value.
func (s FilterState) Values(dim FacetDimension) []string {
	if dim == DimensionMileage {
		if s.MileageBucket == "" {
			return nil
		}
		return []string{s.MileageBucket}
	}
	if f := s.listField(dim); f != nil {
		return *f
	}
	return nil
}

// HasSelection reports whether the dimension currently filters the candidate set.
func (s FilterState) HasSelection(dim FacetDimension) bool {
	return len(s.Values(dim)) > 0
}

// WithValues returns a copy of s with the dimension's selection replaced.
// Values are trimmed and de-duplicated by slug; the first spelling wins.
func (s FilterState) WithValues(dim FacetDimension, values []string) FilterState {
	out := s.Clone()
	cleaned := cleanValues(values)
	if dim == DimensionMileage {
		out.MileageBucket = ""
		if len(cleaned) > 0 {
			out.MileageBucket = cleaned[0]
		}
		return out
	}
	if f := out.listField(dim); f != nil {
		*f = cleaned
	}
	return out
}

// Without returns a copy of s with the dimension's selection removed.
func (s FilterState) Without(dim FacetDimension) FilterState {
	return s.WithValues(dim, nil)
}

// IsEmpty reports whether no facet or range is active.
func (s FilterState) IsEmpty() bool {
	for _, dim := range AllDimensions {
		if s.HasSelection(dim) {
			return false
		}
	}
	return s.PriceMin == "" && s.PriceMax == "" &&
		s.YearMin == "" && s.YearMax == "" &&
		s.PaymentMin == "" && s.PaymentMax == ""
}

// Clone deep-copies the list facets.
func (s FilterState) Clone() FilterState {
	out := s
	for _, dim := range AllDimensions {
		if f := out.listField(dim); f != nil && *f != nil {
			*f = append([]string(nil), (*f)...)
		}
	}
	return out
}

// Normalize de-duplicates list facets and swaps inverted range pairs. Range
// values that are not numbers are dropped.
func (s FilterState) Normalize() FilterState {
	out := s.Clone()
	for _, dim := range AllDimensions {
		if f := out.listField(dim); f != nil {
			*f = cleanValues(*f)
		}
	}
	out.MileageBucket = strings.TrimSpace(out.MileageBucket)
	if out.MileageBucket != "" && !IsMileageBucket(out.MileageBucket) {
		out.MileageBucket = ""
	}
	out.PriceMin, out.PriceMax = normalizeRange(out.PriceMin, out.PriceMax)
	out.YearMin, out.YearMax = normalizeRange(out.YearMin, out.YearMax)
	out.PaymentMin, out.PaymentMax = normalizeRange(out.PaymentMin, out.PaymentMax)
	return out
}

// Merge lays every facet set in partial over base.
func Merge(base, partial FilterState) FilterState {
	out := base.Clone()
	for _, dim := range AllDimensions {
		if partial.HasSelection(dim) {
			out = out.WithValues(dim, partial.Values(dim))
		}
	}
	for _, pair := range [][2]*string{
		{&out.PriceMin, &partial.PriceMin},
		{&out.PriceMax, &partial.PriceMax},
		{&out.YearMin, &partial.YearMin},
		{&out.YearMax, &partial.YearMax},
		{&out.PaymentMin, &partial.PaymentMin},
		{&out.PaymentMax, &partial.PaymentMax},
	} {
		if *pair[1] != "" {
			*pair[0] = *pair[1]
		}
	}
	return out
}

// SameSelection compares two selections as slug sets.
func SameSelection(a, b []string) bool {
	as := lo.Uniq(lo.Map(a, func(v string, _ int) string { return slug.Slugify(v) }))
	bs := lo.Uniq(lo.Map(b, func(v string, _ int) string { return slug.Slugify(v) }))
	return len(as) == len(bs) && lo.Every(as, bs)
}

// IsNumeric reports whether a range bound parses as a number.
func IsNumeric(v string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	return err == nil
}

func cleanValues(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	trimmed := lo.FilterMap(values, func(v string, _ int) (string, bool) {
		v = strings.TrimSpace(v)
		return v, v != "" && slug.Slugify(v) != ""
	})
	out := lo.UniqBy(trimmed, slug.Slugify)
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeRange(min, max string) (string, string) {
	min, max = strings.TrimSpace(min), strings.TrimSpace(max)
	if min != "" && !IsNumeric(min) {
		min = ""
	}
	if max != "" && !IsNumeric(max) {
		max = ""
	}
	if min == "" || max == "" {
		return min, max
	}
	low, _ := strconv.ParseFloat(min, 64)
	high, _ := strconv.ParseFloat(max, 64)
	if low > high {
		return max, min
	}
	return min, max
}
