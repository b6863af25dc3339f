package domain

import (
	"fmt"
	"sort"
	"strings"
)

// FacetOption is one candidate value of a dimension with its match count.
// ID is set when the display name is not a stable key (dealers).
type FacetOption struct {
	Name  string `json:"name"`
	Count uint   `json:"count"`
	ID    string `json:"id,omitempty"`
}

// FacetOptionSet maps each dimension to its options. Sets are immutable once
// handed out; callers that need to modify one must Clone it.
type FacetOptionSet map[FacetDimension][]FacetOption

// NewFacetOptionSet returns a set with an empty, non-nil list for every dimension.
func NewFacetOptionSet() FacetOptionSet {
	set := make(FacetOptionSet, len(AllDimensions))
	for _, dim := range AllDimensions {
		set[dim] = []FacetOption{}
	}
	return set
}

func (s FacetOptionSet) Clone() FacetOptionSet {
	out := make(FacetOptionSet, len(s))
	for dim, opts := range s {
		out[dim] = append([]FacetOption{}, opts...)
	}
	return out
}

// Names returns the option names of a dimension in order.
func (s FacetOptionSet) Names(dim FacetDimension) []string {
	opts := s[dim]
	names := make([]string, len(opts))
	for i, o := range opts {
		names[i] = o.Name
	}
	return names
}

// MergeOptions folds options with identical keys into one, summing counts.
// The key is the ID when present, otherwise the display name. First
// appearance order is kept.
func MergeOptions(opts []FacetOption) []FacetOption {
	out := make([]FacetOption, 0, len(opts))
	index := make(map[string]int, len(opts))
	for _, o := range opts {
		if strings.TrimSpace(o.Name) == "" || o.Count == 0 {
			continue
		}
		key := "name:" + o.Name
		if o.ID != "" {
			key = "id:" + o.ID
		}
		if i, ok := index[key]; ok {
			out[i].Count += o.Count
			continue
		}
		index[key] = len(out)
		out = append(out, o)
	}
	return out
}

// SortOptions orders make alphabetically and every other dimension by
// descending count, ties broken by name. Mileage keeps bucket order.
func SortOptions(dim FacetDimension, opts []FacetOption) {
	switch dim {
	case DimensionMake:
		sort.SliceStable(opts, func(i, j int) bool {
			return lessName(opts[i], opts[j])
		})
	case DimensionMileage:
		rank := make(map[string]int, len(MileageBuckets))
		for i, b := range MileageBuckets {
			rank[b.Key] = i
		}
		sort.SliceStable(opts, func(i, j int) bool {
			return rank[opts[i].Name] < rank[opts[j].Name]
		})
	default:
		sort.SliceStable(opts, func(i, j int) bool {
			if opts[i].Count != opts[j].Count {
				return opts[i].Count > opts[j].Count
			}
			return lessName(opts[i], opts[j])
		})
	}
}

func lessName(a, b FacetOption) bool {
	la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if la != lb {
		return la < lb
	}
	return a.ID < b.ID
}

// SelfPolicy decides whether a dimension's own selection narrows its options.
type SelfPolicy string

const (
	// ExcludeSelf computes a selected dimension from every filter except its
	// own, so sibling values stay visible.
	ExcludeSelf SelfPolicy = "exclude"
	// IncludeSelf computes every dimension from the fully filtered set.
	IncludeSelf SelfPolicy = "include"
)

func ParseSelfPolicy(v string) (SelfPolicy, error) {
	switch SelfPolicy(strings.ToLower(strings.TrimSpace(v))) {
	case "", ExcludeSelf:
		return ExcludeSelf, nil
	case IncludeSelf:
		return IncludeSelf, nil
	}
	return "", fmt.Errorf("%w: unknown facet self policy %q", ErrInvalidArgument, v)
}
