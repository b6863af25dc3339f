package usecase

import (
	"context"
	"net/url"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/filterurl"
	"storefront-service/internal/core/port"
	usecases_port "storefront-service/internal/core/port/usecases_port"
	"storefront-service/internal/core/slug"
)

// DecodeFiltersUseCase parses a storefront URL and restores the catalog's
// spelling of every decoded value ("F 150" -> "F-150").
type DecodeFiltersUseCase struct {
	facets usecases_port.ResolveFacetOptionsUseCase
}

// NewDecodeFiltersUseCase accepts a nil resolver; decoded values are then
// kept as unslugified.
func NewDecodeFiltersUseCase(facets usecases_port.ResolveFacetOptionsUseCase) *DecodeFiltersUseCase {
	return &DecodeFiltersUseCase{facets: facets}
}

func (uc *DecodeFiltersUseCase) Execute(ctx context.Context, path string, query url.Values) domain.FilterState {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "DecodeFilters", "path": path})

	state, issues := filterurl.ParseDetailed(path, query)
	for _, issue := range issues {
		ucLogger.Warn("Dropped malformed URL fragment", port.Fields{"error": issue.Error()})
	}

	if uc.facets != nil && !state.IsEmpty() {
		universe, err := uc.facets.Universe(ctx)
		if err != nil {
			ucLogger.Warn("Vocabulary unavailable, keeping decoded spelling", port.Fields{"error": err.Error()})
		} else {
			state = Canonicalize(state, universe)
		}
	}

	return state.Normalize()
}

// Canonicalize replaces every list value with the universe's spelling of the
// same slug, matching option names first and option ids second. Values the
// universe does not know are kept.
func Canonicalize(state domain.FilterState, universe domain.FacetOptionSet) domain.FilterState {
	out := state.Clone()
	for _, dim := range domain.AllDimensions {
		if dim == domain.DimensionMileage || !state.HasSelection(dim) {
			continue
		}
		spelling := make(map[string]string, len(universe[dim]))
		for _, opt := range universe[dim] {
			s := slug.Slugify(opt.Name)
			if _, seen := spelling[s]; !seen {
				spelling[s] = opt.Name
			}
		}
		// dealers selected by id keep the id
		for _, opt := range universe[dim] {
			if opt.ID == "" {
				continue
			}
			s := slug.Slugify(opt.ID)
			if _, seen := spelling[s]; !seen {
				spelling[s] = opt.ID
			}
		}

		values := state.Values(dim)
		canonical := make([]string, 0, len(values))
		for _, v := range values {
			if name, ok := spelling[slug.Slugify(v)]; ok {
				canonical = append(canonical, name)
				continue
			}
			canonical = append(canonical, v)
		}
		out = out.WithValues(dim, canonical)
	}
	return out
}
