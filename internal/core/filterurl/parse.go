package filterurl

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/slug"
)

var (
	yearRange = regexp.MustCompile(`^(\d+(?:\.\d+)?)-(\d+(?:\.\d+)?)$`)
	yearValue = regexp.MustCompile(`^\d{4}$`)
)

// Parse decodes a storefront path and query into a partial FilterState.
// Fragments that cannot be decoded are dropped; use ParseDetailed to see them.
func Parse(path string, query url.Values) domain.FilterState {
	state, _ := ParseDetailed(path, query)
	return state
}

// ParseURL splits a raw "/cars/...?..." URL and parses it.
func ParseURL(raw string) (domain.FilterState, []error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return domain.FilterState{}, []error{fmt.Errorf("%w: %q: %v", domain.ErrMalformedFragment, raw, err)}
	}
	return ParseDetailed(u.EscapedPath(), u.Query())
}

// ParseDetailed is Parse that also reports every dropped fragment, each
// wrapping domain.ErrMalformedFragment. It never fails as a whole.
func ParseDetailed(path string, query url.Values) (domain.FilterState, []error) {
	var (
		state  domain.FilterState
		issues []error
	)
	malformed := func(param, value, reason string) {
		issues = append(issues, fmt.Errorf("%w: %s=%q: %s", domain.ErrMalformedFragment, param, value, reason))
	}

	for _, dim := range domain.AllDimensions {
		switch dim {
		case domain.DimensionYear, domain.DimensionMileage:
			continue
		}
		if values := listValues(query, string(dim)); len(values) > 0 {
			state = state.WithValues(dim, values)
		}
	}

	// year is either a min-max range or a list of model years
	if raw := joined(query, string(domain.DimensionYear)); raw != "" {
		if m := yearRange.FindStringSubmatch(raw); m != nil {
			state.YearMin, state.YearMax = m[1], m[2]
		} else {
			var years []string
			for _, token := range splitTokens(raw) {
				if !yearValue.MatchString(token) {
					malformed(string(domain.DimensionYear), token, "not a model year")
					continue
				}
				years = append(years, token)
			}
			state = state.WithValues(domain.DimensionYear, years)
		}
	}

	if raw := joined(query, string(domain.DimensionMileage)); raw != "" {
		key := slug.Slugify(raw)
		if domain.IsMileageBucket(key) {
			state.MileageBucket = key
		} else {
			malformed(string(domain.DimensionMileage), raw, "unknown mileage bucket")
		}
	}

	for _, target := range []struct {
		name string
		dst  *string
	}{
		{ParamYearMin, &state.YearMin},
		{ParamYearMax, &state.YearMax},
		{ParamPriceMin, &state.PriceMin},
		{ParamPriceMax, &state.PriceMax},
		{ParamPaymentMin, &state.PaymentMin},
		{ParamPaymentMax, &state.PaymentMax},
	} {
		raw := strings.TrimSpace(query.Get(target.name))
		if raw == "" {
			continue
		}
		if !domain.IsNumeric(raw) {
			malformed(target.name, raw, "not a number")
			continue
		}
		*target.dst = raw
	}

	makeSeg, modelSeg, pathIssues := parsePath(path)
	issues = append(issues, pathIssues...)
	if makeSeg != "" {
		state.Make = []string{makeSeg}
	}
	if modelSeg != "" {
		state.Model = []string{modelSeg}
	}

	return state, issues
}

// parsePath returns the decoded make and model path segments. Anything not
// rooted at /cars carries no facets.
func parsePath(path string) (makeName, modelName string, issues []error) {
	var segments []string
	for _, raw := range strings.Split(path, "/") {
		if raw == "" {
			continue
		}
		seg, err := url.PathUnescape(raw)
		if err != nil {
			issues = append(issues, fmt.Errorf("%w: path segment %q: %v", domain.ErrMalformedFragment, raw, err))
			seg = ""
		}
		segments = append(segments, seg)
	}

	if len(segments) == 0 {
		return "", "", issues
	}
	if slug.Slugify(segments[0]) != Root {
		issues = append(issues, fmt.Errorf("%w: path %q is not under /%s", domain.ErrMalformedFragment, path, Root))
		return "", "", issues
	}
	if len(segments) > 3 {
		issues = append(issues, fmt.Errorf("%w: extra path segments in %q", domain.ErrMalformedFragment, path))
	}
	if len(segments) > 1 {
		makeName = decode(segments[1])
	}
	if len(segments) > 2 && makeName != "" {
		modelName = decode(segments[2])
	}
	return makeName, modelName, issues
}

// listValues gathers every occurrence of a parameter, split on commas and
// unslugified.
func listValues(query url.Values, name string) []string {
	var out []string
	for _, token := range splitTokens(joined(query, name)) {
		if v := decode(token); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func joined(query url.Values, name string) string {
	return strings.TrimSpace(strings.Join(query[name], ","))
}

func splitTokens(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func decode(token string) string {
	return slug.Unslugify(slug.Slugify(token))
}
