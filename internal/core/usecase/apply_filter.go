package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/cascade"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/filterurl"
	"storefront-service/internal/core/port"
	usecases_port "storefront-service/internal/core/port/usecases_port"
)

// ApplyFilterUseCase applies one sidebar interaction to the state encoded in
// a storefront URL and returns the next canonical URL.
type ApplyFilterUseCase struct {
	decode usecases_port.DecodeFiltersUseCase
}

func NewApplyFilterUseCase(decode usecases_port.DecodeFiltersUseCase) *ApplyFilterUseCase {
	return &ApplyFilterUseCase{decode: decode}
}

func (uc *ApplyFilterUseCase) Execute(ctx context.Context, req domain.FilterMutation) (*domain.FilterMutationResult, error) {
	const op = "usecase.ApplyFilter.Execute"

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ApplyFilter",
		"facet":    req.Facet,
		"action":   req.Action,
	})

	ucLogger.Info("Use case started", nil)

	action, err := cascade.ParseAction(req.Action)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	raw := strings.TrimSpace(req.URL)
	if raw == "" {
		raw = "/" + filterurl.Root
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: url %q", op, domain.ErrInvalidArgument, req.URL)
	}
	state := uc.decode.Execute(ctx, u.EscapedPath(), u.Query())

	var next domain.FilterState
	if dim, ok := domain.ParseDimension(req.Facet); ok {
		next = cascade.Apply(state, dim, action, req.Values)
	} else if r, ok := cascade.ParseRange(req.Facet); ok {
		value := ""
		if action != cascade.ActionClear && action != cascade.ActionRemove && len(req.Values) > 0 {
			value = req.Values[0]
		}
		next = cascade.SetRange(state, r, value)
	} else {
		return nil, fmt.Errorf("%s: %w: unknown facet %q", op, domain.ErrInvalidArgument, req.Facet)
	}

	next = next.Normalize()
	result := &domain.FilterMutationResult{Filters: next, URL: filterurl.Generate(next)}

	ucLogger.Info("Use case finished successfully", port.Fields{"url": result.URL})
	return result, nil
}
