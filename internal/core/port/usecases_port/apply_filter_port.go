package usecases_port

import (
	"context"

	"storefront-service/internal/core/domain"
)

type ApplyFilterUseCase interface {
	Execute(ctx context.Context, req domain.FilterMutation) (*domain.FilterMutationResult, error)
}
