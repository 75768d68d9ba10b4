package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

type GetPublicProfileUseCasePort interface {
	Execute(ctx context.Context, userID string) (*domain.PublicProfile, error)
}
