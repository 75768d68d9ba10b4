package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

type GetUserProfileUseCasePort interface {
	Execute(ctx context.Context, userID string) (*domain.User, error)
}
