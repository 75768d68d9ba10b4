package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

type UpdateUserProfileUseCasePort interface {
	Execute(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error)
}
