package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

type RegisterUserUseCasePort interface {
	Execute(ctx context.Context, in domain.RegisterInput) (*domain.User, error)
}
