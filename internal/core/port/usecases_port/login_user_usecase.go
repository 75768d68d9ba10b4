package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

type LoginUserUseCasePort interface {
	// Execute возвращает пользователя и подписанный access-токен.
	Execute(ctx context.Context, email, password string) (*domain.User, string, error)
}
