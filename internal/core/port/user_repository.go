package port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

// UserRepositoryPort — контракт хранилища пользователей.
type UserRepositoryPort interface {
	// Create сохраняет пользователя и возвращает назначенный хранилищем ID.
	Create(ctx context.Context, u *domain.User) (string, error)

	// GetByID возвращает domain.ErrUserNotFound, если документа нет.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// FindByEmail возвращает (nil, nil), если пользователь не найден.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	Update(ctx context.Context, u *domain.User) error
}
