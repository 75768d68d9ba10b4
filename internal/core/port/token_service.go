package port

import (
	"context"
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

// TokenServicePort — контракт для выпуска и проверки токенов доступа.
type TokenServicePort interface {
	GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error)

	// ValidateToken возвращает domain.ErrTokenInvalid для любого
	// невалидного или истёкшего токена.
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
}
