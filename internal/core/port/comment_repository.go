package port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

// CommentRepositoryPort — контракт хранилища комментариев.
type CommentRepositoryPort interface {
	// Create сохраняет комментарий и возвращает назначенный хранилищем ID.
	Create(ctx context.Context, c *domain.Comment) (string, error)

	// GetByID возвращает domain.ErrCommentNotFound, если документа нет.
	GetByID(ctx context.Context, id string) (*domain.Comment, error)

	Update(ctx context.Context, c *domain.Comment) error
	Delete(ctx context.Context, id string) error

	// FindByBook — страница комментариев книги, createdAt по возрастанию.
	FindByBook(ctx context.Context, bookID string, limit, offset int) ([]domain.Comment, error)
	CountByBook(ctx context.Context, bookID string) (int, error)
}
