package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

type CreateCommentUseCasePort interface {
	Execute(ctx context.Context, bookID, authorID, content string) (*domain.CommentView, error)
}
