package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

type UpdateCommentUseCasePort interface {
	Execute(ctx context.Context, commentID, callerID, content string) (*domain.CommentView, error)
}
