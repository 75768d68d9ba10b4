package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
)

type FindBookCommentsUseCasePort interface {
	Execute(ctx context.Context, bookID string, p paging.Params) ([]domain.CommentView, int, error)
}
