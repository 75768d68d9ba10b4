package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

type GetBookUseCasePort interface {
	Execute(ctx context.Context, bookID string) (*domain.BookView, error)
}
