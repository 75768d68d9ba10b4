package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
)

type FindMyBooksUseCasePort interface {
	// Execute — объявления владельца; без неявного фильтра по статусу.
	Execute(ctx context.Context, ownerID string, status *domain.BookStatus, p paging.Params) ([]domain.Book, int, error)
}
