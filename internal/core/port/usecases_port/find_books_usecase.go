package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type FindBooksUseCasePort interface {
	// Execute возвращает страницу обогащённых объявлений и общее число совпадений.
	Execute(ctx context.Context, filter port.BookFilter, p paging.Params) ([]domain.BookView, int, error)
}
