package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type UpdateBookUseCasePort interface {
	// Execute — частичное обновление; images != nil означает полную замену изображений.
	Execute(ctx context.Context, bookID, callerID string, patch domain.BookPatch, images []port.ImageUpload) (*domain.Book, error)
}
