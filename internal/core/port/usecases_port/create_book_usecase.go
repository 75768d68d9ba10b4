package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type CreateBookUseCasePort interface {
	Execute(ctx context.Context, ownerID string, in domain.CreateBookInput, images []port.ImageUpload) (*domain.Book, error)
}
