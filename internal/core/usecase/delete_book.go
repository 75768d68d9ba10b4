package usecase

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type DeleteBookUseCase struct {
	books port.BookRepositoryPort
	blobs port.BlobStoragePort
}

func NewDeleteBookUseCase(books port.BookRepositoryPort, blobs port.BlobStoragePort) *DeleteBookUseCase {
	return &DeleteBookUseCase{books: books, blobs: blobs}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, bookID, callerID string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "DeleteBook",
		"book_id":   bookID,
		"caller_id": callerID,
	})
	ucLogger.Info("Use case started: deleting book listing", nil)

	book, err := uc.books.GetByID(ctx, bookID)
	if err != nil {
		ucLogger.Warn("Book lookup failed", port.Fields{"error": err.Error()})
		return err
	}
	if book.OwnerID != callerID {
		ucLogger.Warn("Delete rejected: caller is not the owner", port.Fields{"owner_id": book.OwnerID})
		return domain.ErrNotOwner
	}

	// Сначала файлы (best-effort), потом запись: неудалённый блоб —
	// всего лишь мусор в бакете, запись удаляется в любом случае.
	deleteImagesBestEffort(ctx, uc.blobs, ucLogger, book.Images)

	if err := uc.books.Delete(ctx, bookID); err != nil {
		ucLogger.Error("Repository failed to delete book", err, nil)
		return err
	}

	ucLogger.Info("Use case finished: book listing deleted", nil)
	return nil
}
