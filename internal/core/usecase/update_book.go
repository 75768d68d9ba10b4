package usecase

import (
	"context"
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type UpdateBookUseCase struct {
	books port.BookRepositoryPort
	blobs port.BlobStoragePort
}

func NewUpdateBookUseCase(books port.BookRepositoryPort, blobs port.BlobStoragePort) *UpdateBookUseCase {
	return &UpdateBookUseCase{books: books, blobs: blobs}
}

// Execute — частичное обновление объявления. Менять может только владелец.
// Непустой срез images означает полную замену набора изображений:
// новые загружаются, старые удаляются по принципу best-effort.
func (uc *UpdateBookUseCase) Execute(ctx context.Context, bookID, callerID string, patch domain.BookPatch, images []port.ImageUpload) (*domain.Book, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "UpdateBook",
		"book_id":   bookID,
		"caller_id": callerID,
	})
	ucLogger.Info("Use case started: updating book listing", nil)

	// Шаг 1: загрузка и проверка владения.
	book, err := uc.books.GetByID(ctx, bookID)
	if err != nil {
		ucLogger.Warn("Book lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	if book.OwnerID != callerID {
		ucLogger.Warn("Update rejected: caller is not the owner", port.Fields{"owner_id": book.OwnerID})
		return nil, domain.ErrNotOwner
	}

	// Шаг 2: применяем patch к копии и проверяем итоговое состояние.
	// Валидируется результат, а не сам patch: смена типа с sell на both
	// корректна только если у книги уже есть и цена, и список обмена.
	updated := *book
	updated.Apply(patch)
	if err := domain.ValidateConditionalFields(updated.Type, updated.Price, updated.ExchangeWishlist); err != nil {
		ucLogger.Warn("Validation failed: conditional fields after patch", port.Fields{"error": err.Error()})
		return nil, err
	}

	// Шаг 3: замена изображений, если они присланы.
	var oldImages []string
	if len(images) > 0 {
		if err := validateImages(images); err != nil {
			ucLogger.Warn("Validation failed: images", port.Fields{"error": err.Error()})
			return nil, err
		}
		urls, err := uploadImages(ctx, uc.blobs, book.OwnerID, book.ID, images)
		if err != nil {
			ucLogger.Error("Failed to upload replacement images", err, nil)
			return nil, err
		}
		oldImages = updated.Images
		updated.Images = urls
	}

	updated.UpdatedAt = time.Now().UTC()

	if err := uc.books.Update(ctx, &updated); err != nil {
		ucLogger.Error("Repository failed to update book", err, nil)
		return nil, err
	}

	// Шаг 4: старые файлы удаляем только после успешной записи документа.
	if len(oldImages) > 0 {
		deleteImagesBestEffort(ctx, uc.blobs, ucLogger, oldImages)
	}

	ucLogger.Info("Use case finished: book listing updated", nil)
	return &updated, nil
}
