package usecase

import (
	"context"
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type CreateBookUseCase struct {
	books port.BookRepositoryPort
	blobs port.BlobStoragePort
}

func NewCreateBookUseCase(books port.BookRepositoryPort, blobs port.BlobStoragePort) *CreateBookUseCase {
	return &CreateBookUseCase{books: books, blobs: blobs}
}

func (uc *CreateBookUseCase) Execute(ctx context.Context, ownerID string, in domain.CreateBookInput, images []port.ImageUpload) (*domain.Book, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateBook",
		"owner_id": ownerID,
	})
	ucLogger.Info("Use case started: creating book listing", nil)

	// Шаг 1: валидация условных полей и изображений до каких-либо записей.
	if err := domain.ValidateConditionalFields(in.Type, in.Price, in.ExchangeWishlist); err != nil {
		ucLogger.Warn("Validation failed: conditional fields", port.Fields{"error": err.Error()})
		return nil, err
	}
	if err := validateImages(images); err != nil {
		ucLogger.Warn("Validation failed: images", port.Fields{"error": err.Error()})
		return nil, err
	}

	// Шаг 2: резервируем ID документа заранее — он входит в пути файлов.
	bookID := uc.books.NewID()
	ucLogger = ucLogger.WithFields(port.Fields{"book_id": bookID})

	// Шаг 3: загружаем изображения. Если создание записи ниже упадёт,
	// файлы останутся осиротевшими — это осознанный компромисс.
	urls, err := uploadImages(ctx, uc.blobs, ownerID, bookID, images)
	if err != nil {
		ucLogger.Error("Failed to upload images", err, nil)
		return nil, err
	}

	now := time.Now().UTC()
	book := &domain.Book{
		ID:               bookID,
		OwnerID:          ownerID,
		Title:            in.Title,
		Description:      in.Description,
		Department:       in.Department,
		Course:           in.Course,
		Condition:        in.Condition,
		Type:             in.Type,
		Price:            in.Price,
		ExchangeWishlist: in.ExchangeWishlist,
		Images:           urls,
		Status:           domain.BookStatusAvailable,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uc.books.Create(ctx, book); err != nil {
		ucLogger.Error("Repository failed to create book", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: book listing created", port.Fields{"images": len(urls)})
	return book, nil
}
