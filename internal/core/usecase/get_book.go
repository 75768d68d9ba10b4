package usecase

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type GetBookUseCase struct {
	books port.BookRepositoryPort
	users port.UserRepositoryPort
}

func NewGetBookUseCase(books port.BookRepositoryPort, users port.UserRepositoryPort) *GetBookUseCase {
	return &GetBookUseCase{books: books, users: users}
}

func (uc *GetBookUseCase) Execute(ctx context.Context, bookID string) (*domain.BookView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetBook",
		"book_id":  bookID,
	})
	ucLogger.Info("Use case started", nil)

	book, err := uc.books.GetByID(ctx, bookID)
	if err != nil {
		ucLogger.Warn("Book lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	owner, err := uc.users.GetByID(ctx, book.OwnerID)
	if err != nil {
		// Книга без владельца — нарушение целостности данных, не прячем его.
		ucLogger.Error("Failed to load book owner profile", err, port.Fields{"owner_id": book.OwnerID})
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return &domain.BookView{Book: *book, Owner: owner.Public()}, nil
}
