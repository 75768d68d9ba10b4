package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type FindMyBooksUseCase struct {
	books port.BookRepositoryPort
}

func NewFindMyBooksUseCase(books port.BookRepositoryPort) *FindMyBooksUseCase {
	return &FindMyBooksUseCase{books: books}
}

// Execute возвращает объявления самого пользователя. В отличие от публичного
// поиска, здесь нет обогащения владельцем (он и так известен) и нет
// неявного фильтра по статусу: владелец видит и reserved, и sold.
func (uc *FindMyBooksUseCase) Execute(ctx context.Context, ownerID string, status *domain.BookStatus, p paging.Params) ([]domain.Book, int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindMyBooks",
		"owner_id": ownerID,
	})
	ucLogger.Info("Use case started", nil)

	filter := port.BookFilter{OwnerID: ownerID, Status: status}

	var (
		books []domain.Book
		total int
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		books, err = uc.books.Find(gCtx, filter, p.Limit, p.Offset())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = uc.books.Count(gCtx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		ucLogger.Error("Repository failed to list user's books", err, nil)
		return nil, 0, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found": len(books), "total": total})
	return books, total, nil
}
