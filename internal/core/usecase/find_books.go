package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type FindBooksUseCase struct {
	books port.BookRepositoryPort
	users port.UserRepositoryPort
}

func NewFindBooksUseCase(books port.BookRepositoryPort, users port.UserRepositoryPort) *FindBooksUseCase {
	return &FindBooksUseCase{books: books, users: users}
}

func (uc *FindBooksUseCase) Execute(ctx context.Context, filter port.BookFilter, p paging.Params) ([]domain.BookView, int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindBooks",
		"page":     p.Page,
		"limit":    p.Limit,
	})
	ucLogger.Info("Use case started: searching book listings", nil)

	// Страница и общее количество запрашиваются параллельно.
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
		ucLogger.Error("Repository failed to search books", err, nil)
		return nil, 0, err
	}

	// Обогащаем профилями владельцев; повторные владельцы читаются один раз.
	loader := newProfileLoader(uc.users)
	views := make([]domain.BookView, 0, len(books))
	for _, b := range books {
		owner, err := loader.load(ctx, b.OwnerID)
		if err != nil {
			ucLogger.Error("Failed to load owner profile", err, port.Fields{"owner_id": b.OwnerID})
			return nil, 0, err
		}
		views = append(views, domain.BookView{Book: b, Owner: owner})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found": len(views), "total": total})
	return views, total, nil
}
