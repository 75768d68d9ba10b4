package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type FindBookCommentsUseCase struct {
	comments port.CommentRepositoryPort
	books    port.BookRepositoryPort
	users    port.UserRepositoryPort
}

func NewFindBookCommentsUseCase(comments port.CommentRepositoryPort, books port.BookRepositoryPort, users port.UserRepositoryPort) *FindBookCommentsUseCase {
	return &FindBookCommentsUseCase{comments: comments, books: books, users: users}
}

// Execute — страница комментариев книги, от старых к новым.
func (uc *FindBookCommentsUseCase) Execute(ctx context.Context, bookID string, p paging.Params) ([]domain.CommentView, int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindBookComments",
		"book_id":  bookID,
	})
	ucLogger.Info("Use case started", nil)

	if _, err := uc.books.GetByID(ctx, bookID); err != nil {
		ucLogger.Warn("Book lookup failed", port.Fields{"error": err.Error()})
		return nil, 0, err
	}

	var (
		comments []domain.Comment
		total    int
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		comments, err = uc.comments.FindByBook(gCtx, bookID, p.Limit, p.Offset())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = uc.comments.CountByBook(gCtx, bookID)
		return err
	})
	if err := g.Wait(); err != nil {
		ucLogger.Error("Repository failed to list comments", err, nil)
		return nil, 0, err
	}

	// Авторы часто повторяются в пределах страницы — читаем каждого один раз.
	loader := newProfileLoader(uc.users)
	views := make([]domain.CommentView, 0, len(comments))
	for _, c := range comments {
		author, err := loader.load(ctx, c.AuthorID)
		if err != nil {
			ucLogger.Error("Failed to load comment author", err, port.Fields{"author_id": c.AuthorID})
			return nil, 0, err
		}
		views = append(views, domain.CommentView{Comment: c, Author: author})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found": len(views), "total": total})
	return views, total, nil
}
