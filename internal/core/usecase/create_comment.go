package usecase

import (
	"context"
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type CreateCommentUseCase struct {
	comments port.CommentRepositoryPort
	books    port.BookRepositoryPort
	users    port.UserRepositoryPort
}

func NewCreateCommentUseCase(comments port.CommentRepositoryPort, books port.BookRepositoryPort, users port.UserRepositoryPort) *CreateCommentUseCase {
	return &CreateCommentUseCase{comments: comments, books: books, users: users}
}

func (uc *CreateCommentUseCase) Execute(ctx context.Context, bookID, authorID, content string) (*domain.CommentView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "CreateComment",
		"book_id":   bookID,
		"author_id": authorID,
	})
	ucLogger.Info("Use case started: creating comment", nil)

	// Комментарий можно оставить только под существующим объявлением.
	if _, err := uc.books.GetByID(ctx, bookID); err != nil {
		ucLogger.Warn("Book lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Comment{
		BookID:    bookID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := uc.comments.Create(ctx, c)
	if err != nil {
		ucLogger.Error("Repository failed to create comment", err, nil)
		return nil, err
	}
	c.ID = id

	author, err := uc.users.GetByID(ctx, authorID)
	if err != nil {
		ucLogger.Error("Failed to load author profile", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: comment created", port.Fields{"comment_id": id})
	return &domain.CommentView{Comment: *c, Author: author.Public()}, nil
}
