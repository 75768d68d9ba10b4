package usecase

import (
	"context"
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type UpdateCommentUseCase struct {
	comments port.CommentRepositoryPort
	users    port.UserRepositoryPort
}

func NewUpdateCommentUseCase(comments port.CommentRepositoryPort, users port.UserRepositoryPort) *UpdateCommentUseCase {
	return &UpdateCommentUseCase{comments: comments, users: users}
}

func (uc *UpdateCommentUseCase) Execute(ctx context.Context, commentID, callerID, content string) (*domain.CommentView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateComment",
		"comment_id": commentID,
		"caller_id":  callerID,
	})
	ucLogger.Info("Use case started: updating comment", nil)

	c, err := uc.comments.GetByID(ctx, commentID)
	if err != nil {
		ucLogger.Warn("Comment lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	if c.AuthorID != callerID {
		ucLogger.Warn("Update rejected: caller is not the author", nil)
		return nil, domain.ErrNotOwner
	}

	c.Content = content
	c.UpdatedAt = time.Now().UTC()

	if err := uc.comments.Update(ctx, c); err != nil {
		ucLogger.Error("Repository failed to update comment", err, nil)
		return nil, err
	}

	author, err := uc.users.GetByID(ctx, c.AuthorID)
	if err != nil {
		ucLogger.Error("Failed to load author profile", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: comment updated", nil)
	return &domain.CommentView{Comment: *c, Author: author.Public()}, nil
}
