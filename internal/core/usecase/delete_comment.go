package usecase

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type DeleteCommentUseCase struct {
	comments port.CommentRepositoryPort
}

func NewDeleteCommentUseCase(comments port.CommentRepositoryPort) *DeleteCommentUseCase {
	return &DeleteCommentUseCase{comments: comments}
}

func (uc *DeleteCommentUseCase) Execute(ctx context.Context, commentID, callerID string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "DeleteComment",
		"comment_id": commentID,
		"caller_id":  callerID,
	})
	ucLogger.Info("Use case started: deleting comment", nil)

	c, err := uc.comments.GetByID(ctx, commentID)
	if err != nil {
		ucLogger.Warn("Comment lookup failed", port.Fields{"error": err.Error()})
		return err
	}
	if c.AuthorID != callerID {
		ucLogger.Warn("Delete rejected: caller is not the author", nil)
		return domain.ErrNotOwner
	}

	if err := uc.comments.Delete(ctx, commentID); err != nil {
		ucLogger.Error("Repository failed to delete comment", err, nil)
		return err
	}

	ucLogger.Info("Use case finished: comment deleted", nil)
	return nil
}
