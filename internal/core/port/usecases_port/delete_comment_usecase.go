package usecases_port

import "context"

type DeleteCommentUseCasePort interface {
	Execute(ctx context.Context, commentID, callerID string) error
}
