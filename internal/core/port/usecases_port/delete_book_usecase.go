package usecases_port

import "context"

type DeleteBookUseCasePort interface {
	Execute(ctx context.Context, bookID, callerID string) error
}
