package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

type UpdateTransactionUseCasePort interface {
	Execute(ctx context.Context, transactionID, callerID string, patch domain.TransactionPatch) (*domain.TransactionView, error)
}
