package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

type GetTransactionUseCasePort interface {
	Execute(ctx context.Context, transactionID, callerID string) (*domain.TransactionView, error)
}
