package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

type FindBookTransactionsUseCasePort interface {
	// Execute — все транзакции по книге, доступно только её владельцу.
	Execute(ctx context.Context, bookID, callerID string) ([]domain.TransactionView, error)
}
