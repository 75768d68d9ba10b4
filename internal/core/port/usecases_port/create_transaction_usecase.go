package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

type CreateTransactionUseCasePort interface {
	Execute(ctx context.Context, buyerID string, in domain.CreateTransactionInput) (*domain.TransactionView, error)
}
