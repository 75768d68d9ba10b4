package usecases_port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
)

type FindUserTransactionsUseCasePort interface {
	// Execute — транзакции пользователя в заданной роли (buyer/seller/all).
	// Возвращает страницу и общее число совпадений после фильтра по статусу.
	Execute(ctx context.Context, userID string, role domain.TransactionRole, status *domain.TransactionStatus, p paging.Params) ([]domain.TransactionView, int, error)
}
