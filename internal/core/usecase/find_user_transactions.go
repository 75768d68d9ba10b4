package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type FindUserTransactionsUseCase struct {
	transactions port.TransactionRepositoryPort
	books        port.BookRepositoryPort
	users        port.UserRepositoryPort
}

func NewFindUserTransactionsUseCase(transactions port.TransactionRepositoryPort, books port.BookRepositoryPort, users port.UserRepositoryPort) *FindUserTransactionsUseCase {
	return &FindUserTransactionsUseCase{transactions: transactions, books: books, users: users}
}

// Execute — транзакции пользователя в выбранной роли.
//
// Для ролей buyer/seller страница и счётчик берутся прямо из хранилища.
// Для роли all хранилище не умеет OR по двум полям, поэтому обе выборки
// читаются целиком и страница собирается в памяти. Форма ответа
// одинакова для обоих путей.
func (uc *FindUserTransactionsUseCase) Execute(ctx context.Context, userID string, role domain.TransactionRole, status *domain.TransactionStatus, p paging.Params) ([]domain.TransactionView, int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindUserTransactions",
		"user_id":  userID,
		"role":     string(role),
	})
	ucLogger.Info("Use case started", nil)

	var (
		page  []domain.Transaction
		total int
		err   error
	)

	switch role {
	case domain.RoleBuyer:
		page, total, err = uc.findSingleRole(ctx,
			func(ctx context.Context) ([]domain.Transaction, error) {
				return uc.transactions.FindByBuyer(ctx, userID, status, p.Limit, p.Offset())
			},
			func(ctx context.Context) (int, error) {
				return uc.transactions.CountByBuyer(ctx, userID, status)
			})

	case domain.RoleSeller:
		page, total, err = uc.findSingleRole(ctx,
			func(ctx context.Context) ([]domain.Transaction, error) {
				return uc.transactions.FindBySeller(ctx, userID, status, p.Limit, p.Offset())
			},
			func(ctx context.Context) (int, error) {
				return uc.transactions.CountBySeller(ctx, userID, status)
			})

	case domain.RoleAll:
		var asBuyer, asSeller []domain.Transaction
		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var gErr error
			asBuyer, gErr = uc.transactions.FindAllByBuyer(gCtx, userID)
			return gErr
		})
		g.Go(func() error {
			var gErr error
			asSeller, gErr = uc.transactions.FindAllBySeller(gCtx, userID)
			return gErr
		})
		if err = g.Wait(); err == nil {
			page, total = mergeUserTransactions(asBuyer, asSeller, status, p)
		}

	default:
		return nil, 0, domain.ErrInvalidRole
	}

	if err != nil {
		ucLogger.Error("Repository failed to list transactions", err, nil)
		return nil, 0, err
	}

	enricher := &transactionEnricher{books: uc.books, users: uc.users}
	views, err := enricher.enrichMany(ctx, page)
	if err != nil {
		ucLogger.Error("Failed to enrich transactions", err, nil)
		return nil, 0, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found": len(views), "total": total})
	return views, total, nil
}

// findSingleRole — общий путь для buyer/seller: окно и счётчик параллельно.
func (uc *FindUserTransactionsUseCase) findSingleRole(
	ctx context.Context,
	find func(context.Context) ([]domain.Transaction, error),
	count func(context.Context) (int, error),
) ([]domain.Transaction, int, error) {
	var (
		page  []domain.Transaction
		total int
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = find(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = count(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return page, total, nil
}
