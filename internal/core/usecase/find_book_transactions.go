package usecase

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type FindBookTransactionsUseCase struct {
	transactions port.TransactionRepositoryPort
	books        port.BookRepositoryPort
	users        port.UserRepositoryPort
}

func NewFindBookTransactionsUseCase(transactions port.TransactionRepositoryPort, books port.BookRepositoryPort, users port.UserRepositoryPort) *FindBookTransactionsUseCase {
	return &FindBookTransactionsUseCase{transactions: transactions, books: books, users: users}
}

// Execute — все переговоры по конкретному объявлению. Видит только владелец:
// это его инструмент выбора, с кем завершать сделку.
func (uc *FindBookTransactionsUseCase) Execute(ctx context.Context, bookID, callerID string) ([]domain.TransactionView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "FindBookTransactions",
		"book_id":   bookID,
		"caller_id": callerID,
	})
	ucLogger.Info("Use case started", nil)

	book, err := uc.books.GetByID(ctx, bookID)
	if err != nil {
		ucLogger.Warn("Book lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	if book.OwnerID != callerID {
		ucLogger.Warn("Access rejected: caller is not the owner", nil)
		return nil, domain.ErrNotOwner
	}

	ts, err := uc.transactions.FindByBook(ctx, bookID)
	if err != nil {
		ucLogger.Error("Repository failed to list book transactions", err, nil)
		return nil, err
	}

	enricher := &transactionEnricher{books: uc.books, users: uc.users}
	views, err := enricher.enrichMany(ctx, ts)
	if err != nil {
		ucLogger.Error("Failed to enrich transactions", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found": len(views)})
	return views, nil
}
