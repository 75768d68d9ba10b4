package usecase

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type GetTransactionUseCase struct {
	transactions port.TransactionRepositoryPort
	books        port.BookRepositoryPort
	users        port.UserRepositoryPort
}

func NewGetTransactionUseCase(transactions port.TransactionRepositoryPort, books port.BookRepositoryPort, users port.UserRepositoryPort) *GetTransactionUseCase {
	return &GetTransactionUseCase{transactions: transactions, books: books, users: users}
}

func (uc *GetTransactionUseCase) Execute(ctx context.Context, transactionID, callerID string) (*domain.TransactionView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":       "GetTransaction",
		"transaction_id": transactionID,
		"caller_id":      callerID,
	})
	ucLogger.Info("Use case started", nil)

	t, err := uc.transactions.GetByID(ctx, transactionID)
	if err != nil {
		ucLogger.Warn("Transaction lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	if !t.IsParticipant(callerID) {
		ucLogger.Warn("Access rejected: caller is not a participant", nil)
		return nil, domain.ErrNotParticipant
	}

	enricher := &transactionEnricher{books: uc.books, users: uc.users}
	view, err := enricher.enrichOne(ctx, *t)
	if err != nil {
		ucLogger.Error("Failed to enrich transaction", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return &view, nil
}
