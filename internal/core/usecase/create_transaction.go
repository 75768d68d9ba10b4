package usecase

import (
	"context"
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type CreateTransactionUseCase struct {
	transactions port.TransactionRepositoryPort
	books        port.BookRepositoryPort
	users        port.UserRepositoryPort
}

func NewCreateTransactionUseCase(transactions port.TransactionRepositoryPort, books port.BookRepositoryPort, users port.UserRepositoryPort) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{transactions: transactions, books: books, users: users}
}

func (uc *CreateTransactionUseCase) Execute(ctx context.Context, buyerID string, in domain.CreateTransactionInput) (*domain.TransactionView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateTransaction",
		"buyer_id": buyerID,
		"book_id":  in.BookID,
	})
	ucLogger.Info("Use case started: opening negotiation", nil)

	// Шаг 1: книга должна существовать.
	book, err := uc.books.GetByID(ctx, in.BookID)
	if err != nil {
		ucLogger.Warn("Book lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	// Шаг 2: сделка с собственной книгой запрещена.
	if book.OwnerID == buyerID {
		ucLogger.Warn("Rejected: buyer owns the book", nil)
		return nil, domain.ErrOwnTransaction
	}

	// Статус объявления здесь не проверяется: переговоры могут идти
	// параллельно с несколькими покупателями, владелец выбирает сам.

	// Шаг 3: не более одной транзакции на пару (книга, покупатель).
	// Проверка read-then-write, без транзакционной гарантии хранилища.
	exists, err := uc.transactions.ExistsForBookAndBuyer(ctx, in.BookID, buyerID)
	if err != nil {
		ucLogger.Error("Repository failed to check for existing transaction", err, nil)
		return nil, err
	}
	if exists {
		ucLogger.Warn("Rejected: transaction already exists for this book and buyer", nil)
		return nil, domain.ErrTransactionExists
	}

	now := time.Now().UTC()
	t := &domain.Transaction{
		BookID:    book.ID,
		SellerID:  book.OwnerID,
		BuyerID:   buyerID,
		Status:    domain.TransactionNegotiating,
		Type:      in.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// in.Message принимается транспортом, но не сохраняется:
	// переписка сторон ведётся вне системы.

	id, err := uc.transactions.Create(ctx, t)
	if err != nil {
		ucLogger.Error("Repository failed to create transaction", err, nil)
		return nil, err
	}
	t.ID = id

	enricher := &transactionEnricher{books: uc.books, users: uc.users}
	view, err := enricher.enrichOne(ctx, *t)
	if err != nil {
		ucLogger.Error("Failed to enrich created transaction", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: negotiation opened", port.Fields{"transaction_id": id})
	return &view, nil
}
