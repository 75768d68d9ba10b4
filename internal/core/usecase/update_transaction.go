package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type UpdateTransactionUseCase struct {
	transactions port.TransactionRepositoryPort
	books        port.BookRepositoryPort
	users        port.UserRepositoryPort
}

func NewUpdateTransactionUseCase(transactions port.TransactionRepositoryPort, books port.BookRepositoryPort, users port.UserRepositoryPort) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{transactions: transactions, books: books, users: users}
}

// Execute — обновление переговоров одной из сторон.
//
// Статус движется только вперёд по таблице переходов; запрос с текущим
// статусом — no-op, а не ошибка, чтобы повторная отправка формы не падала.
// AgreedPrice и ExchangeDetails можно менять на любом этапе.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, transactionID, callerID string, patch domain.TransactionPatch) (*domain.TransactionView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":       "UpdateTransaction",
		"transaction_id": transactionID,
		"caller_id":      callerID,
	})
	ucLogger.Info("Use case started: updating negotiation", nil)

	t, err := uc.transactions.GetByID(ctx, transactionID)
	if err != nil {
		ucLogger.Warn("Transaction lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	if !t.IsParticipant(callerID) {
		ucLogger.Warn("Update rejected: caller is not a participant", nil)
		return nil, domain.ErrNotParticipant
	}

	now := time.Now().UTC()

	if patch.Status != nil && *patch.Status != t.Status {
		if !t.Status.CanTransitionTo(*patch.Status) {
			ucLogger.Warn("Update rejected: invalid status transition", port.Fields{
				"from": string(t.Status),
				"to":   string(*patch.Status),
			})
			return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, t.Status, *patch.Status)
		}
		t.Status = *patch.Status

		// CompletedAt выставляется ровно один раз — при входе в completed.
		if t.Status == domain.TransactionCompleted {
			t.CompletedAt = &now
		}
	}

	if patch.AgreedPrice != nil {
		t.AgreedPrice = patch.AgreedPrice
	}
	if patch.ExchangeDetails != nil {
		t.ExchangeDetails = patch.ExchangeDetails
	}
	t.UpdatedAt = now

	if err := uc.transactions.Update(ctx, t); err != nil {
		ucLogger.Error("Repository failed to update transaction", err, nil)
		return nil, err
	}

	// Само объявление здесь не трогается: его статус меняет только
	// владелец через обновление книги.
	enricher := &transactionEnricher{books: uc.books, users: uc.users}
	view, err := enricher.enrichOne(ctx, *t)
	if err != nil {
		ucLogger.Error("Failed to enrich updated transaction", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: negotiation updated", port.Fields{"status": string(t.Status)})
	return &view, nil
}
