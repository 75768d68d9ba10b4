package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

func negotiationFixture(status domain.TransactionStatus) (*domain.Transaction, *domain.Book) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tx := &domain.Transaction{
		ID:        "tx-1",
		BookID:    "book-1",
		SellerID:  "seller-1",
		BuyerID:   "buyer-1",
		Status:    status,
		Type:      domain.TransactionTypeSell,
		CreatedAt: now,
		UpdatedAt: now,
	}
	book := availableBook()
	return tx, book
}

func TestUpdateTransactionNotParticipant(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	tx, book := negotiationFixture(domain.TransactionNegotiating)
	uc := NewUpdateTransactionUseCase(newFakeTransactionRepo(tx), newFakeBookRepo(book), newFakeUserRepo(seller, buyer))

	_, err := uc.Execute(context.Background(), "tx-1", "stranger", domain.TransactionPatch{
		AgreedPrice: floatPtr(250),
	})
	if !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("got %v, want ErrNotParticipant", err)
	}
}

func TestUpdateTransactionSkippingConfirmedRejected(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	tx, book := negotiationFixture(domain.TransactionNegotiating)
	uc := NewUpdateTransactionUseCase(newFakeTransactionRepo(tx), newFakeBookRepo(book), newFakeUserRepo(seller, buyer))

	_, err := uc.Execute(context.Background(), "tx-1", "buyer-1", domain.TransactionPatch{
		Status: statusPtr(domain.TransactionCompleted),
	})
	if !errors.Is(err, domain.ErrInvalidStatusTransition) {
		t.Fatalf("got %v, want ErrInvalidStatusTransition", err)
	}
}

func TestUpdateTransactionConfirm(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	tx, book := negotiationFixture(domain.TransactionNegotiating)
	books := newFakeBookRepo(book)
	uc := NewUpdateTransactionUseCase(newFakeTransactionRepo(tx), books, newFakeUserRepo(seller, buyer))

	view, err := uc.Execute(context.Background(), "tx-1", "seller-1", domain.TransactionPatch{
		Status:      statusPtr(domain.TransactionConfirmed),
		AgreedPrice: floatPtr(280),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if view.Status != domain.TransactionConfirmed {
		t.Errorf("Status = %s, want confirmed", view.Status)
	}
	if view.AgreedPrice == nil || *view.AgreedPrice != 280 {
		t.Errorf("AgreedPrice = %v, want 280", view.AgreedPrice)
	}
	if view.CompletedAt != nil {
		t.Error("CompletedAt must stay nil on confirm")
	}
}

func TestUpdateTransactionCompleteStampsCompletedAt(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	tx, book := negotiationFixture(domain.TransactionConfirmed)
	books := newFakeBookRepo(book)
	uc := NewUpdateTransactionUseCase(newFakeTransactionRepo(tx), books, newFakeUserRepo(seller, buyer))

	view, err := uc.Execute(context.Background(), "tx-1", "buyer-1", domain.TransactionPatch{
		Status: statusPtr(domain.TransactionCompleted),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if view.CompletedAt == nil {
		t.Fatal("CompletedAt must be set on completion")
	}
}

func TestUpdateTransactionNeverTouchesListing(t *testing.T) {
	seller, buyer := sellerAndBuyer()

	// обе смены статуса: negotiating -> confirmed -> completed
	for _, step := range []domain.TransactionStatus{domain.TransactionConfirmed, domain.TransactionCompleted} {
		tx, book := negotiationFixture(domain.TransactionNegotiating)
		if step == domain.TransactionCompleted {
			tx.Status = domain.TransactionConfirmed
		}
		books := newFakeBookRepo(book)
		uc := NewUpdateTransactionUseCase(newFakeTransactionRepo(tx), books, newFakeUserRepo(seller, buyer))

		if _, err := uc.Execute(context.Background(), "tx-1", "buyer-1", domain.TransactionPatch{
			Status: statusPtr(step),
		}); err != nil {
			t.Fatalf("Execute(%s): %v", step, err)
		}

		// статус объявления — зона ответственности владельца (PATCH книги),
		// сделка его не переписывает
		if len(books.updates) != 0 {
			t.Errorf("transition to %s updated the listing %d times, want 0", step, len(books.updates))
		}
		stored, _ := books.GetByID(context.Background(), "book-1")
		if stored.Status != domain.BookStatusAvailable {
			t.Errorf("listing status = %s after %s, want available", stored.Status, step)
		}
	}
}

func TestUpdateTransactionSameStatusIsNoop(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	tx, book := negotiationFixture(domain.TransactionNegotiating)
	books := newFakeBookRepo(book)
	uc := NewUpdateTransactionUseCase(newFakeTransactionRepo(tx), books, newFakeUserRepo(seller, buyer))

	// повторная отправка текущего статуса — не ошибка
	view, err := uc.Execute(context.Background(), "tx-1", "buyer-1", domain.TransactionPatch{
		Status: statusPtr(domain.TransactionNegotiating),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if view.Status != domain.TransactionNegotiating {
		t.Errorf("Status = %s, want negotiating", view.Status)
	}
	// книга при no-op не трогается
	if len(books.updates) != 0 {
		t.Errorf("book updated %d times, want 0", len(books.updates))
	}
}

func TestUpdateTransactionMissingBookDoesNotBlock(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	tx, _ := negotiationFixture(domain.TransactionNegotiating)
	// книги больше нет — подтверждение всё равно проходит
	uc := NewUpdateTransactionUseCase(newFakeTransactionRepo(tx), newFakeBookRepo(), newFakeUserRepo(seller, buyer))

	view, err := uc.Execute(context.Background(), "tx-1", "seller-1", domain.TransactionPatch{
		Status: statusPtr(domain.TransactionConfirmed),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if view.Status != domain.TransactionConfirmed {
		t.Errorf("Status = %s, want confirmed", view.Status)
	}
	// карточка книги деградирует до одного ID
	if view.Book.ID != "book-1" || view.Book.Title != "" {
		t.Errorf("unexpected degraded book card: %+v", view.Book)
	}
}

func TestUpdateTransactionExchangeDetailsOnAnyStage(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	tx, book := negotiationFixture(domain.TransactionConfirmed)
	uc := NewUpdateTransactionUseCase(newFakeTransactionRepo(tx), newFakeBookRepo(book), newFakeUserRepo(seller, buyer))

	view, err := uc.Execute(context.Background(), "tx-1", "buyer-1", domain.TransactionPatch{
		ExchangeDetails: strPtr("meet at the library, Tuesday 14:00"),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if view.ExchangeDetails == nil || *view.ExchangeDetails != "meet at the library, Tuesday 14:00" {
		t.Errorf("ExchangeDetails = %v", view.ExchangeDetails)
	}
	if view.Status != domain.TransactionConfirmed {
		t.Errorf("status must not change, got %s", view.Status)
	}
}
