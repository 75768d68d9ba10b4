package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

func sellerAndBuyer() (*domain.User, *domain.User) {
	seller := &domain.User{ID: "seller-1", Name: "Chen Wei", Department: "CS"}
	buyer := &domain.User{ID: "buyer-1", Name: "Lin Mei", Department: "EE"}
	return seller, buyer
}

func availableBook() *domain.Book {
	return &domain.Book{
		ID:      "book-1",
		OwnerID: "seller-1",
		Title:   "Operating Systems",
		Type:    domain.BookTypeSell,
		Price:   floatPtr(300),
		Status:  domain.BookStatusAvailable,
		Images:  []string{"https://storage.googleapis.com/test-bucket/books/seller-1/book-1/1.jpg"},
	}
}

func TestCreateTransactionSuccess(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	books := newFakeBookRepo(availableBook())
	transactions := newFakeTransactionRepo()
	users := newFakeUserRepo(seller, buyer)

	uc := NewCreateTransactionUseCase(transactions, books, users)
	view, err := uc.Execute(context.Background(), "buyer-1", domain.CreateTransactionInput{
		BookID: "book-1",
		Type:   domain.TransactionTypeSell,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if view.ID != "tx-new" {
		t.Errorf("ID = %q, want tx-new", view.ID)
	}
	if view.Status != domain.TransactionNegotiating {
		t.Errorf("Status = %s, want negotiating", view.Status)
	}
	if view.SellerID != "seller-1" || view.BuyerID != "buyer-1" {
		t.Errorf("participants = %s/%s", view.SellerID, view.BuyerID)
	}
	if view.Book.Title != "Operating Systems" {
		t.Errorf("book card not enriched: %+v", view.Book)
	}
	if view.Seller.Name != "Chen Wei" || view.Buyer.Name != "Lin Mei" {
		t.Errorf("profiles not enriched: %+v / %+v", view.Seller, view.Buyer)
	}
	if view.CompletedAt != nil {
		t.Error("CompletedAt must be nil for a new transaction")
	}
}

func TestCreateTransactionBookNotFound(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	uc := NewCreateTransactionUseCase(newFakeTransactionRepo(), newFakeBookRepo(), newFakeUserRepo(seller, buyer))

	_, err := uc.Execute(context.Background(), "buyer-1", domain.CreateTransactionInput{
		BookID: "missing",
		Type:   domain.TransactionTypeSell,
	})
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("got %v, want ErrBookNotFound", err)
	}
}

func TestCreateTransactionOwnBookRejected(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	books := newFakeBookRepo(availableBook())
	uc := NewCreateTransactionUseCase(newFakeTransactionRepo(), books, newFakeUserRepo(seller, buyer))

	_, err := uc.Execute(context.Background(), "seller-1", domain.CreateTransactionInput{
		BookID: "book-1",
		Type:   domain.TransactionTypeSell,
	})
	if !errors.Is(err, domain.ErrOwnTransaction) {
		t.Fatalf("got %v, want ErrOwnTransaction", err)
	}
}

func TestCreateTransactionAllowedOnReservedBook(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	book := availableBook()
	book.Status = domain.BookStatusReserved
	books := newFakeBookRepo(book)
	uc := NewCreateTransactionUseCase(newFakeTransactionRepo(), books, newFakeUserRepo(seller, buyer))

	// резерв по другой сделке не закрывает переговоры для новых покупателей:
	// владелец сравнивает предложения через список транзакций книги
	view, err := uc.Execute(context.Background(), "buyer-1", domain.CreateTransactionInput{
		BookID: "book-1",
		Type:   domain.TransactionTypeSell,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if view.Status != domain.TransactionNegotiating {
		t.Errorf("Status = %s, want negotiating", view.Status)
	}
	if len(books.updates) != 0 {
		t.Errorf("listing updated %d times, want 0", len(books.updates))
	}
}

func TestCreateTransactionTypeIndependentOfListing(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	books := newFakeBookRepo(availableBook()) // объявление типа sell
	uc := NewCreateTransactionUseCase(newFakeTransactionRepo(), books, newFakeUserRepo(seller, buyer))

	view, err := uc.Execute(context.Background(), "buyer-1", domain.CreateTransactionInput{
		BookID: "book-1",
		Type:   domain.TransactionTypeExchange,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if view.Type != domain.TransactionTypeExchange {
		t.Errorf("Type = %s, want exchange", view.Type)
	}
}

func TestCreateTransactionDuplicateRejected(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	transactions := newFakeTransactionRepo()
	transactions.exists = true
	uc := NewCreateTransactionUseCase(transactions, newFakeBookRepo(availableBook()), newFakeUserRepo(seller, buyer))

	_, err := uc.Execute(context.Background(), "buyer-1", domain.CreateTransactionInput{
		BookID: "book-1",
		Type:   domain.TransactionTypeSell,
	})
	if !errors.Is(err, domain.ErrTransactionExists) {
		t.Fatalf("got %v, want ErrTransactionExists", err)
	}
}
