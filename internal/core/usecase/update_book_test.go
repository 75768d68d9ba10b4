package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

func ownedBook() *domain.Book {
	return &domain.Book{
		ID:      "book-1",
		OwnerID: "owner-1",
		Title:   "Discrete Mathematics",
		Type:    domain.BookTypeSell,
		Price:   floatPtr(350),
		Images:  []string{"https://storage.googleapis.com/test-bucket/books/owner-1/book-1/old.jpg"},
		Status:  domain.BookStatusAvailable,
	}
}

func TestUpdateBookNotOwnerRejected(t *testing.T) {
	uc := NewUpdateBookUseCase(newFakeBookRepo(ownedBook()), &fakeBlobStorage{})

	title := "New title"
	_, err := uc.Execute(context.Background(), "book-1", "intruder", domain.BookPatch{Title: &title}, nil)
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("got %v, want ErrNotOwner", err)
	}
}

func TestUpdateBookValidatesPatchedResult(t *testing.T) {
	uc := NewUpdateBookUseCase(newFakeBookRepo(ownedBook()), &fakeBlobStorage{})

	// смена типа sell -> both без списка обмена делает книгу невалидной
	both := domain.BookTypeBoth
	_, err := uc.Execute(context.Background(), "book-1", "owner-1", domain.BookPatch{Type: &both}, nil)
	if !errors.Is(err, domain.ErrExchangeWishlistRequired) {
		t.Fatalf("got %v, want ErrExchangeWishlistRequired", err)
	}

	// а с уже заполненным списком — валидной
	wishlist := "Algorithms, 3rd ed."
	book, err := uc.Execute(context.Background(), "book-1", "owner-1", domain.BookPatch{
		Type:             &both,
		ExchangeWishlist: &wishlist,
	}, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if book.Type != domain.BookTypeBoth {
		t.Errorf("Type = %s, want both", book.Type)
	}
}

func TestUpdateBookReplacesImages(t *testing.T) {
	books := newFakeBookRepo(ownedBook())
	blobs := &fakeBlobStorage{}
	uc := NewUpdateBookUseCase(books, blobs)

	book, err := uc.Execute(context.Background(), "book-1", "owner-1", domain.BookPatch{}, sampleImages(2))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(book.Images) != 2 {
		t.Fatalf("images = %d, want 2", len(book.Images))
	}
	// старый файл удаляется после успешной записи документа
	if len(blobs.deleted) != 1 || blobs.deleted[0] != "https://storage.googleapis.com/test-bucket/books/owner-1/book-1/old.jpg" {
		t.Errorf("unexpected deletions: %v", blobs.deleted)
	}
}

func TestUpdateBookKeepsImagesWhenNoneSent(t *testing.T) {
	blobs := &fakeBlobStorage{}
	uc := NewUpdateBookUseCase(newFakeBookRepo(ownedBook()), blobs)

	title := "Updated title"
	book, err := uc.Execute(context.Background(), "book-1", "owner-1", domain.BookPatch{Title: &title}, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(book.Images) != 1 {
		t.Errorf("images must stay untouched, got %d", len(book.Images))
	}
	if len(blobs.deleted) != 0 {
		t.Errorf("no deletions expected, got %v", blobs.deleted)
	}
}

func TestUpdateBookDeleteFailureDoesNotFail(t *testing.T) {
	blobs := &fakeBlobStorage{deleteErr: errors.New("object busy")}
	uc := NewUpdateBookUseCase(newFakeBookRepo(ownedBook()), blobs)

	// ошибка удаления старых файлов не должна ронять обновление
	_, err := uc.Execute(context.Background(), "book-1", "owner-1", domain.BookPatch{}, sampleImages(1))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
}

func TestUpdateBookRepositoryFailureKeepsOldImages(t *testing.T) {
	books := newFakeBookRepo(ownedBook())
	books.updateErr = errors.New("write conflict")
	blobs := &fakeBlobStorage{}
	uc := NewUpdateBookUseCase(books, blobs)

	_, err := uc.Execute(context.Background(), "book-1", "owner-1", domain.BookPatch{}, sampleImages(1))
	if err == nil {
		t.Fatal("expected repository error")
	}
	// старые файлы не трогаем, пока документ не перезаписан
	if len(blobs.deleted) != 0 {
		t.Errorf("old images must survive a failed update, got deletions: %v", blobs.deleted)
	}
}
