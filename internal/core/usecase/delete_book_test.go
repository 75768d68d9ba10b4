package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

func TestDeleteBookSuccess(t *testing.T) {
	books := newFakeBookRepo(ownedBook())
	blobs := &fakeBlobStorage{}
	uc := NewDeleteBookUseCase(books, blobs)

	if err := uc.Execute(context.Background(), "book-1", "owner-1"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := books.GetByID(context.Background(), "book-1"); !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("book still present after delete: %v", err)
	}
	if len(blobs.deleted) != 1 || blobs.deleted[0] != "https://storage.googleapis.com/test-bucket/books/owner-1/book-1/old.jpg" {
		t.Errorf("deleted blobs = %v", blobs.deleted)
	}
}

func TestDeleteBookNotOwnerRejected(t *testing.T) {
	books := newFakeBookRepo(ownedBook())
	blobs := &fakeBlobStorage{}
	uc := NewDeleteBookUseCase(books, blobs)

	if err := uc.Execute(context.Background(), "book-1", "intruder"); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("got %v, want ErrNotOwner", err)
	}
	if _, err := books.GetByID(context.Background(), "book-1"); err != nil {
		t.Error("book must survive a rejected delete")
	}
	if len(blobs.deleted) != 0 {
		t.Errorf("blobs deleted on rejected request: %v", blobs.deleted)
	}
}

func TestDeleteBookBlobFailureStillDeletesRecord(t *testing.T) {
	books := newFakeBookRepo(ownedBook())
	blobs := &fakeBlobStorage{deleteErr: errors.New("bucket unavailable")}
	uc := NewDeleteBookUseCase(books, blobs)

	// блобы удаляются первыми и best-effort: их провал не блокирует запись
	if err := uc.Execute(context.Background(), "book-1", "owner-1"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := books.GetByID(context.Background(), "book-1"); !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("record must be deleted even when blob deletion fails: %v", err)
	}
}
