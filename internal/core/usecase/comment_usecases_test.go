package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

type fakeCommentRepo struct {
	comments map[string]*domain.Comment
	nextID   string
	deleted  []string
}

func newFakeCommentRepo(comments ...*domain.Comment) *fakeCommentRepo {
	repo := &fakeCommentRepo{comments: make(map[string]*domain.Comment), nextID: "comment-new"}
	for _, c := range comments {
		copied := *c
		repo.comments[c.ID] = &copied
	}
	return repo
}

func (f *fakeCommentRepo) Create(ctx context.Context, c *domain.Comment) (string, error) {
	copied := *c
	copied.ID = f.nextID
	f.comments[copied.ID] = &copied
	return copied.ID, nil
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCommentRepo) Update(ctx context.Context, c *domain.Comment) error {
	copied := *c
	f.comments[c.ID] = &copied
	return nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id string) error {
	delete(f.comments, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCommentRepo) FindByBook(ctx context.Context, bookID string, limit, offset int) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range f.comments {
		if c.BookID == bookID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) CountByBook(ctx context.Context, bookID string) (int, error) {
	list, _ := f.FindByBook(ctx, bookID, 0, 0)
	return len(list), nil
}

func existingComment() *domain.Comment {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Comment{
		ID:        "comment-1",
		BookID:    "book-1",
		AuthorID:  "buyer-1",
		Content:   "Is the highlighting heavy?",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateCommentRequiresExistingBook(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	uc := NewCreateCommentUseCase(newFakeCommentRepo(), newFakeBookRepo(), newFakeUserRepo(seller, buyer))

	_, err := uc.Execute(context.Background(), "missing-book", "buyer-1", "hello")
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("got %v, want ErrBookNotFound", err)
	}
}

func TestCreateCommentSuccess(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	uc := NewCreateCommentUseCase(newFakeCommentRepo(), newFakeBookRepo(availableBook()), newFakeUserRepo(seller, buyer))

	view, err := uc.Execute(context.Background(), "book-1", "buyer-1", "Is the highlighting heavy?")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if view.ID != "comment-new" {
		t.Errorf("ID = %q", view.ID)
	}
	if view.Author.Name != "Lin Mei" {
		t.Errorf("author not enriched: %+v", view.Author)
	}
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	seller, buyer := sellerAndBuyer()
	uc := NewUpdateCommentUseCase(newFakeCommentRepo(existingComment()), newFakeUserRepo(seller, buyer))

	if _, err := uc.Execute(context.Background(), "comment-1", "seller-1", "edited"); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("got %v, want ErrNotOwner", err)
	}

	view, err := uc.Execute(context.Background(), "comment-1", "buyer-1", "edited")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if view.Content != "edited" {
		t.Errorf("Content = %q", view.Content)
	}
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	comments := newFakeCommentRepo(existingComment())
	uc := NewDeleteCommentUseCase(comments)

	if err := uc.Execute(context.Background(), "comment-1", "seller-1"); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("got %v, want ErrNotOwner", err)
	}
	if err := uc.Execute(context.Background(), "comment-1", "buyer-1"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(comments.deleted) != 1 {
		t.Errorf("deleted = %v", comments.deleted)
	}
}
