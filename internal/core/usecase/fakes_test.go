package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

// In-memory фейки портов для тестов use case'ов.

type fakeBookRepo struct {
	books  map[string]*domain.Book
	nextID string

	getErr    error
	updateErr error

	updates []domain.Book
}

func newFakeBookRepo(books ...*domain.Book) *fakeBookRepo {
	repo := &fakeBookRepo{books: make(map[string]*domain.Book), nextID: "book-new"}
	for _, b := range books {
		copied := *b
		repo.books[b.ID] = &copied
	}
	return repo
}

func (f *fakeBookRepo) NewID() string { return f.nextID }

func (f *fakeBookRepo) Create(ctx context.Context, book *domain.Book) error {
	copied := *book
	f.books[book.ID] = &copied
	return nil
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	book, ok := f.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, book *domain.Book) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	copied := *book
	f.books[book.ID] = &copied
	f.updates = append(f.updates, copied)
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id string) error {
	delete(f.books, id)
	return nil
}

func (f *fakeBookRepo) Find(ctx context.Context, filter port.BookFilter, limit, offset int) ([]domain.Book, error) {
	return nil, nil
}

func (f *fakeBookRepo) Count(ctx context.Context, filter port.BookFilter) (int, error) {
	return 0, nil
}

type fakeTransactionRepo struct {
	transactions map[string]*domain.Transaction
	nextID       string
	exists       bool

	asBuyer  []domain.Transaction
	asSeller []domain.Transaction

	updates []domain.Transaction
}

func newFakeTransactionRepo(transactions ...*domain.Transaction) *fakeTransactionRepo {
	repo := &fakeTransactionRepo{transactions: make(map[string]*domain.Transaction), nextID: "tx-new"}
	for _, t := range transactions {
		copied := *t
		repo.transactions[t.ID] = &copied
	}
	return repo
}

func (f *fakeTransactionRepo) Create(ctx context.Context, t *domain.Transaction) (string, error) {
	copied := *t
	copied.ID = f.nextID
	f.transactions[copied.ID] = &copied
	return copied.ID, nil
}

func (f *fakeTransactionRepo) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	t, ok := f.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTransactionRepo) Update(ctx context.Context, t *domain.Transaction) error {
	copied := *t
	f.transactions[t.ID] = &copied
	f.updates = append(f.updates, copied)
	return nil
}

func (f *fakeTransactionRepo) ExistsForBookAndBuyer(ctx context.Context, bookID, buyerID string) (bool, error) {
	return f.exists, nil
}

func filterByStatus(list []domain.Transaction, status *domain.TransactionStatus) []domain.Transaction {
	if status == nil {
		return list
	}
	var out []domain.Transaction
	for _, t := range list {
		if t.Status == *status {
			out = append(out, t)
		}
	}
	return out
}

func (f *fakeTransactionRepo) FindByBuyer(ctx context.Context, buyerID string, status *domain.TransactionStatus, limit, offset int) ([]domain.Transaction, error) {
	return filterByStatus(f.asBuyer, status), nil
}

func (f *fakeTransactionRepo) CountByBuyer(ctx context.Context, buyerID string, status *domain.TransactionStatus) (int, error) {
	return len(filterByStatus(f.asBuyer, status)), nil
}

func (f *fakeTransactionRepo) FindBySeller(ctx context.Context, sellerID string, status *domain.TransactionStatus, limit, offset int) ([]domain.Transaction, error) {
	return filterByStatus(f.asSeller, status), nil
}

func (f *fakeTransactionRepo) CountBySeller(ctx context.Context, sellerID string, status *domain.TransactionStatus) (int, error) {
	return len(filterByStatus(f.asSeller, status)), nil
}

func (f *fakeTransactionRepo) FindAllByBuyer(ctx context.Context, buyerID string) ([]domain.Transaction, error) {
	return f.asBuyer, nil
}

func (f *fakeTransactionRepo) FindAllBySeller(ctx context.Context, sellerID string) ([]domain.Transaction, error) {
	return f.asSeller, nil
}

func (f *fakeTransactionRepo) FindByBook(ctx context.Context, bookID string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, t := range f.transactions {
		if t.BookID == bookID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		copied := *u
		repo.users[u.ID] = &copied
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) (string, error) {
	id := fmt.Sprintf("user-%d", len(f.users)+1)
	copied := *u
	copied.ID = id
	f.users[id] = &copied
	return id, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

// Загрузки идут конкурентно, поэтому фейк защищён мьютексом.
type fakeBlobStorage struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string

	uploadErr error
	deleteErr error
}

func (f *fakeBlobStorage) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	url := "https://storage.googleapis.com/test-bucket/" + objectPath
	f.mu.Lock()
	f.uploaded = append(f.uploaded, url)
	f.mu.Unlock()
	return url, nil
}

func (f *fakeBlobStorage) Delete(ctx context.Context, publicURL string) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, publicURL)
	f.mu.Unlock()
	return f.deleteErr
}

func floatPtr(v float64) *float64                              { return &v }
func strPtr(v string) *string                                  { return &v }
func statusPtr(s domain.TransactionStatus) *domain.TransactionStatus { return &s }
