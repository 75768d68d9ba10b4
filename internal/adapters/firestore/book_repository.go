package firestore_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

// FirestoreBookRepository - реализация порта для Firestore.
type FirestoreBookRepository struct {
	client *firestore.Client
}

// NewFirestoreBookRepository - конструктор.
func NewFirestoreBookRepository(client *firestore.Client) (*FirestoreBookRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore.Client cannot be nil")
	}
	return &FirestoreBookRepository{client: client}, nil
}

// bookDoc — форма документа в коллекции books. ID документа в полях
// не дублируется, он приходит из DocumentRef.
type bookDoc struct {
	OwnerID          string    `firestore:"ownerId"`
	Title            string    `firestore:"title"`
	Description      string    `firestore:"description"`
	Department       string    `firestore:"department"`
	Course           string    `firestore:"course"`
	Condition        int       `firestore:"condition"`
	Type             string    `firestore:"type"`
	Price            *float64  `firestore:"price"`
	ExchangeWishlist *string   `firestore:"exchangeWishlist"`
	Images           []string  `firestore:"images"`
	Status           string    `firestore:"status"`
	CreatedAt        time.Time `firestore:"createdAt"`
	UpdatedAt        time.Time `firestore:"updatedAt"`
}

func bookToDoc(b *domain.Book) bookDoc {
	return bookDoc{
		OwnerID:          b.OwnerID,
		Title:            b.Title,
		Description:      b.Description,
		Department:       b.Department,
		Course:           b.Course,
		Condition:        b.Condition,
		Type:             string(b.Type),
		Price:            b.Price,
		ExchangeWishlist: b.ExchangeWishlist,
		Images:           b.Images,
		Status:           string(b.Status),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func (d bookDoc) toDomain(id string) domain.Book {
	return domain.Book{
		ID:               id,
		OwnerID:          d.OwnerID,
		Title:            d.Title,
		Description:      d.Description,
		Department:       d.Department,
		Course:           d.Course,
		Condition:        d.Condition,
		Type:             domain.BookType(d.Type),
		Price:            d.Price,
		ExchangeWishlist: d.ExchangeWishlist,
		Images:           d.Images,
		Status:           domain.BookStatus(d.Status),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// NewID резервирует ID документа без обращения к серверу.
func (r *FirestoreBookRepository) NewID() string {
	return r.client.Collection(booksCollection).NewDoc().ID
}

func (r *FirestoreBookRepository) Create(ctx context.Context, book *domain.Book) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreBookRepository",
		"method":    "Create",
		"book_id":   book.ID,
	})
	repoLogger.Debug("Attempting to create book document.", nil)

	_, err := r.client.Collection(booksCollection).Doc(book.ID).Create(ctx, bookToDoc(book))
	if err != nil {
		repoLogger.Error("Failed to create book document", err, nil)
		return fmt.Errorf("failed to create book: %w", err)
	}

	repoLogger.Debug("Successfully created book document.", nil)
	return nil
}

func (r *FirestoreBookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreBookRepository",
		"method":    "GetByID",
		"book_id":   id,
	})

	snap, err := r.client.Collection(booksCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrBookNotFound
		}
		repoLogger.Error("Failed to get book document", err, nil)
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	var doc bookDoc
	if err := snap.DataTo(&doc); err != nil {
		repoLogger.Error("Failed to decode book document", err, nil)
		return nil, fmt.Errorf("failed to decode book: %w", err)
	}

	book := doc.toDomain(snap.Ref.ID)
	return &book, nil
}

// Update перезаписывает документ целиком (Set без merge-опций).
func (r *FirestoreBookRepository) Update(ctx context.Context, book *domain.Book) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreBookRepository",
		"method":    "Update",
		"book_id":   book.ID,
	})

	_, err := r.client.Collection(booksCollection).Doc(book.ID).Set(ctx, bookToDoc(book))
	if err != nil {
		repoLogger.Error("Failed to update book document", err, nil)
		return fmt.Errorf("failed to update book: %w", err)
	}
	return nil
}

func (r *FirestoreBookRepository) Delete(ctx context.Context, id string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreBookRepository",
		"method":    "Delete",
		"book_id":   id,
	})

	// Delete в Firestore идемпотентен: удаление отсутствующего документа
	// не является ошибкой. Существование проверяет вызывающий код.
	_, err := r.client.Collection(booksCollection).Doc(id).Delete(ctx)
	if err != nil {
		repoLogger.Error("Failed to delete book document", err, nil)
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}

// buildQuery собирает цепочку equality-предикатов из фильтра.
func (r *FirestoreBookRepository) buildQuery(f port.BookFilter) firestore.Query {
	q := r.client.Collection(booksCollection).Query
	if f.OwnerID != "" {
		q = q.Where("ownerId", "==", f.OwnerID)
	}
	if f.Department != "" {
		q = q.Where("department", "==", f.Department)
	}
	if f.Course != "" {
		q = q.Where("course", "==", f.Course)
	}
	if f.Type != nil {
		q = q.Where("type", "==", string(*f.Type))
	}
	if f.Status != nil {
		q = q.Where("status", "==", string(*f.Status))
	}
	return q
}

func (r *FirestoreBookRepository) Find(ctx context.Context, filter port.BookFilter, limit, offset int) ([]domain.Book, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreBookRepository",
		"method":    "Find",
		"limit":     limit,
		"offset":    offset,
	})
	repoLogger.Debug("Querying books.", nil)

	q := r.buildQuery(filter).
		OrderBy("createdAt", firestore.Desc).
		Offset(offset).
		Limit(limit)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var books []domain.Book
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			repoLogger.Error("Failed to iterate book documents", err, nil)
			return nil, fmt.Errorf("failed to query books: %w", err)
		}

		var doc bookDoc
		if err := snap.DataTo(&doc); err != nil {
			repoLogger.Error("Failed to decode book document", err, port.Fields{"book_id": snap.Ref.ID})
			return nil, fmt.Errorf("failed to decode book %s: %w", snap.Ref.ID, err)
		}
		books = append(books, doc.toDomain(snap.Ref.ID))
	}

	repoLogger.Debug("Successfully queried books.", port.Fields{"found": len(books)})
	return books, nil
}

func (r *FirestoreBookRepository) Count(ctx context.Context, filter port.BookFilter) (int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreBookRepository",
		"method":    "Count",
	})

	total, err := runCount(ctx, r.buildQuery(filter))
	if err != nil {
		repoLogger.Error("Failed to count books", err, nil)
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return total, nil
}
