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

// FirestoreCommentRepository - реализация порта для Firestore.
type FirestoreCommentRepository struct {
	client *firestore.Client
}

// NewFirestoreCommentRepository - конструктор.
func NewFirestoreCommentRepository(client *firestore.Client) (*FirestoreCommentRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore.Client cannot be nil")
	}
	return &FirestoreCommentRepository{client: client}, nil
}

type commentDoc struct {
	BookID    string    `firestore:"bookId"`
	AuthorID  string    `firestore:"authorId"`
	Content   string    `firestore:"content"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func commentToDoc(c *domain.Comment) commentDoc {
	return commentDoc{
		BookID:    c.BookID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d commentDoc) toDomain(id string) domain.Comment {
	return domain.Comment{
		ID:        id,
		BookID:    d.BookID,
		AuthorID:  d.AuthorID,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *FirestoreCommentRepository) Create(ctx context.Context, c *domain.Comment) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreCommentRepository",
		"method":    "Create",
		"book_id":   c.BookID,
	})
	repoLogger.Debug("Attempting to create comment document.", nil)

	ref, _, err := r.client.Collection(commentsCollection).Add(ctx, commentToDoc(c))
	if err != nil {
		repoLogger.Error("Failed to create comment document", err, nil)
		return "", fmt.Errorf("failed to create comment: %w", err)
	}
	return ref.ID, nil
}

func (r *FirestoreCommentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "FirestoreCommentRepository",
		"method":     "GetByID",
		"comment_id": id,
	})

	snap, err := r.client.Collection(commentsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrCommentNotFound
		}
		repoLogger.Error("Failed to get comment document", err, nil)
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	var doc commentDoc
	if err := snap.DataTo(&doc); err != nil {
		repoLogger.Error("Failed to decode comment document", err, nil)
		return nil, fmt.Errorf("failed to decode comment: %w", err)
	}

	c := doc.toDomain(snap.Ref.ID)
	return &c, nil
}

func (r *FirestoreCommentRepository) Update(ctx context.Context, c *domain.Comment) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "FirestoreCommentRepository",
		"method":     "Update",
		"comment_id": c.ID,
	})

	_, err := r.client.Collection(commentsCollection).Doc(c.ID).Set(ctx, commentToDoc(c))
	if err != nil {
		repoLogger.Error("Failed to update comment document", err, nil)
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (r *FirestoreCommentRepository) Delete(ctx context.Context, id string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "FirestoreCommentRepository",
		"method":     "Delete",
		"comment_id": id,
	})

	_, err := r.client.Collection(commentsCollection).Doc(id).Delete(ctx)
	if err != nil {
		repoLogger.Error("Failed to delete comment document", err, nil)
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// FindByBook — от старых к новым: лента комментариев читается как диалог.
func (r *FirestoreCommentRepository) FindByBook(ctx context.Context, bookID string, limit, offset int) ([]domain.Comment, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreCommentRepository",
		"method":    "FindByBook",
		"book_id":   bookID,
	})

	iter := r.client.Collection(commentsCollection).
		Where("bookId", "==", bookID).
		OrderBy("createdAt", firestore.Asc).
		Offset(offset).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var comments []domain.Comment
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			repoLogger.Error("Failed to iterate comment documents", err, nil)
			return nil, fmt.Errorf("failed to query comments: %w", err)
		}

		var doc commentDoc
		if err := snap.DataTo(&doc); err != nil {
			repoLogger.Error("Failed to decode comment document", err, port.Fields{"comment_id": snap.Ref.ID})
			return nil, fmt.Errorf("failed to decode comment %s: %w", snap.Ref.ID, err)
		}
		comments = append(comments, doc.toDomain(snap.Ref.ID))
	}

	repoLogger.Debug("Successfully queried comments.", port.Fields{"found": len(comments)})
	return comments, nil
}

func (r *FirestoreCommentRepository) CountByBook(ctx context.Context, bookID string) (int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreCommentRepository",
		"method":    "CountByBook",
		"book_id":   bookID,
	})

	q := r.client.Collection(commentsCollection).Where("bookId", "==", bookID)
	total, err := runCount(ctx, q)
	if err != nil {
		repoLogger.Error("Failed to count comments", err, nil)
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return total, nil
}
