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

// FirestoreTransactionRepository - реализация порта для Firestore.
type FirestoreTransactionRepository struct {
	client *firestore.Client
}

// NewFirestoreTransactionRepository - конструктор.
func NewFirestoreTransactionRepository(client *firestore.Client) (*FirestoreTransactionRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore.Client cannot be nil")
	}
	return &FirestoreTransactionRepository{client: client}, nil
}

type transactionDoc struct {
	BookID          string     `firestore:"bookId"`
	SellerID        string     `firestore:"sellerId"`
	BuyerID         string     `firestore:"buyerId"`
	Status          string     `firestore:"status"`
	Type            string     `firestore:"type"`
	AgreedPrice     *float64   `firestore:"agreedPrice"`
	ExchangeDetails *string    `firestore:"exchangeDetails"`
	CreatedAt       time.Time  `firestore:"createdAt"`
	UpdatedAt       time.Time  `firestore:"updatedAt"`
	CompletedAt     *time.Time `firestore:"completedAt"`
}

func transactionToDoc(t *domain.Transaction) transactionDoc {
	return transactionDoc{
		BookID:          t.BookID,
		SellerID:        t.SellerID,
		BuyerID:         t.BuyerID,
		Status:          string(t.Status),
		Type:            string(t.Type),
		AgreedPrice:     t.AgreedPrice,
		ExchangeDetails: t.ExchangeDetails,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
		CompletedAt:     t.CompletedAt,
	}
}

func (d transactionDoc) toDomain(id string) domain.Transaction {
	return domain.Transaction{
		ID:              id,
		BookID:          d.BookID,
		SellerID:        d.SellerID,
		BuyerID:         d.BuyerID,
		Status:          domain.TransactionStatus(d.Status),
		Type:            domain.TransactionType(d.Type),
		AgreedPrice:     d.AgreedPrice,
		ExchangeDetails: d.ExchangeDetails,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		CompletedAt:     d.CompletedAt,
	}
}

func (r *FirestoreTransactionRepository) Create(ctx context.Context, t *domain.Transaction) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreTransactionRepository",
		"method":    "Create",
		"book_id":   t.BookID,
	})
	repoLogger.Debug("Attempting to create transaction document.", nil)

	ref, _, err := r.client.Collection(transactionsCollection).Add(ctx, transactionToDoc(t))
	if err != nil {
		repoLogger.Error("Failed to create transaction document", err, nil)
		return "", fmt.Errorf("failed to create transaction: %w", err)
	}

	repoLogger.Debug("Successfully created transaction document.", port.Fields{"transaction_id": ref.ID})
	return ref.ID, nil
}

func (r *FirestoreTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":      "FirestoreTransactionRepository",
		"method":         "GetByID",
		"transaction_id": id,
	})

	snap, err := r.client.Collection(transactionsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrTransactionNotFound
		}
		repoLogger.Error("Failed to get transaction document", err, nil)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	var doc transactionDoc
	if err := snap.DataTo(&doc); err != nil {
		repoLogger.Error("Failed to decode transaction document", err, nil)
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}

	t := doc.toDomain(snap.Ref.ID)
	return &t, nil
}

func (r *FirestoreTransactionRepository) Update(ctx context.Context, t *domain.Transaction) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":      "FirestoreTransactionRepository",
		"method":         "Update",
		"transaction_id": t.ID,
	})

	_, err := r.client.Collection(transactionsCollection).Doc(t.ID).Set(ctx, transactionToDoc(t))
	if err != nil {
		repoLogger.Error("Failed to update transaction document", err, nil)
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// ExistsForBookAndBuyer — Limit(1) вместо count: нужен только факт наличия.
func (r *FirestoreTransactionRepository) ExistsForBookAndBuyer(ctx context.Context, bookID, buyerID string) (bool, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreTransactionRepository",
		"method":    "ExistsForBookAndBuyer",
		"book_id":   bookID,
		"buyer_id":  buyerID,
	})

	iter := r.client.Collection(transactionsCollection).
		Where("bookId", "==", bookID).
		Where("buyerId", "==", buyerID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return false, nil
	}
	if err != nil {
		repoLogger.Error("Failed to check for existing transaction", err, nil)
		return false, fmt.Errorf("failed to check for existing transaction: %w", err)
	}
	return true, nil
}

func (r *FirestoreTransactionRepository) FindByBuyer(ctx context.Context, buyerID string, status *domain.TransactionStatus, limit, offset int) ([]domain.Transaction, error) {
	q := r.roleQuery("buyerId", buyerID, status).
		OrderBy("createdAt", firestore.Desc).
		Offset(offset).
		Limit(limit)
	return r.runQuery(ctx, "FindByBuyer", q)
}

func (r *FirestoreTransactionRepository) CountByBuyer(ctx context.Context, buyerID string, status *domain.TransactionStatus) (int, error) {
	return r.runRoleCount(ctx, "CountByBuyer", r.roleQuery("buyerId", buyerID, status))
}

func (r *FirestoreTransactionRepository) FindBySeller(ctx context.Context, sellerID string, status *domain.TransactionStatus, limit, offset int) ([]domain.Transaction, error) {
	q := r.roleQuery("sellerId", sellerID, status).
		OrderBy("createdAt", firestore.Desc).
		Offset(offset).
		Limit(limit)
	return r.runQuery(ctx, "FindBySeller", q)
}

func (r *FirestoreTransactionRepository) CountBySeller(ctx context.Context, sellerID string, status *domain.TransactionStatus) (int, error) {
	return r.runRoleCount(ctx, "CountBySeller", r.roleQuery("sellerId", sellerID, status))
}

// Merged-путь: выборка без окна и сортировки, страницу собирает ядро.
func (r *FirestoreTransactionRepository) FindAllByBuyer(ctx context.Context, buyerID string) ([]domain.Transaction, error) {
	q := r.client.Collection(transactionsCollection).Where("buyerId", "==", buyerID)
	return r.runQuery(ctx, "FindAllByBuyer", q)
}

func (r *FirestoreTransactionRepository) FindAllBySeller(ctx context.Context, sellerID string) ([]domain.Transaction, error) {
	q := r.client.Collection(transactionsCollection).Where("sellerId", "==", sellerID)
	return r.runQuery(ctx, "FindAllBySeller", q)
}

func (r *FirestoreTransactionRepository) FindByBook(ctx context.Context, bookID string) ([]domain.Transaction, error) {
	q := r.client.Collection(transactionsCollection).
		Where("bookId", "==", bookID).
		OrderBy("createdAt", firestore.Desc)
	return r.runQuery(ctx, "FindByBook", q)
}

func (r *FirestoreTransactionRepository) roleQuery(field, userID string, status *domain.TransactionStatus) firestore.Query {
	q := r.client.Collection(transactionsCollection).Where(field, "==", userID)
	if status != nil {
		q = q.Where("status", "==", string(*status))
	}
	return q
}

func (r *FirestoreTransactionRepository) runQuery(ctx context.Context, method string, q firestore.Query) ([]domain.Transaction, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreTransactionRepository",
		"method":    method,
	})

	iter := q.Documents(ctx)
	defer iter.Stop()

	var transactions []domain.Transaction
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			repoLogger.Error("Failed to iterate transaction documents", err, nil)
			return nil, fmt.Errorf("failed to query transactions: %w", err)
		}

		var doc transactionDoc
		if err := snap.DataTo(&doc); err != nil {
			repoLogger.Error("Failed to decode transaction document", err, port.Fields{"transaction_id": snap.Ref.ID})
			return nil, fmt.Errorf("failed to decode transaction %s: %w", snap.Ref.ID, err)
		}
		transactions = append(transactions, doc.toDomain(snap.Ref.ID))
	}

	repoLogger.Debug("Successfully queried transactions.", port.Fields{"found": len(transactions)})
	return transactions, nil
}

func (r *FirestoreTransactionRepository) runRoleCount(ctx context.Context, method string, q firestore.Query) (int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreTransactionRepository",
		"method":    method,
	})

	total, err := runCount(ctx, q)
	if err != nil {
		repoLogger.Error("Failed to count transactions", err, nil)
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}
