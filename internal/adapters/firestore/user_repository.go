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

// FirestoreUserRepository - реализация порта для Firestore.
type FirestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository - конструктор.
func NewFirestoreUserRepository(client *firestore.Client) (*FirestoreUserRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore.Client cannot be nil")
	}
	return &FirestoreUserRepository{client: client}, nil
}

type userDoc struct {
	Email        string    `firestore:"email"`
	PasswordHash string    `firestore:"passwordHash"`
	Name         string    `firestore:"name"`
	Department   string    `firestore:"department"`
	StudentID    string    `firestore:"studentId"`
	CreatedAt    time.Time `firestore:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt"`
}

func userToDoc(u *domain.User) userDoc {
	return userDoc{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Department:   u.Department,
		StudentID:    u.StudentID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDoc) toDomain(id string) domain.User {
	return domain.User{
		ID:           id,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		Department:   d.Department,
		StudentID:    d.StudentID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *FirestoreUserRepository) Create(ctx context.Context, u *domain.User) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreUserRepository",
		"method":    "Create",
		"email":     u.Email,
	})
	repoLogger.Debug("Attempting to create user document.", nil)

	ref, _, err := r.client.Collection(usersCollection).Add(ctx, userToDoc(u))
	if err != nil {
		repoLogger.Error("Failed to create user document", err, nil)
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	repoLogger.Debug("Successfully created user document.", port.Fields{"user_id": ref.ID})
	return ref.ID, nil
}

func (r *FirestoreUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreUserRepository",
		"method":    "GetByID",
		"user_id":   id,
	})

	snap, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrUserNotFound
		}
		repoLogger.Error("Failed to get user document", err, nil)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		repoLogger.Error("Failed to decode user document", err, nil)
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	u := doc.toDomain(snap.Ref.ID)
	return &u, nil
}

// FindByEmail возвращает (nil, nil), если пользователя нет — различие
// "не найден" и "ошибка хранилища" важно для вызывающего кода.
func (r *FirestoreUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreUserRepository",
		"method":    "FindByEmail",
		"email":     email,
	})

	iter := r.client.Collection(usersCollection).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, nil
	}
	if err != nil {
		repoLogger.Error("Failed to find user by email", err, nil)
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		repoLogger.Error("Failed to decode user document", err, nil)
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	u := doc.toDomain(snap.Ref.ID)
	return &u, nil
}

func (r *FirestoreUserRepository) Update(ctx context.Context, u *domain.User) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FirestoreUserRepository",
		"method":    "Update",
		"user_id":   u.ID,
	})

	_, err := r.client.Collection(usersCollection).Doc(u.ID).Set(ctx, userToDoc(u))
	if err != nil {
		repoLogger.Error("Failed to update user document", err, nil)
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
