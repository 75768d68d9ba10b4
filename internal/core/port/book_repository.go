package port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

// BookFilter — набор equality-предикатов для выборки объявлений.
// Хранилище документов умеет только AND по равенству полей.
type BookFilter struct {
	OwnerID    string
	Department string
	Course     string
	Type       *domain.BookType
	Status     *domain.BookStatus
}

// BookRepositoryPort — контракт хранилища объявлений.
type BookRepositoryPort interface {
	// NewID выдаёт свежий идентификатор документа без записи.
	// Нужен, чтобы загрузить изображения по пути с bookID до создания записи.
	NewID() string

	// Create сохраняет книгу под её ID. ID должен быть получен через NewID.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID возвращает domain.ErrBookNotFound, если документа нет.
	GetByID(ctx context.Context, id string) (*domain.Book, error)

	// Update перезаписывает все поля документа целиком: обновление либо
	// применяется полностью, либо не применяется вовсе.
	Update(ctx context.Context, book *domain.Book) error

	Delete(ctx context.Context, id string) error

	// Find возвращает страницу, упорядоченную по createdAt по убыванию.
	Find(ctx context.Context, filter BookFilter, limit, offset int) ([]domain.Book, error)

	// Count — количество документов, подходящих под фильтр.
	Count(ctx context.Context, filter BookFilter) (int, error)
}
