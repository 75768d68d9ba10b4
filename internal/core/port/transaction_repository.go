package port

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

// TransactionRepositoryPort — контракт хранилища транзакций.
//
// Хранилище не умеет OR по двум разным полям, поэтому кейс
// "я покупатель ИЛИ продавец" собирается из двух отдельных запросов
// (FindAllByBuyer + FindAllBySeller) и сливается в памяти ядром.
type TransactionRepositoryPort interface {
	// Create сохраняет транзакцию и возвращает назначенный хранилищем ID.
	Create(ctx context.Context, t *domain.Transaction) (string, error)

	// GetByID возвращает domain.ErrTransactionNotFound, если документа нет.
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)

	// Update перезаписывает документ целиком.
	Update(ctx context.Context, t *domain.Transaction) error

	// ExistsForBookAndBuyer — проверка "одна транзакция на пару (книга, покупатель)".
	// Это read-then-write проверка без транзакционной гарантии хранилища,
	// поэтому уникальность best-effort (см. DESIGN.md).
	ExistsForBookAndBuyer(ctx context.Context, bookID, buyerID string) (bool, error)

	// Одно-предикатный путь: count + windowed-страница на стороне хранилища,
	// упорядочивание по createdAt по убыванию.
	FindByBuyer(ctx context.Context, buyerID string, status *domain.TransactionStatus, limit, offset int) ([]domain.Transaction, error)
	CountByBuyer(ctx context.Context, buyerID string, status *domain.TransactionStatus) (int, error)
	FindBySeller(ctx context.Context, sellerID string, status *domain.TransactionStatus, limit, offset int) ([]domain.Transaction, error)
	CountBySeller(ctx context.Context, sellerID string, status *domain.TransactionStatus) (int, error)

	// Merged-путь: обе выборки без окна и без сортировки — фильтрация по
	// статусу, сортировка и нарезка страницы происходят в памяти.
	FindAllByBuyer(ctx context.Context, buyerID string) ([]domain.Transaction, error)
	FindAllBySeller(ctx context.Context, sellerID string) ([]domain.Transaction, error)

	// FindByBook — все транзакции по книге, createdAt по убыванию, без пагинации.
	FindByBook(ctx context.Context, bookID string) ([]domain.Transaction, error)
}
