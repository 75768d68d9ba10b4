package usecase

import (
	"sort"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
)

// mergeUserTransactions собирает страницу для роли "all" из двух выборок.
//
// Хранилище документов не умеет OR по разным полям (buyerId == X OR
// sellerId == X), поэтому выборки делаются раздельно и сливаются здесь.
// Дедупликация не нужна: транзакция на собственную книгу запрещена,
// значит одна запись не может попасть в обе выборки сразу.
//
// Порядок: createdAt по убыванию, sort.SliceStable поверх конкатенации
// (покупательские записи раньше продавецких) даёт детерминированный
// порядок при равных createdAt.
func mergeUserTransactions(asBuyer, asSeller []domain.Transaction, status *domain.TransactionStatus, p paging.Params) ([]domain.Transaction, int) {
	merged := make([]domain.Transaction, 0, len(asBuyer)+len(asSeller))
	for _, t := range asBuyer {
		if status == nil || t.Status == *status {
			merged = append(merged, t)
		}
	}
	for _, t := range asSeller {
		if status == nil || t.Status == *status {
			merged = append(merged, t)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	// total считается ПОСЛЕ фильтра по статусу — это видимое клиенту число.
	total := len(merged)
	from, to := p.Window(total)
	return merged[from:to], total
}
