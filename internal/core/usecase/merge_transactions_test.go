package usecase

import (
	"testing"
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
)

func txAt(id string, status domain.TransactionStatus, createdAt time.Time) domain.Transaction {
	return domain.Transaction{ID: id, Status: status, CreatedAt: createdAt}
}

func TestMergeUserTransactionsOrdersByCreatedAtDesc(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	asBuyer := []domain.Transaction{
		txAt("b1", domain.TransactionNegotiating, base.Add(1*time.Hour)),
		txAt("b2", domain.TransactionConfirmed, base.Add(4*time.Hour)),
		txAt("b3", domain.TransactionCompleted, base.Add(2*time.Hour)),
	}
	asSeller := []domain.Transaction{
		txAt("s1", domain.TransactionNegotiating, base.Add(5*time.Hour)),
		txAt("s2", domain.TransactionNegotiating, base.Add(3*time.Hour)),
	}

	page, total := mergeUserTransactions(asBuyer, asSeller, nil, paging.Params{Page: 1, Limit: 20})
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}

	wantOrder := []string{"s1", "b2", "s2", "b3", "b1"}
	if len(page) != len(wantOrder) {
		t.Fatalf("page size = %d, want %d", len(page), len(wantOrder))
	}
	for i, want := range wantOrder {
		if page[i].ID != want {
			t.Errorf("page[%d].ID = %s, want %s", i, page[i].ID, want)
		}
	}
}

func TestMergeUserTransactionsStatusFilter(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	asBuyer := []domain.Transaction{
		txAt("b1", domain.TransactionNegotiating, base.Add(1*time.Hour)),
		txAt("b2", domain.TransactionConfirmed, base.Add(2*time.Hour)),
	}
	asSeller := []domain.Transaction{
		txAt("s1", domain.TransactionNegotiating, base.Add(3*time.Hour)),
	}

	page, total := mergeUserTransactions(asBuyer, asSeller, statusPtr(domain.TransactionNegotiating), paging.Params{Page: 1, Limit: 20})

	// total считается после фильтра — это число, которое видит клиент
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	if len(page) != 2 || page[0].ID != "s1" || page[1].ID != "b1" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestMergeUserTransactionsWindowing(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var asBuyer []domain.Transaction
	for i := 0; i < 5; i++ {
		asBuyer = append(asBuyer, txAt(string(rune('a'+i)), domain.TransactionNegotiating, base.Add(time.Duration(i)*time.Hour)))
	}

	page, total := mergeUserTransactions(asBuyer, nil, nil, paging.Params{Page: 2, Limit: 2})
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	// порядок убывающий: e d | c b | a
	if len(page) != 2 || page[0].ID != "c" || page[1].ID != "b" {
		t.Fatalf("unexpected second page: %+v", page)
	}

	// страница за пределами данных — пустая, без ошибки
	page, _ = mergeUserTransactions(asBuyer, nil, nil, paging.Params{Page: 10, Limit: 2})
	if len(page) != 0 {
		t.Fatalf("expected empty page, got %+v", page)
	}
}

func TestMergeUserTransactionsStableOnEqualCreatedAt(t *testing.T) {
	same := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	asBuyer := []domain.Transaction{txAt("b1", domain.TransactionNegotiating, same)}
	asSeller := []domain.Transaction{txAt("s1", domain.TransactionNegotiating, same)}

	// при равных createdAt покупательские записи идут раньше продавецких
	page, _ := mergeUserTransactions(asBuyer, asSeller, nil, paging.Params{Page: 1, Limit: 20})
	if page[0].ID != "b1" || page[1].ID != "s1" {
		t.Fatalf("unexpected tie-break order: %+v", page)
	}
}
