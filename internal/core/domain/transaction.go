package domain

import (
	"fmt"
	"time"
)

// TransactionStatus — статус переговоров. Движется только вперёд:
// negotiating -> confirmed -> completed.
type TransactionStatus string

const (
	TransactionNegotiating TransactionStatus = "negotiating"
	TransactionConfirmed   TransactionStatus = "confirmed"
	TransactionCompleted   TransactionStatus = "completed"
)

// statusTransitions — статическая таблица разрешённых переходов.
// Всё, чего нет в таблице, отклоняется (кроме перехода в тот же статус,
// который считается no-op и обрабатывается вызывающей стороной).
var statusTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionNegotiating: {TransactionConfirmed},
	TransactionConfirmed:   {TransactionCompleted},
	TransactionCompleted:   {},
}

// CanTransitionTo проверяет переход по таблице. Переход "в тот же статус"
// таблицей не покрывается — это ответственность вызывающего кода.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch TransactionStatus(s) {
	case TransactionNegotiating, TransactionConfirmed, TransactionCompleted:
		return TransactionStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTransactionStatus, s)
}

// TransactionType — чем завершается сделка: покупкой или обменом.
type TransactionType string

const (
	TransactionTypeSell     TransactionType = "sell"
	TransactionTypeExchange TransactionType = "exchange"
)

func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionTypeSell, TransactionTypeExchange:
		return TransactionType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
}

// TransactionRole — с какой стороны сделки выступает пользователь в выборке.
type TransactionRole string

const (
	RoleBuyer  TransactionRole = "buyer"
	RoleSeller TransactionRole = "seller"
	RoleAll    TransactionRole = "all"
)

func ParseTransactionRole(s string) (TransactionRole, error) {
	switch TransactionRole(s) {
	case RoleBuyer, RoleSeller, RoleAll:
		return TransactionRole(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// Transaction — запись переговоров между владельцем книги (seller)
// и заинтересованным пользователем (buyer).
// SellerID копируется из объявления в момент создания и больше не меняется.
type Transaction struct {
	ID       string
	BookID   string
	SellerID string
	BuyerID  string

	Status TransactionStatus
	Type   TransactionType

	AgreedPrice     *float64 // согласованная цена, может меняться на любом этапе
	ExchangeDetails *string  // детали обмена, аналогично

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time // выставляется ровно один раз при входе в completed
}

// IsParticipant — читать и менять транзакцию могут только её стороны.
func (t *Transaction) IsParticipant(userID string) bool {
	return t.BuyerID == userID || t.SellerID == userID
}

// TransactionPatch — частичное обновление транзакции.
type TransactionPatch struct {
	Status          *TransactionStatus
	AgreedPrice     *float64
	ExchangeDetails *string
}

// TransactionView — транзакция, обогащённая карточкой книги
// и публичными профилями обеих сторон.
type TransactionView struct {
	Transaction
	Book   BookCard
	Seller PublicProfile
	Buyer  PublicProfile
}
