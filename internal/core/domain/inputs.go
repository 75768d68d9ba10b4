package domain

// CreateBookInput — проверенные поля запроса на создание объявления.
type CreateBookInput struct {
	Title            string
	Description      string
	Department       string
	Course           string
	Condition        int
	Type             BookType
	Price            *float64
	ExchangeWishlist *string
}

// CreateTransactionInput — поля запроса на начало переговоров.
// Message принимается от клиента, но нигде не сохраняется — переписка
// ведётся вне системы (см. non-goals).
type CreateTransactionInput struct {
	BookID  string
	Type    TransactionType
	Message *string
}

// RegisterInput — поля запроса регистрации.
type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Department string
	StudentID  string
}
