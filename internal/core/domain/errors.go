package domain

import (
	"errors"
	"fmt"
)

// Определяем переменные-ошибки, которые могут быть возвращены из Use Cases.
// REST-адаптер маппит их на HTTP-статусы через errors.Is.
var (
	// Not found (404)
	ErrBookNotFound        = errors.New("book not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Forbidden (403) — аутентифицирован, но не имеет права на объект.
	ErrNotOwner       = errors.New("you do not own this resource")
	ErrNotParticipant = errors.New("you are not part of this transaction")

	// Validation (400) — некорректные входные данные.
	ErrPriceRequired            = errors.New("price is required for sell type")
	ErrExchangeWishlistRequired = errors.New("exchange wishlist is required for exchange type")
	ErrNoImages                 = errors.New("at least one image is required")
	ErrTooManyImages            = errors.New("maximum 5 images allowed")
	ErrImageTooLarge            = errors.New("image size must not exceed 5MB")
	ErrInvalidBookType          = errors.New("invalid book type")
	ErrInvalidBookStatus        = errors.New("invalid book status")
	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")
	ErrInvalidRole              = errors.New("invalid transaction role")
	ErrFieldInvalid             = errors.New("invalid or missing field")

	// Invalid request (400) — запрос противоречит текущему состоянию.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrOwnTransaction          = errors.New("you cannot create a transaction for your own book")

	// Conflict (409)
	ErrTransactionExists = errors.New("transaction already exists for this book")
	ErrEmailInUse        = errors.New("email already registered")

	// Unauthorized (401)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid jwt token")
)

// NewFieldError помечает конкретное поле запроса как некорректное.
func NewFieldError(field string) error {
	return fmt.Errorf("%w: %s", ErrFieldInvalid, field)
}
