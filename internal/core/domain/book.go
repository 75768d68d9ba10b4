package domain

import (
	"fmt"
	"time"
)

// BookType — тип сделки, который владелец разрешает для объявления.
type BookType string

const (
	BookTypeSell     BookType = "sell"
	BookTypeExchange BookType = "exchange"
	BookTypeBoth     BookType = "both"
)

// BookStatus — статус жизненного цикла объявления.
type BookStatus string

const (
	BookStatusAvailable BookStatus = "available"
	BookStatusReserved  BookStatus = "reserved"
	BookStatusSold      BookStatus = "sold"
)

// Ограничения на изображения и состояние книги.
const (
	MinImages         = 1
	MaxImages         = 5
	MaxImageSizeBytes = 5 * 1024 * 1024 // 5MB на файл

	MinCondition = 1
	MaxCondition = 5
)

// ParseBookType валидирует строковое значение из запроса.
func ParseBookType(s string) (BookType, error) {
	switch BookType(s) {
	case BookTypeSell, BookTypeExchange, BookTypeBoth:
		return BookType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBookType, s)
}

func ParseBookStatus(s string) (BookStatus, error) {
	switch BookStatus(s) {
	case BookStatusAvailable, BookStatusReserved, BookStatusSold:
		return BookStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBookStatus, s)
}

// RequiresPrice — цена обязательна для типов sell и both.
func (t BookType) RequiresPrice() bool {
	return t == BookTypeSell || t == BookTypeBoth
}

// RequiresWishlist — список желаемого обмена обязателен для exchange и both.
func (t BookType) RequiresWishlist() bool {
	return t == BookTypeExchange || t == BookTypeBoth
}

// Book — основная доменная сущность: объявление о продаже/обмене учебника.
// ID назначается хранилищем документов.
type Book struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Department  string
	Course      string
	Condition   int // 1-5, где 5 — лучшее состояние

	Type             BookType
	Price            *float64 // присутствует только для sell/both
	ExchangeWishlist *string  // присутствует только для exchange/both

	Images []string // публичные URL, от 1 до 5
	Status BookStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateConditionalFields проверяет инвариант: наличие price и
// exchangeWishlist полностью определяется типом объявления.
func ValidateConditionalFields(t BookType, price *float64, wishlist *string) error {
	if t.RequiresPrice() && price == nil {
		return ErrPriceRequired
	}
	if t.RequiresWishlist() && (wishlist == nil || *wishlist == "") {
		return ErrExchangeWishlistRequired
	}
	return nil
}

// ValidateImageCount — количество изображений всегда в пределах [1, 5].
func ValidateImageCount(n int) error {
	if n < MinImages {
		return ErrNoImages
	}
	if n > MaxImages {
		return ErrTooManyImages
	}
	return nil
}

// BookCard — сокращённая проекция книги для встраивания в транзакции.
type BookCard struct {
	ID     string
	Title  string
	Images []string
}

func (b *Book) Card() BookCard {
	return BookCard{ID: b.ID, Title: b.Title, Images: b.Images}
}

// BookPatch — частичное обновление. nil-поле означает "не менять".
// Указатели обязательны: condition и price принимают и нулевые значения,
// поэтому "отсутствует" нельзя путать с "ноль".
type BookPatch struct {
	Title            *string
	Description      *string
	Department       *string
	Course           *string
	Condition        *int
	Type             *BookType
	Price            *float64
	ExchangeWishlist *string
	Status           *BookStatus
}

// Apply накладывает patch на книгу. Поля со значением nil не трогаем.
func (b *Book) Apply(p BookPatch) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Department != nil {
		b.Department = *p.Department
	}
	if p.Course != nil {
		b.Course = *p.Course
	}
	if p.Condition != nil {
		b.Condition = *p.Condition
	}
	if p.Type != nil {
		b.Type = *p.Type
	}
	if p.Price != nil {
		b.Price = p.Price
	}
	if p.ExchangeWishlist != nil {
		b.ExchangeWishlist = p.ExchangeWishlist
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
}

// BookView — книга, обогащённая публичным профилем владельца.
type BookView struct {
	Book
	Owner PublicProfile
}
