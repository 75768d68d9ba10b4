package rest

import (
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
)

// --- Тела запросов ---
// Структурная валидация тел происходит в contracts по JSON-схемам,
// поэтому DTO здесь только раскладывают уже проверенный JSON по полям.

type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Department string `json:"department"`
	StudentID  string `json:"studentId"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	Password   *string `json:"password"`
}

type CreateTransactionRequest struct {
	BookID  string  `json:"bookId"`
	Type    string  `json:"transactionType"`
	Message *string `json:"message"`
}

type UpdateTransactionRequest struct {
	Status          *string  `json:"status"`
	AgreedPrice     *float64 `json:"agreedPrice"`
	ExchangeDetails *string  `json:"exchangeDetails"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

// --- Тела ответов ---

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

type PublicProfileResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department"`
	StudentID  string `json:"studentId"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type BookResponse struct {
	ID               string                 `json:"id"`
	OwnerID          string                 `json:"ownerId"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Department       string                 `json:"department"`
	Course           string                 `json:"course"`
	Condition        int                    `json:"condition"`
	Type             string                 `json:"type"`
	Price            *float64               `json:"price,omitempty"`
	ExchangeWishlist *string                `json:"exchangeWishlist,omitempty"`
	Images           []string               `json:"images"`
	Status           string                 `json:"status"`
	CreatedAt        string                 `json:"createdAt"`
	UpdatedAt        string                 `json:"updatedAt"`
	Owner            *PublicProfileResponse `json:"owner,omitempty"`
}

type BookCardResponse struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Images []string `json:"images"`
}

type TransactionResponse struct {
	ID              string                `json:"id"`
	BookID          string                `json:"bookId"`
	SellerID        string                `json:"sellerId"`
	BuyerID         string                `json:"buyerId"`
	Status          string                `json:"status"`
	Type            string                `json:"transactionType"`
	AgreedPrice     *float64              `json:"agreedPrice"`
	ExchangeDetails *string               `json:"exchangeDetails"`
	CreatedAt       string                `json:"createdAt"`
	UpdatedAt       string                `json:"updatedAt"`
	CompletedAt     *string               `json:"completedAt"`
	Book            BookCardResponse      `json:"book"`
	Seller          PublicProfileResponse `json:"seller"`
	Buyer           PublicProfileResponse `json:"buyer"`
}

type CommentResponse struct {
	ID        string                `json:"id"`
	BookID    string                `json:"bookId"`
	Content   string                `json:"content"`
	CreatedAt string                `json:"createdAt"`
	UpdatedAt string                `json:"updatedAt"`
	Author    PublicProfileResponse `json:"author"`
}

// PaginationMeta — единая форма метаданных пагинации для всех списков.
type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type PaginatedResponse struct {
	Data       interface{}    `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// --- Мапперы домен -> DTO ---

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toPaginationMeta(m paging.Meta) PaginationMeta {
	return PaginationMeta{
		Page:       m.Page,
		Limit:      m.Limit,
		Total:      m.Total,
		TotalPages: m.TotalPages,
	}
}

func toPublicProfileResponse(p domain.PublicProfile) PublicProfileResponse {
	return PublicProfileResponse{ID: p.ID, Name: p.Name, Department: p.Department}
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Department: u.Department,
		StudentID:  u.StudentID,
		CreatedAt:  formatTime(u.CreatedAt),
		UpdatedAt:  formatTime(u.UpdatedAt),
	}
}

func toBookResponse(b domain.Book) BookResponse {
	return BookResponse{
		ID:               b.ID,
		OwnerID:          b.OwnerID,
		Title:            b.Title,
		Description:      b.Description,
		Department:       b.Department,
		Course:           b.Course,
		Condition:        b.Condition,
		Type:             string(b.Type),
		Price:            b.Price,
		ExchangeWishlist: b.ExchangeWishlist,
		Images:           b.Images,
		Status:           string(b.Status),
		CreatedAt:        formatTime(b.CreatedAt),
		UpdatedAt:        formatTime(b.UpdatedAt),
	}
}

func toBookViewResponse(v domain.BookView) BookResponse {
	resp := toBookResponse(v.Book)
	owner := toPublicProfileResponse(v.Owner)
	resp.Owner = &owner
	return resp
}

func toBookCardResponse(c domain.BookCard) BookCardResponse {
	return BookCardResponse{ID: c.ID, Title: c.Title, Images: c.Images}
}

func toTransactionResponse(v domain.TransactionView) TransactionResponse {
	resp := TransactionResponse{
		ID:              v.ID,
		BookID:          v.BookID,
		SellerID:        v.SellerID,
		BuyerID:         v.BuyerID,
		Status:          string(v.Status),
		Type:            string(v.Type),
		AgreedPrice:     v.AgreedPrice,
		ExchangeDetails: v.ExchangeDetails,
		CreatedAt:       formatTime(v.CreatedAt),
		UpdatedAt:       formatTime(v.UpdatedAt),
		Book:            toBookCardResponse(v.Book),
		Seller:          toPublicProfileResponse(v.Seller),
		Buyer:           toPublicProfileResponse(v.Buyer),
	}
	if v.CompletedAt != nil {
		completed := formatTime(*v.CompletedAt)
		resp.CompletedAt = &completed
	}
	return resp
}

func toTransactionResponses(views []domain.TransactionView) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toTransactionResponse(v))
	}
	return out
}

func toCommentResponse(v domain.CommentView) CommentResponse {
	return CommentResponse{
		ID:        v.ID,
		BookID:    v.BookID,
		Content:   v.Content,
		CreatedAt: formatTime(v.CreatedAt),
		UpdatedAt: formatTime(v.UpdatedAt),
		Author:    toPublicProfileResponse(v.Author),
	}
}
