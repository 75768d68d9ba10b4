package rest

import (
	"errors"
	"net/http"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

// statusForError маппит доменные ошибки на HTTP-статусы.
// Всё, что не входит в известный список, считается внутренней ошибкой.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrBookNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrNotParticipant):
		return http.StatusForbidden

	case errors.Is(err, domain.ErrTransactionExists),
		errors.Is(err, domain.ErrEmailInUse):
		return http.StatusConflict

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrPriceRequired),
		errors.Is(err, domain.ErrExchangeWishlistRequired),
		errors.Is(err, domain.ErrNoImages),
		errors.Is(err, domain.ErrTooManyImages),
		errors.Is(err, domain.ErrImageTooLarge),
		errors.Is(err, domain.ErrInvalidBookType),
		errors.Is(err, domain.ErrInvalidBookStatus),
		errors.Is(err, domain.ErrInvalidTransactionType),
		errors.Is(err, domain.ErrInvalidTransactionStatus),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrFieldInvalid),
		errors.Is(err, domain.ErrInvalidStatusTransition),
		errors.Is(err, domain.ErrOwnTransaction):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondUseCaseError логирует ошибку use case и отвечает клиенту.
// Текст доменной ошибки безопасен для клиента; внутренние детали — нет.
func respondUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, status, "Internal server error")
		return
	}
	logger.Warn("Use case rejected request", port.Fields{"error": err.Error(), "status": status})
	WriteJSONError(w, status, err.Error())
}
