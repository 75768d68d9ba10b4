package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

// Кастомный тип ключа контекста, чтобы избежать коллизий.
type contextKey string

const userIDKey = contextKey("userID")

// AuthMiddleware проверяет Bearer-токен и кладёт userID в контекст запроса.
func AuthMiddleware(tokenSvc port.TokenServicePort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := contextkeys.LoggerFromContext(r.Context())

			header := r.Header.Get("Authorization")
			if header == "" {
				WriteJSONError(w, http.StatusUnauthorized, "Authorization header is missing")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				WriteJSONError(w, http.StatusUnauthorized, "Authorization header must be a Bearer token")
				return
			}

			claims, err := tokenSvc.ValidateToken(r.Context(), token)
			if err != nil {
				logger.Warn("Token validation failed", port.Fields{"error": err.Error()})
				WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromRequest достаёт userID, положенный AuthMiddleware.
func UserIDFromRequest(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}
