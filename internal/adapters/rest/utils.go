package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// ParsePaging читает query-параметры page и limit. Нечисловые и
// внедиапазонные значения молча приводятся к допустимым — клиенту
// всегда отвечаем страницей, а не ошибкой парсинга.
func ParsePaging(r *http.Request, defaultLimit int) paging.Params {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return paging.Normalize(page, limit, defaultLimit)
}
