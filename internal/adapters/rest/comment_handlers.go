package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port/usecases_port"
)

// Комментарии короткие, поэтому страница по умолчанию крупнее, чем у книг.
const defaultCommentPageLimit = 50

// CommentHandler обслуживает комментарии под объявлениями.
type CommentHandler struct {
	createUC usecases_port.CreateCommentUseCasePort
	findUC   usecases_port.FindBookCommentsUseCasePort
	updateUC usecases_port.UpdateCommentUseCasePort
	deleteUC usecases_port.DeleteCommentUseCasePort
}

// NewCommentHandler - конструктор.
func NewCommentHandler(
	createUC usecases_port.CreateCommentUseCasePort,
	findUC usecases_port.FindBookCommentsUseCasePort,
	updateUC usecases_port.UpdateCommentUseCasePort,
	deleteUC usecases_port.DeleteCommentUseCasePort,
) *CommentHandler {
	return &CommentHandler{
		createUC: createUC,
		findUC:   findUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// Create обрабатывает POST /api/v1/books/{bookID}/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateComment"})

	userID, ok := UserIDFromRequest(r)
	if !ok {
		logger.Error("Missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	var req CommentRequest
	if err := readValidatedBody(r, "CreateCommentRequest", &req); err != nil {
		logger.Warn("Invalid comment body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookID := chi.URLParam(r, "bookID")
	logger.Info("Processing comment creation", port.Fields{"book_id": bookID, "user_id": userID})

	view, err := h.createUC.Execute(r.Context(), bookID, userID, req.Content)
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, toCommentResponse(*view))
}

// Find обрабатывает GET /api/v1/books/{bookID}/comments
func (h *CommentHandler) Find(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "FindBookComments"})

	p := ParsePaging(r, defaultCommentPageLimit)

	views, total, err := h.findUC.Execute(r.Context(), chi.URLParam(r, "bookID"), p)
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	data := make([]CommentResponse, 0, len(views))
	for _, v := range views {
		data = append(data, toCommentResponse(v))
	}

	RespondWithJSON(w, http.StatusOK, PaginatedResponse{
		Data:       data,
		Pagination: toPaginationMeta(paging.NewMeta(total, p)),
	})
}

// Update обрабатывает PATCH /api/v1/comments/{commentID}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateComment"})

	userID, ok := UserIDFromRequest(r)
	if !ok {
		logger.Error("Missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	var req CommentRequest
	if err := readValidatedBody(r, "UpdateCommentRequest", &req); err != nil {
		logger.Warn("Invalid comment body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.updateUC.Execute(r.Context(), chi.URLParam(r, "commentID"), userID, req.Content)
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toCommentResponse(*view))
}

// Delete обрабатывает DELETE /api/v1/comments/{commentID}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteComment"})

	userID, ok := UserIDFromRequest(r)
	if !ok {
		logger.Error("Missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	if err := h.deleteUC.Execute(r.Context(), chi.URLParam(r, "commentID"), userID); err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
