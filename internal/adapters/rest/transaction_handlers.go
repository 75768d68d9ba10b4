package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port/usecases_port"
)

const defaultTransactionPageLimit = 20

// TransactionHandler обслуживает /transactions/*.
type TransactionHandler struct {
	createUC   usecases_port.CreateTransactionUseCasePort
	getUC      usecases_port.GetTransactionUseCasePort
	updateUC   usecases_port.UpdateTransactionUseCasePort
	findUserUC usecases_port.FindUserTransactionsUseCasePort
	findBookUC usecases_port.FindBookTransactionsUseCasePort
}

// NewTransactionHandler - конструктор.
func NewTransactionHandler(
	createUC usecases_port.CreateTransactionUseCasePort,
	getUC usecases_port.GetTransactionUseCasePort,
	updateUC usecases_port.UpdateTransactionUseCasePort,
	findUserUC usecases_port.FindUserTransactionsUseCasePort,
	findBookUC usecases_port.FindBookTransactionsUseCasePort,
) *TransactionHandler {
	return &TransactionHandler{
		createUC:   createUC,
		getUC:      getUC,
		updateUC:   updateUC,
		findUserUC: findUserUC,
		findBookUC: findBookUC,
	}
}

// Create обрабатывает POST /api/v1/transactions
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateTransaction"})

	userID, ok := UserIDFromRequest(r)
	if !ok {
		logger.Error("Missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	var req CreateTransactionRequest
	if err := readValidatedBody(r, "CreateTransactionRequest", &req); err != nil {
		logger.Warn("Invalid transaction request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	transactionType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Info("Processing transaction creation", port.Fields{"user_id": userID, "book_id": req.BookID})

	view, err := h.createUC.Execute(r.Context(), userID, domain.CreateTransactionInput{
		BookID:  req.BookID,
		Type:    transactionType,
		Message: req.Message,
	})
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, toTransactionResponse(*view))
}

// FindMine обрабатывает GET /api/v1/transactions
func (h *TransactionHandler) FindMine(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "FindUserTransactions"})

	userID, ok := UserIDFromRequest(r)
	if !ok {
		logger.Error("Missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	// Роль по умолчанию — all: пользователь видит обе стороны своих сделок.
	role := domain.RoleAll
	if roleStr := r.URL.Query().Get("role"); roleStr != "" {
		parsed, err := domain.ParseTransactionRole(roleStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		role = parsed
	}

	var status *domain.TransactionStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		parsed, err := domain.ParseTransactionStatus(statusStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		status = &parsed
	}

	p := ParsePaging(r, defaultTransactionPageLimit)

	views, total, err := h.findUserUC.Execute(r.Context(), userID, role, status, p)
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, PaginatedResponse{
		Data:       toTransactionResponses(views),
		Pagination: toPaginationMeta(paging.NewMeta(total, p)),
	})
}

// Get обрабатывает GET /api/v1/transactions/{transactionID}
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetTransaction"})

	userID, ok := UserIDFromRequest(r)
	if !ok {
		logger.Error("Missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	view, err := h.getUC.Execute(r.Context(), chi.URLParam(r, "transactionID"), userID)
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toTransactionResponse(*view))
}

// Update обрабатывает PATCH /api/v1/transactions/{transactionID}
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateTransaction"})

	userID, ok := UserIDFromRequest(r)
	if !ok {
		logger.Error("Missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	var req UpdateTransactionRequest
	if err := readValidatedBody(r, "UpdateTransactionRequest", &req); err != nil {
		logger.Warn("Invalid transaction update body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := domain.TransactionPatch{
		AgreedPrice:     req.AgreedPrice,
		ExchangeDetails: req.ExchangeDetails,
	}
	if req.Status != nil {
		status, err := domain.ParseTransactionStatus(*req.Status)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		patch.Status = &status
	}

	transactionID := chi.URLParam(r, "transactionID")
	logger.Info("Processing transaction update", port.Fields{"transaction_id": transactionID, "user_id": userID})

	view, err := h.updateUC.Execute(r.Context(), transactionID, userID, patch)
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toTransactionResponse(*view))
}

// FindByBook обрабатывает GET /api/v1/transactions/book/{bookID}
func (h *TransactionHandler) FindByBook(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "FindBookTransactions"})

	userID, ok := UserIDFromRequest(r)
	if !ok {
		logger.Error("Missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	views, err := h.findBookUC.Execute(r.Context(), chi.URLParam(r, "bookID"), userID)
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toTransactionResponses(views))
}
