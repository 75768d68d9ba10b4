package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port/usecases_port"
)

// UserHandler обслуживает /users/*.
type UserHandler struct {
	getProfileUC    usecases_port.GetUserProfileUseCasePort
	updateProfileUC usecases_port.UpdateUserProfileUseCasePort
	getPublicUC     usecases_port.GetPublicProfileUseCasePort
}

// NewUserHandler - конструктор.
func NewUserHandler(
	getProfileUC usecases_port.GetUserProfileUseCasePort,
	updateProfileUC usecases_port.UpdateUserProfileUseCasePort,
	getPublicUC usecases_port.GetPublicProfileUseCasePort,
) *UserHandler {
	return &UserHandler{
		getProfileUC:    getProfileUC,
		updateProfileUC: updateProfileUC,
		getPublicUC:     getPublicUC,
	}
}

// GetMe обрабатывает GET /api/v1/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetMe"})

	userID, ok := UserIDFromRequest(r)
	if !ok {
		logger.Error("Missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	user, err := h.getProfileUC.Execute(r.Context(), userID)
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateMe обрабатывает PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateMe"})

	userID, ok := UserIDFromRequest(r)
	if !ok {
		logger.Error("Missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	var req UpdateUserRequest
	if err := readValidatedBody(r, "UpdateUserRequest", &req); err != nil {
		logger.Warn("Invalid profile update body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Info("Processing profile update", port.Fields{"user_id": userID})

	user, err := h.updateProfileUC.Execute(r.Context(), userID, domain.UserPatch{
		Name:       req.Name,
		Department: req.Department,
		Password:   req.Password,
	})
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toUserResponse(user))
}

// GetPublicProfile обрабатывает GET /api/v1/users/{userID}
func (h *UserHandler) GetPublicProfile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetPublicProfile"})

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		WriteJSONError(w, http.StatusBadRequest, "userID is required")
		return
	}

	profile, err := h.getPublicUC.Execute(r.Context(), userID)
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toPublicProfileResponse(*profile))
}
