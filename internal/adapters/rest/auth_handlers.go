package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contracts"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port/usecases_port"
)

// AuthHandler обслуживает /auth/*.
type AuthHandler struct {
	registerUC usecases_port.RegisterUserUseCasePort
	loginUC    usecases_port.LoginUserUseCasePort
}

// NewAuthHandler - конструктор.
func NewAuthHandler(registerUC usecases_port.RegisterUserUseCasePort, loginUC usecases_port.LoginUserUseCasePort) *AuthHandler {
	return &AuthHandler{registerUC: registerUC, loginUC: loginUC}
}

// readValidatedBody читает тело и прогоняет его через JSON-схему.
func readValidatedBody(r *http.Request, schemaName string, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if err := contracts.ValidateRequest(schemaName, body); err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// Register обрабатывает POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Register"})

	var req RegisterRequest
	if err := readValidatedBody(r, "RegisterRequest", &req); err != nil {
		logger.Warn("Invalid registration request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Info("Processing registration request", port.Fields{"email": req.Email})

	user, err := h.registerUC.Execute(r.Context(), domain.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Department: req.Department,
		StudentID:  req.StudentID,
	})
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	logger.Info("User registered successfully", port.Fields{"user_id": user.ID})
	RespondWithJSON(w, http.StatusCreated, toUserResponse(user))
}

// Login обрабатывает POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req LoginRequest
	if err := readValidatedBody(r, "LoginRequest", &req); err != nil {
		logger.Warn("Invalid login request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Info("Processing login request", port.Fields{"email": req.Email})

	user, token, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	logger.Info("User logged in successfully", port.Fields{"user_id": user.ID})
	RespondWithJSON(w, http.StatusOK, AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}
