package usecase

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type GetPublicProfileUseCase struct {
	users port.UserRepositoryPort
}

func NewGetPublicProfileUseCase(users port.UserRepositoryPort) *GetPublicProfileUseCase {
	return &GetPublicProfileUseCase{users: users}
}

// Execute — публичный профиль: только имя и факультет, без email и studentID.
func (uc *GetPublicProfileUseCase) Execute(ctx context.Context, userID string) (*domain.PublicProfile, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetPublicProfile",
		"user_id":  userID,
	})
	ucLogger.Info("Use case started", nil)

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		ucLogger.Warn("User lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	profile := user.Public()
	ucLogger.Info("Use case finished successfully", nil)
	return &profile, nil
}
