package usecase

import (
	"context"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type GetUserProfileUseCase struct {
	users port.UserRepositoryPort
}

func NewGetUserProfileUseCase(users port.UserRepositoryPort) *GetUserProfileUseCase {
	return &GetUserProfileUseCase{users: users}
}

func (uc *GetUserProfileUseCase) Execute(ctx context.Context, userID string) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetUserProfile",
		"user_id":  userID,
	})
	ucLogger.Info("Use case started", nil)

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		ucLogger.Warn("User lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return user, nil
}
