package usecase

import (
	"context"
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type UpdateUserProfileUseCase struct {
	users port.UserRepositoryPort
}

func NewUpdateUserProfileUseCase(users port.UserRepositoryPort) *UpdateUserProfileUseCase {
	return &UpdateUserProfileUseCase{users: users}
}

// Execute — частичное обновление собственного профиля.
// Email и studentID неизменяемы: они привязаны к университетской учётке.
func (uc *UpdateUserProfileUseCase) Execute(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "UpdateUserProfile",
		"user_id":  userID,
	})
	ucLogger.Info("Use case started: updating profile", nil)

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		ucLogger.Warn("User lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Department != nil {
		user.Department = *patch.Department
	}
	if patch.Password != nil {
		if err := user.SetPassword(*patch.Password); err != nil {
			ucLogger.Error("Failed to hash new password", err, nil)
			return nil, err
		}
	}
	user.UpdatedAt = time.Now().UTC()

	if err := uc.users.Update(ctx, user); err != nil {
		ucLogger.Error("Repository failed to update user", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: profile updated", nil)
	return user, nil
}
