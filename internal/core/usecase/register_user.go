package usecase

import (
	"context"
	"fmt"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

type RegisterUserUseCase struct {
	users port.UserRepositoryPort
}

func NewRegisterUserUseCase(users port.UserRepositoryPort) *RegisterUserUseCase {
	return &RegisterUserUseCase{users: users}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "RegisterUser",
		"email":    in.Email,
	})
	ucLogger.Info("Use case started: registering user", nil)

	// Проверка уникальности email. Как и у транзакций, это read-then-write
	// без гарантии хранилища — для студенческого сервиса этого достаточно.
	existing, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		ucLogger.Error("Repository failed to check email", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if existing != nil {
		ucLogger.Warn("Registration rejected: email already in use", nil)
		return nil, domain.ErrEmailInUse
	}

	user, err := domain.NewUser(in.Email, in.Password, in.Name, in.Department, in.StudentID)
	if err != nil {
		ucLogger.Error("Failed to hash password", err, nil)
		return nil, err
	}

	id, err := uc.users.Create(ctx, user)
	if err != nil {
		ucLogger.Error("Repository failed to create user", err, nil)
		return nil, err
	}
	user.ID = id

	ucLogger.Info("Use case finished: user registered", port.Fields{"user_id": id})
	return user, nil
}
