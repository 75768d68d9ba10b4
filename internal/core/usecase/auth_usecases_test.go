package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

type fakeTokenService struct {
	token       string
	generateErr error
}

func (f *fakeTokenService) GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error) {
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.token, nil
}

func (f *fakeTokenService) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	return nil, domain.ErrTokenInvalid
}

func TestRegisterUserSuccess(t *testing.T) {
	users := newFakeUserRepo()
	uc := NewRegisterUserUseCase(users)

	user, err := uc.Execute(context.Background(), domain.RegisterInput{
		Email:      "student@go.utaipei.edu.tw",
		Password:   "secret-password",
		Name:       "Lin Mei",
		Department: "CS",
		StudentID:  "U11012345",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if user.ID == "" {
		t.Error("storage-assigned ID expected")
	}
	if user.PasswordHash == "secret-password" || user.PasswordHash == "" {
		t.Error("password must be hashed")
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	existing := &domain.User{ID: "user-1", Email: "student@go.utaipei.edu.tw"}
	uc := NewRegisterUserUseCase(newFakeUserRepo(existing))

	_, err := uc.Execute(context.Background(), domain.RegisterInput{
		Email:      "student@go.utaipei.edu.tw",
		Password:   "secret-password",
		Name:       "Lin Mei",
		Department: "CS",
		StudentID:  "U11012345",
	})
	if !errors.Is(err, domain.ErrEmailInUse) {
		t.Fatalf("got %v, want ErrEmailInUse", err)
	}
}

func TestLoginUserSuccess(t *testing.T) {
	registered, err := domain.NewUser("student@go.utaipei.edu.tw", "secret-password", "Lin Mei", "CS", "U11012345")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	registered.ID = "user-1"

	uc := NewLoginUserUseCase(newFakeUserRepo(registered), &fakeTokenService{token: "signed-token"}, time.Hour)

	user, token, err := uc.Execute(context.Background(), "student@go.utaipei.edu.tw", "secret-password")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if token != "signed-token" {
		t.Errorf("token = %q", token)
	}
	if user.ID != "user-1" {
		t.Errorf("user.ID = %q", user.ID)
	}
}

func TestLoginUserWrongPassword(t *testing.T) {
	registered, err := domain.NewUser("student@go.utaipei.edu.tw", "secret-password", "Lin Mei", "CS", "U11012345")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	registered.ID = "user-1"

	uc := NewLoginUserUseCase(newFakeUserRepo(registered), &fakeTokenService{token: "signed-token"}, time.Hour)

	_, _, err = uc.Execute(context.Background(), "student@go.utaipei.edu.tw", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUserUnknownEmail(t *testing.T) {
	uc := NewLoginUserUseCase(newFakeUserRepo(), &fakeTokenService{token: "signed-token"}, time.Hour)

	// неизвестный email неотличим от неверного пароля
	_, _, err := uc.Execute(context.Background(), "nobody@go.utaipei.edu.tw", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}
