package token_adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

func TestNewTokenServiceRequiresKey(t *testing.T) {
	if _, err := NewTokenService(""); err == nil {
		t.Fatal("empty signing key accepted")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc, err := NewTokenService("test-signing-key")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	user := &domain.User{ID: "user-1", Email: "student@go.utaipei.edu.tw"}
	token, err := svc.GenerateToken(context.Background(), user, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "student@go.utaipei.edu.tw" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc, _ := NewTokenService("test-signing-key")
	user := &domain.User{ID: "user-1", Email: "student@go.utaipei.edu.tw"}

	token, err := svc.GenerateToken(context.Background(), user, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("got %v, want ErrTokenInvalid", err)
	}
}

func TestValidateTokenSignedWithDifferentKey(t *testing.T) {
	issuer, _ := NewTokenService("key-one")
	verifier, _ := NewTokenService("key-two")
	user := &domain.User{ID: "user-1", Email: "student@go.utaipei.edu.tw"}

	token, err := issuer.GenerateToken(context.Background(), user, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := verifier.ValidateToken(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("got %v, want ErrTokenInvalid", err)
	}

	if _, err := verifier.ValidateToken(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("got %v, want ErrTokenInvalid", err)
	}
}
