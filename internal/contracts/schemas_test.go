package contracts

import (
	"strings"
	"testing"
)

func TestGenerateKeyFromPath(t *testing.T) {
	cases := []struct {
		path, want string
	}{
		{"requests/register.json", "RegisterRequest"},
		{"requests/create-transaction.json", "CreateTransactionRequest"},
		{"requests/update-user.json", "UpdateUserRequest"},
	}
	for _, c := range cases {
		if got := generateKeyFromPath(c.path); got != c.want {
			t.Errorf("generateKeyFromPath(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestAllEmbeddedSchemasCompiled(t *testing.T) {
	for _, key := range []string{
		"RegisterRequest",
		"LoginRequest",
		"UpdateUserRequest",
		"CreateTransactionRequest",
		"UpdateTransactionRequest",
		"CreateCommentRequest",
		"UpdateCommentRequest",
	} {
		if _, ok := compiledSchemas[key]; !ok {
			t.Errorf("schema %q not compiled", key)
		}
	}
}

func TestValidateRegisterRequest(t *testing.T) {
	valid := []byte(`{
		"email": "student@go.utaipei.edu.tw",
		"password": "secret-password",
		"name": "Lin Mei",
		"department": "CS",
		"studentId": "U11012345"
	}`)
	if err := ValidateRequest("RegisterRequest", valid); err != nil {
		t.Fatalf("valid body rejected: %v", err)
	}

	missingPassword := []byte(`{
		"email": "student@go.utaipei.edu.tw",
		"name": "Lin Mei",
		"department": "CS",
		"studentId": "U11012345"
	}`)
	if err := ValidateRequest("RegisterRequest", missingPassword); err == nil {
		t.Fatal("body without password accepted")
	}

	shortPassword := []byte(`{
		"email": "student@go.utaipei.edu.tw",
		"password": "short",
		"name": "Lin Mei",
		"department": "CS",
		"studentId": "U11012345"
	}`)
	if err := ValidateRequest("RegisterRequest", shortPassword); err == nil {
		t.Fatal("too short password accepted")
	}
}

func TestValidateCreateTransactionRequest(t *testing.T) {
	valid := []byte(`{"bookId": "book-1", "transactionType": "sell"}`)
	if err := ValidateRequest("CreateTransactionRequest", valid); err != nil {
		t.Fatalf("valid body rejected: %v", err)
	}

	badType := []byte(`{"bookId": "book-1", "transactionType": "rent"}`)
	if err := ValidateRequest("CreateTransactionRequest", badType); err == nil {
		t.Fatal("unknown transaction type accepted")
	}

	// старое имя поля не принимается: контракт требует transactionType
	legacyKey := []byte(`{"bookId": "book-1", "type": "sell"}`)
	if err := ValidateRequest("CreateTransactionRequest", legacyKey); err == nil {
		t.Fatal("body without transactionType accepted")
	}
}

func TestValidateUpdateUserRequestRejectsEmptyPatch(t *testing.T) {
	if err := ValidateRequest("UpdateUserRequest", []byte(`{}`)); err == nil {
		t.Fatal("empty patch accepted")
	}
	// email менять нельзя — лишнее поле отклоняется схемой
	if err := ValidateRequest("UpdateUserRequest", []byte(`{"email": "new@go.utaipei.edu.tw"}`)); err == nil {
		t.Fatal("unknown field accepted")
	}
	if err := ValidateRequest("UpdateUserRequest", []byte(`{"name": "New Name"}`)); err != nil {
		t.Fatalf("valid patch rejected: %v", err)
	}
}

func TestValidateRequestErrors(t *testing.T) {
	if err := ValidateRequest("NoSuchRequest", []byte(`{}`)); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("unexpected error for unknown schema: %v", err)
	}
	if err := ValidateRequest("LoginRequest", []byte(`{not json`)); err == nil {
		t.Fatal("malformed JSON accepted")
	}
}
