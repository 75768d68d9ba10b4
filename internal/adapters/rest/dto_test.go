package rest

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
)

func TestTransactionResponseWireShape(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	view := domain.TransactionView{
		Transaction: domain.Transaction{
			ID:        "tx-1",
			BookID:    "book-1",
			SellerID:  "seller-1",
			BuyerID:   "buyer-1",
			Status:    domain.TransactionNegotiating,
			Type:      domain.TransactionTypeSell,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Book:   domain.BookCard{ID: "book-1", Title: "Operating Systems"},
		Seller: domain.PublicProfile{ID: "seller-1", Name: "Chen Wei"},
		Buyer:  domain.PublicProfile{ID: "buyer-1", Name: "Lin Mei"},
	}

	raw, err := json.Marshal(toTransactionResponse(view))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	body := string(raw)

	if !strings.Contains(body, `"transactionType":"sell"`) {
		t.Errorf("wire field transactionType missing: %s", body)
	}
	// незаполненные поля сериализуются явным null, а не пропуском ключа
	for _, key := range []string{`"agreedPrice":null`, `"exchangeDetails":null`, `"completedAt":null`} {
		if !strings.Contains(body, key) {
			t.Errorf("%s missing from body: %s", key, body)
		}
	}
}

func TestCreateTransactionRequestFieldNames(t *testing.T) {
	var req CreateTransactionRequest
	raw := []byte(`{"bookId": "book-1", "transactionType": "exchange"}`)
	if err := json.Unmarshal(raw, &req); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if req.BookID != "book-1" || req.Type != "exchange" {
		t.Errorf("unexpected decode: %+v", req)
	}
}
