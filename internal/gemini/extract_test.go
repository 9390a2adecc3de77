package gemini

import (
	"errors"
	"testing"
)

func TestCleanResponseStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"product_name\": \"Bia Tiger\"}\n```"
	clean := CleanResponse(raw)
	if clean != `{"product_name": "Bia Tiger"}` {
		t.Fatalf("unexpected cleaned response: %q", clean)
	}
}

func TestCleanResponseExtractsJSONFromProse(t *testing.T) {
	raw := `Đây là kết quả phân tích: {"product_name": "Bia 333", "quantity": 2} Mong là giúp được bạn!`
	clean := CleanResponse(raw)
	if clean != `{"product_name": "Bia 333", "quantity": 2}` {
		t.Fatalf("unexpected cleaned response: %q", clean)
	}
}

func TestDecodeIntent(t *testing.T) {
	intent, err := DecodeIntent(`{"product_name": "Bia Tiger", "quantity": 10, "unit": "thùng", "import_price": 320000, "note": ""}`)
	if err != nil {
		t.Fatalf("decode intent: %v", err)
	}
	if intent.ProductName != "Bia Tiger" {
		t.Fatalf("expected Bia Tiger, got %q", intent.ProductName)
	}
	if intent.Quantity != 10 {
		t.Fatalf("expected quantity 10, got %d", intent.Quantity)
	}
	if intent.Unit != "thùng" {
		t.Fatalf("expected unit thùng, got %q", intent.Unit)
	}
	if intent.ImportPrice != 320000 {
		t.Fatalf("expected import price 320000, got %d", intent.ImportPrice)
	}
	if len(intent.DefaultedFields) != 0 {
		t.Fatalf("expected no defaulted fields, got %v", intent.DefaultedFields)
	}
}

func TestDecodeIntentCoercesStringNumbers(t *testing.T) {
	intent, err := DecodeIntent(`{"product_name": "Bò húc", "quantity": "3", "unit": "thùng", "import_price": "240000"}`)
	if err != nil {
		t.Fatalf("decode intent: %v", err)
	}
	if intent.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", intent.Quantity)
	}
	if intent.ImportPrice != 240000 {
		t.Fatalf("expected import price 240000, got %d", intent.ImportPrice)
	}
}

func TestDecodeIntentNegativeQuantityForReturns(t *testing.T) {
	intent, err := DecodeIntent(`{"product_name": "Bia 333", "quantity": -2, "unit": "két", "import_price": 0, "note": "trả hàng"}`)
	if err != nil {
		t.Fatalf("decode intent: %v", err)
	}
	if intent.Quantity != -2 {
		t.Fatalf("expected quantity -2, got %d", intent.Quantity)
	}
	if intent.Note != "trả hàng" {
		t.Fatalf("expected note trả hàng, got %q", intent.Note)
	}
}

func TestDecodeIntentFlagsDefaultedFields(t *testing.T) {
	intent, err := DecodeIntent(`{"product_name": "Sữa chua"}`)
	if err != nil {
		t.Fatalf("decode intent: %v", err)
	}
	if intent.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", intent.Quantity)
	}
	if intent.Unit != "cái" {
		t.Fatalf("expected default unit cái, got %q", intent.Unit)
	}
	if intent.ImportPrice != 0 {
		t.Fatalf("expected default import price 0, got %d", intent.ImportPrice)
	}

	defaulted := map[string]bool{}
	for _, field := range intent.DefaultedFields {
		defaulted[field] = true
	}
	for _, field := range []string{"quantity", "unit", "import_price"} {
		if !defaulted[field] {
			t.Fatalf("expected %s to be flagged as defaulted, got %v", field, intent.DefaultedFields)
		}
	}
	if defaulted["product_name"] {
		t.Fatalf("product_name should not be flagged, got %v", intent.DefaultedFields)
	}
}

func TestDecodeIntentRejectsNonJSON(t *testing.T) {
	_, err := DecodeIntent("xin lỗi, tôi không nghe rõ đoạn ghi âm")
	if err == nil {
		t.Fatalf("expected error for non-JSON response")
	}

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %T", err)
	}
	if malformed.Raw == "" {
		t.Fatalf("expected raw response to be preserved")
	}
}
