package util

import (
	"strings"
	"testing"
)

func TestFormatVND(t *testing.T) {
	cases := map[int64]string{
		0:       "0 ₫",
		500:     "500 ₫",
		4500:    "4.500 ₫",
		145000:  "145.000 ₫",
		1000000: "1.000.000 ₫",
	}
	for amount, want := range cases {
		if got := FormatVND(amount); got != want {
			t.Fatalf("FormatVND(%d) = %q, want %q", amount, got, want)
		}
	}
}

func TestGenerateOrderCode(t *testing.T) {
	code := GenerateOrderCode()
	if !strings.HasPrefix(code, "DH-") {
		t.Fatalf("unexpected prefix: %s", code)
	}
	if len(code) != 13 {
		t.Fatalf("expected 13 characters, got %d (%s)", len(code), code)
	}
	for _, c := range code[3:] {
		if !strings.ContainsRune(alphabet, c) {
			t.Fatalf("character %c not in code alphabet (%s)", c, code)
		}
	}

	if GenerateOrderCode() == code {
		t.Fatalf("two generated codes collided")
	}
}

func TestGenerateImportCode(t *testing.T) {
	code := GenerateImportCode()
	if !strings.HasPrefix(code, "NK-") {
		t.Fatalf("unexpected prefix: %s", code)
	}
	if len(code) != 13 {
		t.Fatalf("expected 13 characters, got %d (%s)", len(code), code)
	}
}

func TestGenerateProductSlug(t *testing.T) {
	slug := GenerateProductSlug("Mì Hảo Hảo Tôm Chua Cay")
	if !strings.HasPrefix(slug, "mi-hao-hao-tom-chua-cay-") {
		t.Fatalf("unexpected slug: %s", slug)
	}

	other := GenerateProductSlug("Mì Hảo Hảo Tôm Chua Cay")
	if other == slug {
		t.Fatalf("slugs for the same name should still be unique")
	}
}
