package barcode

import (
	"strings"
	"testing"
)

func TestCheckDigit(t *testing.T) {
	check, err := CheckDigit("890123456789")
	if err != nil {
		t.Fatalf("check digit: %v", err)
	}
	if check != '0' {
		t.Fatalf("expected check digit 0, got %c", check)
	}

	check, err = CheckDigit("400638133393")
	if err != nil {
		t.Fatalf("check digit: %v", err)
	}
	if check != '1' {
		t.Fatalf("expected check digit 1, got %c", check)
	}
}

func TestCheckDigitRejectsBadInput(t *testing.T) {
	if _, err := CheckDigit("12345"); err == nil {
		t.Fatalf("expected error for short input")
	}
	if _, err := CheckDigit("1234567890123"); err == nil {
		t.Fatalf("expected error for long input")
	}
	if _, err := CheckDigit("12345678901a"); err == nil {
		t.Fatalf("expected error for non-numeric input")
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("4006381333931") {
		t.Fatalf("expected valid barcode")
	}
	if IsValid("4006381333932") {
		t.Fatalf("expected invalid check digit")
	}
	if IsValid("400638133393") {
		t.Fatalf("expected invalid length")
	}
	if IsValid("") {
		t.Fatalf("expected invalid empty code")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	codec, err := NewCodec(nil)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	first := codec.Generate("ảnh chụp kệ hàng")
	second := codec.Generate("ảnh chụp kệ hàng")
	if first != second {
		t.Fatalf("same seed produced different codes: %s vs %s", first, second)
	}

	other := codec.Generate("một tấm ảnh khác")
	if other == first {
		t.Fatalf("different seeds unexpectedly collided")
	}
}

func TestGenerateProducesValidEAN13(t *testing.T) {
	codec, err := NewCodec(nil)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	seeds := []string{"", "a", "bia tiger", "một chuỗi tiếng Việt dài hơn nhiều", strings.Repeat("x", 1000)}
	for _, seed := range seeds {
		code := codec.Generate(seed)
		if len(code) != 13 {
			t.Fatalf("seed %q: expected 13 digits, got %d (%s)", seed, len(code), code)
		}
		if !IsValid(code) {
			t.Fatalf("seed %q: generated invalid barcode %s", seed, code)
		}

		var found bool
		for _, prefix := range DefaultPrefixes {
			if strings.HasPrefix(code, prefix) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("seed %q: code %s does not start with a configured prefix", seed, code)
		}
	}
}

func TestNewCodecRejectsBadPrefixes(t *testing.T) {
	if _, err := NewCodec([]string{"89"}); err == nil {
		t.Fatalf("expected error for 2-digit prefix")
	}
	if _, err := NewCodec([]string{"89a"}); err == nil {
		t.Fatalf("expected error for non-numeric prefix")
	}
}

func TestComplete(t *testing.T) {
	code, err := Complete("400638133393")
	if err != nil {
		t.Fatalf("complete 12-digit code: %v", err)
	}
	if code != "4006381333931" {
		t.Fatalf("expected 4006381333931, got %s", code)
	}

	code, err = Complete("4006381333931")
	if err != nil {
		t.Fatalf("complete 13-digit code: %v", err)
	}
	if code != "4006381333931" {
		t.Fatalf("expected code unchanged, got %s", code)
	}

	if _, err = Complete("4006381333939"); err == nil {
		t.Fatalf("expected error for wrong check digit")
	}
	if _, err = Complete("12345"); err == nil {
		t.Fatalf("expected error for wrong length")
	}
}
