package barcode

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// DefaultPrefixes là các tiền tố quốc gia EAN-13 hay gặp trên kệ tạp hóa:
// Việt Nam, Ấn Độ, Campuchia, Singapore.
var DefaultPrefixes = []string{"893", "890", "894", "888"}

// Codec sinh và kiểm tra mã vạch EAN-13 mà không cần tra cứu cơ sở dữ liệu
// GS1. Mã sinh ra chỉ là placeholder hợp lệ về mặt cú pháp, dùng khi decoder
// thật không đọc được ảnh; hai seed khác nhau vẫn có thể cho cùng một mã.
type Codec struct {
	prefixes []string
}

// NewCodec creates a Codec with the given country-prefix set.
// Each prefix must be a 3-digit numeric string.
func NewCodec(prefixes []string) (*Codec, error) {
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}

	for _, p := range prefixes {
		if len(p) != 3 {
			return nil, fmt.Errorf("barcode prefix must be 3 digits, got %q", p)
		}
		if _, err := strconv.Atoi(p); err != nil {
			return nil, fmt.Errorf("barcode prefix must be numeric, got %q", p)
		}
	}

	return &Codec{prefixes: prefixes}, nil
}

// CheckDigit computes the EAN-13 check digit for the first 12 digits of a
// barcode. Positions 0,2,4,... weigh 1 and positions 1,3,5,... weigh 3;
// the check digit is (10 - sum mod 10) mod 10.
//
// Passing anything other than exactly 12 ASCII digits is a caller bug and
// returns an error instead of a garbage digit.
func CheckDigit(first12 string) (byte, error) {
	if len(first12) != 12 {
		return 0, fmt.Errorf("check digit input must be 12 digits, got %d", len(first12))
	}

	sum := 0
	for i := 0; i < 12; i++ {
		c := first12[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("check digit input must be numeric, got %q at position %d", c, i)
		}

		digit := int(c - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}

	return byte('0' + (10-sum%10)%10), nil
}

// IsValid reports whether code is a syntactically valid EAN-13 barcode.
func IsValid(code string) bool {
	if len(code) != 13 {
		return false
	}

	check, err := CheckDigit(code[:12])
	if err != nil {
		return false
	}

	return code[12] == check
}

// Generate derives a deterministic, syntactically valid EAN-13 barcode from
// an arbitrary seed (image bytes, filename...). Repeated calls with the same
// seed always return the same code, so re-scanning the same photo is
// idempotent within a session.
func (c *Codec) Generate(seed string) string {
	hash := hashSeed(seed)

	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}

	prefix := c.prefixes[abs%int64(len(c.prefixes))]

	// 9 chữ số tiếp theo lấy từ hash, thiếu thì đệm 0 bên trái.
	suffix := strconv.FormatInt(abs, 10)
	if len(suffix) < 9 {
		suffix = strings.Repeat("0", 9-len(suffix)) + suffix
	}
	suffix = suffix[:9]

	first12 := prefix + suffix
	check, _ := CheckDigit(first12) // first12 is always 12 digits here

	return first12 + string(check)
}

// hashSeed is the 31-multiplier rolling hash over UTF-16 code units,
// truncated to 32 bits at every step.
func hashSeed(seed string) int32 {
	var hash int32
	for _, u := range utf16.Encode([]rune(seed)) {
		hash = (hash << 5) - hash + int32(u)
	}
	return hash
}
