package util

import (
	"fmt"

	"github.com/gosimple/slug"
	"github.com/lithammer/shortuuid/v4"
)

const (
	alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
)

// GenerateOrderCode generates a unique order code in the format "DH-XXXXXXXXXX".
func GenerateOrderCode() string {
	uuid := shortuuid.NewWithAlphabet(alphabet)

	return fmt.Sprintf("DH-%s", uuid[:10])
}

// GenerateImportCode generates a unique stock-intake code in the format "NK-XXXXXXXXXX".
func GenerateImportCode() string {
	uuid := shortuuid.NewWithAlphabet(alphabet)

	return fmt.Sprintf("NK-%s", uuid[:10])
}

// GenerateProductSlug tạo slug duy nhất cho sản phẩm từ tên tiếng Việt.
// Ví dụ: "Mì Hảo Hảo Tôm Chua Cay" -> "mi-hao-hao-tom-chua-cay-a1b2c3d4".
func GenerateProductSlug(name string) string {
	baseSlug := slug.Make(name)
	shortID := shortuuid.New()[:8] // Lấy 8 ký tự đầu

	return fmt.Sprintf("%s-%s", baseSlug, shortID)
}
