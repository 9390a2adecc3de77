package voice

import "strings"

// CatalogEntry là phần thông tin tối thiểu của một sản phẩm mà bộ tìm kiếm
// bằng giọng nói cần đến.
type CatalogEntry interface {
	ProductName() string
}

// MatchProduct tìm sản phẩm đầu tiên trong danh mục khớp với câu nói: tên
// sản phẩm nằm trong câu nói hoặc câu nói nằm trong tên sản phẩm, không phân
// biệt hoa thường. Không chấm điểm, không fuzzy: giữ nguyên thứ tự danh mục
// để kết quả dễ đoán với người bán hàng.
func MatchProduct[T CatalogEntry](transcript string, catalog []T) (T, bool) {
	var zero T

	spoken := strings.ToLower(strings.TrimSpace(transcript))
	if spoken == "" {
		return zero, false
	}

	for _, entry := range catalog {
		name := strings.ToLower(entry.ProductName())
		if name == "" {
			continue
		}
		if strings.Contains(name, spoken) || strings.Contains(spoken, name) {
			return entry, true
		}
	}

	return zero, false
}
