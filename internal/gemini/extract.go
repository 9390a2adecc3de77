package gemini

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// importPrompt hướng dẫn Gemini nghe ghi âm tiếng Việt và trả về JSON nhập
// hàng. Bảng tiếng lóng và các ví dụ mẫu nằm ngay trong prompt vì người nói
// thường dùng từ địa phương mà model không tự đoán đúng.
const importPrompt = `Bạn là trợ lý nhập kho tạp hóa. Hãy nghe đoạn ghi âm tiếng Việt này (người nói có thể dùng tiếng lóng, giọng địa phương). Nhiệm vụ: Trích xuất thông tin nhập hàng thành JSON. Các trường cần lấy:

product_name: Tên sản phẩm (String).
quantity: Số lượng (Number). Nếu người nói "trả lại" hoặc "trả hàng", quantity là số ÂM.
unit: Đơn vị tính (String - ví dụ: thùng, két, gói, chai, lốc, cái).
import_price: Giá nhập (Number, đơn vị đồng). Nếu người nói "120 ca", "120 cá" hoặc "120k", hãy hiểu là 120000.
note: Ghi chú thêm (String - ví dụ: hàng khuyến mãi, cận date, trả hàng).

Bảng tiếng lóng thường gặp:
- "húc", "bò húc" = nước tăng lực Redbull (Bò húc)
- "ca", "cá", "k", "nghìn", "ngàn" = nhân 1000 đồng
- "lốc" = bó 4-6 đơn vị (ví dụ lốc sữa chua, lốc bia)
- "két" = thùng bia/nước ngọt bằng nhựa
- "trả lại", "trả hàng" = số lượng âm
- "khuyến mãi", "hàng tặng" = ghi vào note

Ví dụ:
Nghe: "nhập 10 thùng bia Tiger giá 320 ca" -> {"product_name": "Bia Tiger", "quantity": 10, "unit": "thùng", "import_price": 320000, "note": ""}
Nghe: "lấy 5 lốc sữa chua Vinamilk 28 nghìn, hàng khuyến mãi" -> {"product_name": "Sữa chua Vinamilk", "quantity": 5, "unit": "lốc", "import_price": 28000, "note": "hàng khuyến mãi"}
Nghe: "3 thùng húc giá 240 cá" -> {"product_name": "Bò húc", "quantity": 3, "unit": "thùng", "import_price": 240000, "note": ""}
Nghe: "trả lại 2 két bia 333" -> {"product_name": "Bia 333", "quantity": -2, "unit": "két", "import_price": 0, "note": "trả hàng"}

Output format: Chỉ trả về JSON thuần túy, không Markdown.

Phân tích âm thanh và trả về JSON:`

// ImportIntent là JSON contract giữa prompt và phần coercion bên dưới; đổi
// trường nào ở đây thì prompt phải đổi theo.
type ImportIntent struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
	ImportPrice int64  `json:"import_price"`
	Note        string `json:"note"`

	// DefaultedFields liệt kê các trường model bỏ trống và đã được gán giá
	// trị mặc định, để client phân biệt "người nói 1 cái" với "không nghe ra
	// số lượng".
	DefaultedFields []string `json:"defaulted_fields,omitempty"`
}

var (
	codeFence = regexp.MustCompile("```(?:json)?\n?")
	jsonBlock = regexp.MustCompile(`(?s)\{.*\}`)
)

// CleanResponse strips Markdown code fences and extracts the first
// greedy {...} block. The model is told to answer with bare JSON but still
// prepends prose or wraps the object in fences often enough that skipping
// this step breaks the flow in practice.
func CleanResponse(text string) string {
	clean := strings.TrimSpace(text)
	clean = codeFence.ReplaceAllString(clean, "")

	if block := jsonBlock.FindString(clean); block != "" {
		clean = block
	}

	return strings.TrimSpace(clean)
}

// DecodeIntent cleans the raw model output and coerces it into an
// ImportIntent. A response without a decodable JSON object yields a
// MalformedResponseError carrying the raw text.
func DecodeIntent(raw string) (*ImportIntent, error) {
	clean := CleanResponse(raw)
	if clean == "" {
		return nil, &MalformedResponseError{Raw: raw}
	}

	// Decode thành map trước rồi ép kiểu từng trường: model hay trả số dưới
	// dạng chuỗi ("quantity": "3") hoặc số thực.
	var fields map[string]any
	if err := json.Unmarshal([]byte(clean), &fields); err != nil {
		return nil, &MalformedResponseError{Raw: raw}
	}

	intent := &ImportIntent{}

	name, ok := coerceString(fields["product_name"])
	if !ok || name == "" {
		intent.DefaultedFields = append(intent.DefaultedFields, "product_name")
	}
	intent.ProductName = name

	if quantity, ok := coerceInt(fields["quantity"]); ok {
		intent.Quantity = int(quantity)
	} else {
		// Mặc định 1 kể cả khi câu nói là trả hàng; client phải hiện số
		// lượng cho người dùng xác nhận trước khi lưu.
		intent.Quantity = 1
		intent.DefaultedFields = append(intent.DefaultedFields, "quantity")
	}

	if unit, ok := coerceString(fields["unit"]); ok && unit != "" {
		intent.Unit = unit
	} else {
		intent.Unit = "cái"
		intent.DefaultedFields = append(intent.DefaultedFields, "unit")
	}

	if price, ok := coerceInt(fields["import_price"]); ok {
		intent.ImportPrice = price
	} else {
		intent.DefaultedFields = append(intent.DefaultedFields, "import_price")
	}

	if note, ok := coerceString(fields["note"]); ok {
		intent.Note = note
	}

	return intent, nil
}

func coerceString(v any) (string, bool) {
	s, ok := v.(string)
	return strings.TrimSpace(s), ok
}

func coerceInt(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
