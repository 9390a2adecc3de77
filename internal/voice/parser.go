package voice

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ImportCommand là kết quả bóc tách một câu lệnh nhập hàng nói bằng tiếng
// Việt, ví dụ "nhập 10 thùng bia Tiger giá bán 320 nghìn".
type ImportCommand struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	SellPrice   int64  `json:"sell_price"`
	ImportPrice int64  `json:"import_price"`
}

// template is one recognized phrasing: a pattern plus the capture-group
// positions that hold quantity, product name and price. Different phrasings
// bind the same field to different group indexes, so the positions are part
// of the template instead of being guessed after the match.
type template struct {
	pattern  *regexp.Regexp
	quantity int
	name     int
	price    int
}

// Các mẫu câu được thử theo thứ tự, mẫu khớp đầu tiên thắng. Mẫu cụ thể hơn
// đứng trước; thêm cách nói mới = thêm một template, không sửa logic.
var importTemplates = []template{
	// "Nhập 10 thùng bia Tiger giá bán 320 nghìn"
	{
		pattern:  regexp.MustCompile(`(?i)nhập\s+(\d+)\s*(?:thùng|chai|cái|lon|hộp|két|lốc|gói)?\s*([^\d]+?)\s*giá\s*bán\s*(\d+(?:\.\d+)?)\s*(?:nghìn|ngàn|k|đ)?`),
		quantity: 1, name: 2, price: 3,
	},
	// "Bia Tiger 10 cái giá bán 320"
	{
		pattern:  regexp.MustCompile(`(?i)([^\d]+?)\s*(\d+)\s*(?:thùng|chai|cái|lon|hộp|két|lốc|gói)?\s*giá\s*bán\s*(\d+(?:\.\d+)?)`),
		quantity: 2, name: 1, price: 3,
	},
	// "Nhập bia Tiger số lượng 10 giá 320"
	{
		pattern:  regexp.MustCompile(`(?i)nhập\s*([^\d]+?)\s*số\s*lượng\s*(\d+)\s*giá\s*(\d+(?:\.\d+)?)`),
		quantity: 2, name: 1, price: 3,
	},
}

// thousandUnit nhận ra cách nói giá rút gọn: "320 nghìn", "320 ngàn", "320k".
var thousandUnit = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:nghìn|ngàn|k)(?:\s|$|[^\p{L}])`)

var whitespace = regexp.MustCompile(`\s+`)

// ParseImportCommand interprets a spoken stock-intake command. It returns
// nil when no template matches; callers surface "không hiểu lệnh" and must
// not reuse a previous result.
func ParseImportCommand(transcript string) *ImportCommand {
	command := strings.ToLower(strings.TrimSpace(transcript))
	if command == "" {
		return nil
	}

	for _, tpl := range importTemplates {
		match := tpl.pattern.FindStringSubmatch(command)
		if match == nil {
			continue
		}

		quantity, err := strconv.Atoi(match[tpl.quantity])
		if err != nil || quantity == 0 {
			quantity = 1
		}

		price, err := strconv.ParseFloat(match[tpl.price], 64)
		if err != nil {
			price = 0
		}

		// "320 nghìn" hay "320k" nghĩa là 320.000đ.
		if thousandUnit.MatchString(command) {
			price *= 1000
		}

		name := CleanProductName(match[tpl.name])
		if name == "" {
			return nil
		}

		sellPrice := int64(math.Round(price))

		return &ImportCommand{
			Name:      name,
			Quantity:  quantity,
			SellPrice: sellPrice,
			// Chưa hỏi được giá vốn qua giọng nói nên tạm tính 70% giá bán,
			// chủ quán sửa lại trên form trước khi lưu.
			ImportPrice: int64(math.Round(price * 0.7)),
		}
	}

	return nil
}

// CleanProductName trims the name, collapses inner whitespace and upper-cases
// the first letter.
func CleanProductName(name string) string {
	name = whitespace.ReplaceAllString(strings.TrimSpace(name), " ")
	if name == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
