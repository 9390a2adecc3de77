package db

import (
	"github.com/ngochandev/taphoa-BE/internal/util"
)

type seedProduct struct {
	name     string
	price    int64
	barcode  string
	category string
}

// Danh mục hàng mẫu của một quán tạp hóa điển hình, nạp vào MemStore để chạy
// demo không cần Postgres.
var seedProducts = []seedProduct{
	{"Bia 333", 12000, "8938501012345", "Đồ uống có cồn"},
	{"Bia Tiger", 14000, "8938501023456", "Đồ uống có cồn"},
	{"Coca Cola 330ml", 8000, "8938501034567", "Nước ngọt"},
	{"Pepsi 330ml", 8000, "8938501045678", "Nước ngọt"},
	{"Nước đóng chai Lavie 1.5L", 10000, "8938501056789", "Nước uống"},
	{"Sữa tươi Vinamilk 1L", 32000, "8938501067890", "Sữa"},
	{"Mì Hảo Hảo Tôm Chua Cay", 4500, "8938501078901", "Mì ăn liền"},
	{"Mì Omachi Hải Sản", 8500, "8938501089012", "Mì ăn liền"},
	{"Bánh mì tươi", 5000, "8938501090123", "Bánh mì"},
	{"Dầu ăn Neptune 1L", 48000, "8938501101234", "Dầu ăn"},
	{"Rau muống 500g", 15000, "", "Rau củ"},
	{"Cà chua 500g", 18000, "", "Rau củ"},
	{"Trứng gà 10 quả", 35000, "", "Trứng"},
	{"Thịt heo ba chỉ 500g", 85000, "", "Thịt"},
	{"Cá basa 500g", 55000, "", "Cá"},
	{"Tỏi 200g", 12000, "", "Gia vị"},
	{"Hành tây 300g", 8000, "", "Rau củ"},
	{"Chuối chín 1kg", 25000, "", "Trái cây"},
	{"Cơm trắng phần", 10000, "", "Cơm"},
	{"Canh rau muống phần", 15000, "", "Canh"},
}

// NewSeededMemStore trả về MemStore đã nạp sẵn danh mục hàng mẫu,
// mỗi mặt hàng 50 đơn vị tồn kho và giá vốn tạm tính 70% giá bán.
func NewSeededMemStore() *MemStore {
	store := NewMemStore()
	for _, p := range seedProducts {
		var barcode *string
		if p.barcode != "" {
			barcode = util.StringPointer(p.barcode)
		}
		store.createProductLocked(CreateProductParams{
			Name:        p.name,
			Slug:        util.GenerateProductSlug(p.name),
			Barcode:     barcode,
			Unit:        "cái",
			Category:    p.category,
			Price:       p.price,
			ImportPrice: p.price * 70 / 100,
			Stock:       50,
			MinStock:    10,
		})
	}
	return store
}
