package db

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ngochandev/taphoa-BE/internal/util"
)

func newTestProduct(t *testing.T, store *MemStore, name string, price, stock int64, code string) Product {
	t.Helper()

	var barcode *string
	if code != "" {
		barcode = util.StringPointer(code)
	}

	product, err := store.CreateProduct(context.Background(), CreateProductParams{
		Name:        name,
		Slug:        util.GenerateProductSlug(name),
		Barcode:     barcode,
		Unit:        "cái",
		Category:    "Nước ngọt",
		Price:       price,
		ImportPrice: price * 70 / 100,
		Stock:       stock,
		MinStock:    5,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestCreateOrderTxDecreasesStock(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	p1 := newTestProduct(t, store, "Coca Cola 330ml", 8000, 10, "")
	p2 := newTestProduct(t, store, "Bia 333", 12000, 24, "")

	result, err := store.CreateOrderTx(ctx, CreateOrderTxParams{
		Items: []OrderItemInput{
			{ProductID: p1.ID, Quantity: 3},
			{ProductID: p2.ID, Quantity: 6},
		},
		PaymentMethod: PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if result.Order.TotalAmount != 3*8000+6*12000 {
		t.Fatalf("unexpected total: %d", result.Order.TotalAmount)
	}
	if result.Order.Status != OrderStatusCompleted {
		t.Fatalf("cash order should complete immediately, got %s", result.Order.Status)
	}
	if !strings.HasPrefix(result.Order.Code, "DH-") {
		t.Fatalf("unexpected order code %s", result.Order.Code)
	}
	if len(result.OrderItems) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(result.OrderItems))
	}

	p1After, _ := store.GetProductByID(ctx, p1.ID)
	p2After, _ := store.GetProductByID(ctx, p2.ID)
	if p1After.Stock != 7 || p2After.Stock != 18 {
		t.Fatalf("stock not decreased: %d %d", p1After.Stock, p2After.Stock)
	}
}

func TestCreateOrderTxInsufficientStock(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	p1 := newTestProduct(t, store, "Coca Cola 330ml", 8000, 10, "")
	p2 := newTestProduct(t, store, "Bia 333", 12000, 2, "")

	_, err := store.CreateOrderTx(ctx, CreateOrderTxParams{
		Items: []OrderItemInput{
			{ProductID: p1.ID, Quantity: 3},
			{ProductID: p2.ID, Quantity: 5},
		},
		PaymentMethod: PaymentMethodCash,
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	// Thiếu hàng thì không được trừ kho sản phẩm nào.
	p1After, _ := store.GetProductByID(ctx, p1.ID)
	if p1After.Stock != 10 {
		t.Fatalf("stock should be untouched, got %d", p1After.Stock)
	}

	orders, _ := store.ListOrders(ctx, ListOrdersParams{})
	if len(orders) != 0 {
		t.Fatalf("no order should be created, got %d", len(orders))
	}
}

func TestCreateOrderTxQRTransferStaysPending(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	p1 := newTestProduct(t, store, "Coca Cola 330ml", 8000, 10, "")

	result, err := store.CreateOrderTx(ctx, CreateOrderTxParams{
		Items:         []OrderItemInput{{ProductID: p1.ID, Quantity: 1}},
		PaymentMethod: PaymentMethodQRTransfer,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if result.Order.Status != OrderStatusPending {
		t.Fatalf("QR order should be pending, got %s", result.Order.Status)
	}

	// Webhook xác nhận thì chuyển completed, gửi lại lần nữa thì không ăn.
	completed, err := store.CompleteOrderByCode(ctx, result.Order.Code)
	if err != nil {
		t.Fatalf("complete order: %v", err)
	}
	if completed.Status != OrderStatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}

	if _, err = store.CompleteOrderByCode(ctx, result.Order.Code); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("second completion should not find a pending order, got %v", err)
	}
}

func TestCreateOrderTxValidation(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	p1 := newTestProduct(t, store, "Coca Cola 330ml", 8000, 10, "")

	if _, err := store.CreateOrderTx(ctx, CreateOrderTxParams{PaymentMethod: PaymentMethodCash}); err == nil {
		t.Fatalf("expected error for empty order")
	}

	_, err := store.CreateOrderTx(ctx, CreateOrderTxParams{
		Items:         []OrderItemInput{{ProductID: p1.ID, Quantity: 0}},
		PaymentMethod: PaymentMethodCash,
	})
	if err == nil {
		t.Fatalf("expected error for zero quantity")
	}
}

func TestCreateImportTxExistingProductByBarcode(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	p1 := newTestProduct(t, store, "Bia Tiger", 14000, 10, "8938501023456")

	result, err := store.CreateImportTx(ctx, CreateImportTxParams{
		ProductName: "bia tiger lon",
		Barcode:     util.StringPointer("8938501023456"),
		Quantity:    24,
		Unit:        "thùng",
		ImportPrice: 10000,
		Method:      ImportMethodBarcode,
	})
	if err != nil {
		t.Fatalf("create import: %v", err)
	}

	if result.Created {
		t.Fatalf("existing product should not be re-created")
	}
	if result.Product.ID != p1.ID {
		t.Fatalf("expected product %d, got %d", p1.ID, result.Product.ID)
	}
	if result.Product.Stock != 34 {
		t.Fatalf("expected stock 34, got %d", result.Product.Stock)
	}
	if result.Record.TotalCost != 24*10000 {
		t.Fatalf("unexpected total cost %d", result.Record.TotalCost)
	}
	if !strings.HasPrefix(result.Record.Code, "NK-") {
		t.Fatalf("unexpected import code %s", result.Record.Code)
	}
}

func TestCreateImportTxCreatesUnknownProduct(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	result, err := store.CreateImportTx(ctx, CreateImportTxParams{
		ProductName: "Nước tương Tam Thái Tử",
		Quantity:    12,
		Unit:        "chai",
		ImportPrice: 18000,
		Method:      ImportMethodVoice,
	})
	if err != nil {
		t.Fatalf("create import: %v", err)
	}

	if !result.Created {
		t.Fatalf("expected a new product to be created")
	}
	if result.Product.Category != "Chưa phân loại" {
		t.Fatalf("unexpected category %q", result.Product.Category)
	}
	if result.Product.Stock != 12 {
		t.Fatalf("expected stock 12, got %d", result.Product.Stock)
	}
	// 18000 * 1.3 = 23400, làm tròn lên bội số của 500.
	if result.Product.Price != 23500 {
		t.Fatalf("expected suggested price 23500, got %d", result.Product.Price)
	}
}

func TestCreateImportTxNegativeQuantityIsReturn(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	p1 := newTestProduct(t, store, "Bia 333", 12000, 50, "")

	result, err := store.CreateImportTx(ctx, CreateImportTxParams{
		ProductName: "Bia 333",
		Quantity:    -2,
		Unit:        "két",
		ImportPrice: 0,
		Method:      ImportMethodVoice,
		Note:        util.StringPointer("trả hàng"),
	})
	if err != nil {
		t.Fatalf("create import: %v", err)
	}

	if result.Product.ID != p1.ID {
		t.Fatalf("expected existing product to be matched by name")
	}
	if result.Product.Stock != 48 {
		t.Fatalf("expected stock 48 after return, got %d", result.Product.Stock)
	}
}

func TestSeededMemStore(t *testing.T) {
	ctx := context.Background()
	store := NewSeededMemStore()

	products, err := store.ListProducts(ctx, ListProductsParams{})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 20 {
		t.Fatalf("expected 20 seeded products, got %d", len(products))
	}

	product, err := store.GetProductByBarcode(ctx, "8938501012345")
	if err != nil {
		t.Fatalf("get by barcode: %v", err)
	}
	if product.Name != "Bia 333" {
		t.Fatalf("expected Bia 333, got %q", product.Name)
	}

	name := "hảo hảo"
	matches, err := store.ListProducts(ctx, ListProductsParams{Name: &name})
	if err != nil {
		t.Fatalf("list products by name: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Mì Hảo Hảo Tôm Chua Cay" {
		t.Fatalf("unexpected name filter result: %+v", matches)
	}
}
