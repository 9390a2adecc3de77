package db

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ngochandev/taphoa-BE/internal/util"
)

// MemStore là bản cài đặt Store trong bộ nhớ, dùng khi DATABASE_URL bỏ
// trống: quán chạy thử không cần Postgres, dữ liệu mất khi tắt server.
// Đây cũng là store dùng trong unit test.
type MemStore struct {
	mu sync.Mutex

	users         map[string]User
	products      map[int64]Product
	orders        map[int64]Order
	orderItems    map[int64][]OrderItem
	importRecords map[int64]ImportRecord

	nextProductID int64
	nextOrderID   int64
	nextItemID    int64
	nextRecordID  int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:         make(map[string]User),
		products:      make(map[int64]Product),
		orders:        make(map[int64]Order),
		orderItems:    make(map[int64][]OrderItem),
		importRecords: make(map[int64]ImportRecord),
		nextProductID: 1,
		nextOrderID:   1,
		nextItemID:    1,
		nextRecordID:  1,
	}
}

func (s *MemStore) Ping(_ context.Context) error {
	return nil
}

func (s *MemStore) CreateUser(_ context.Context, arg CreateUserParams) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == arg.Email {
			return User{}, fmt.Errorf("email %s already exists", arg.Email)
		}
	}

	user := User{
		ID:              uuid.NewString(),
		FullName:        arg.FullName,
		Email:           arg.Email,
		HashedPassword:  arg.HashedPassword,
		GoogleAccountID: arg.GoogleAccountID,
		Role:            arg.Role,
		CreatedAt:       time.Now(),
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *MemStore) GetUserByID(_ context.Context, id string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return User{}, ErrRecordNotFound
	}
	return user, nil
}

func (s *MemStore) GetUserByEmail(_ context.Context, email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, ErrRecordNotFound
}

func (s *MemStore) CreateProduct(_ context.Context, arg CreateProductParams) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createProductLocked(arg), nil
}

func (s *MemStore) createProductLocked(arg CreateProductParams) Product {
	now := time.Now()
	product := Product{
		ID:          s.nextProductID,
		Name:        arg.Name,
		Slug:        arg.Slug,
		Description: arg.Description,
		Barcode:     arg.Barcode,
		Unit:        arg.Unit,
		Category:    arg.Category,
		Price:       arg.Price,
		ImportPrice: arg.ImportPrice,
		Stock:       arg.Stock,
		MinStock:    arg.MinStock,
		ImageURL:    arg.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextProductID++
	s.products[product.ID] = product
	return product
}

func (s *MemStore) GetProductByID(_ context.Context, id int64) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getProductLocked(id)
}

func (s *MemStore) getProductLocked(id int64) (Product, error) {
	product, ok := s.products[id]
	if !ok {
		return Product{}, ErrRecordNotFound
	}
	return product, nil
}

func (s *MemStore) GetProductByBarcode(_ context.Context, code string) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, product := range s.sortedProductsLocked() {
		if product.Barcode != nil && *product.Barcode == code {
			return product, nil
		}
	}
	return Product{}, ErrRecordNotFound
}

func (s *MemStore) ListProducts(_ context.Context, arg ListProductsParams) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []Product
	for _, product := range s.sortedProductsLocked() {
		if arg.Name != nil && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(*arg.Name)) {
			continue
		}
		if arg.Category != nil && product.Category != *arg.Category {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func (s *MemStore) UpdateProduct(_ context.Context, arg UpdateProductParams) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.getProductLocked(arg.ID)
	if err != nil {
		return Product{}, err
	}

	if arg.Name != nil {
		product.Name = *arg.Name
	}
	if arg.Description != nil {
		product.Description = arg.Description
	}
	if arg.Barcode != nil {
		product.Barcode = arg.Barcode
	}
	if arg.Unit != nil {
		product.Unit = *arg.Unit
	}
	if arg.Category != nil {
		product.Category = *arg.Category
	}
	if arg.Price != nil {
		product.Price = *arg.Price
	}
	if arg.ImportPrice != nil {
		product.ImportPrice = *arg.ImportPrice
	}
	if arg.MinStock != nil {
		product.MinStock = *arg.MinStock
	}
	product.UpdatedAt = time.Now()

	s.products[product.ID] = product
	return product, nil
}

func (s *MemStore) UpdateProductImageURL(_ context.Context, arg UpdateProductImageURLParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.getProductLocked(arg.ID)
	if err != nil {
		return err
	}

	product.ImageURL = &arg.ImageURL
	product.UpdatedAt = time.Now()
	s.products[product.ID] = product
	return nil
}

func (s *MemStore) AdjustProductStock(_ context.Context, arg AdjustProductStockParams) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.adjustStockLocked(arg)
}

func (s *MemStore) adjustStockLocked(arg AdjustProductStockParams) (Product, error) {
	product, err := s.getProductLocked(arg.ID)
	if err != nil {
		return Product{}, err
	}

	product.Stock += arg.Delta
	product.UpdatedAt = time.Now()
	s.products[product.ID] = product
	return product, nil
}

func (s *MemStore) ListLowStockProducts(_ context.Context) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []Product
	for _, product := range s.sortedProductsLocked() {
		if product.Stock <= product.MinStock {
			products = append(products, product)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Stock < products[j].Stock })
	return products, nil
}

func (s *MemStore) CreateOrder(_ context.Context, arg CreateOrderParams) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createOrderLocked(arg), nil
}

func (s *MemStore) createOrderLocked(arg CreateOrderParams) Order {
	order := Order{
		ID:            s.nextOrderID,
		Code:          arg.Code,
		TotalAmount:   arg.TotalAmount,
		PaymentMethod: arg.PaymentMethod,
		Status:        arg.Status,
		CustomerName:  arg.CustomerName,
		CustomerPhone: arg.CustomerPhone,
		Note:          arg.Note,
		CreatedAt:     time.Now(),
	}
	s.nextOrderID++
	s.orders[order.ID] = order
	return order
}

func (s *MemStore) CreateOrderItem(_ context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createOrderItemLocked(arg), nil
}

func (s *MemStore) createOrderItemLocked(arg CreateOrderItemParams) OrderItem {
	item := OrderItem{
		ID:          s.nextItemID,
		OrderID:     arg.OrderID,
		ProductID:   arg.ProductID,
		ProductName: arg.ProductName,
		Quantity:    arg.Quantity,
		UnitPrice:   arg.UnitPrice,
		TotalPrice:  arg.TotalPrice,
	}
	s.nextItemID++
	s.orderItems[arg.OrderID] = append(s.orderItems[arg.OrderID], item)
	return item
}

func (s *MemStore) GetOrderByCode(_ context.Context, code string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.Code == code {
			return order, nil
		}
	}
	return Order{}, ErrRecordNotFound
}

func (s *MemStore) ListOrders(_ context.Context, arg ListOrdersParams) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []Order
	for _, order := range s.orders {
		if arg.Status != nil && order.Status != *arg.Status {
			continue
		}
		if arg.FromDate != nil && order.CreatedAt.Before(*arg.FromDate) {
			continue
		}
		if arg.ToDate != nil && !order.CreatedAt.Before(*arg.ToDate) {
			continue
		}
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (s *MemStore) ListOrderItems(_ context.Context, orderID int64) ([]OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]OrderItem, len(s.orderItems[orderID]))
	copy(items, s.orderItems[orderID])
	return items, nil
}

func (s *MemStore) CompleteOrderByCode(_ context.Context, code string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, order := range s.orders {
		if order.Code == code && order.Status == OrderStatusPending {
			order.Status = OrderStatusCompleted
			s.orders[id] = order
			return order, nil
		}
	}
	return Order{}, ErrRecordNotFound
}

func (s *MemStore) GetDailyRevenue(_ context.Context, arg GetDailyRevenueParams) ([]DailyRevenueRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc := util.VietnamLocation()
	byDay := make(map[time.Time]*DailyRevenueRow)

	for _, order := range s.orders {
		if order.Status != OrderStatusCompleted {
			continue
		}
		if order.CreatedAt.Before(arg.FromDate) || !order.CreatedAt.Before(arg.ToDate) {
			continue
		}

		local := order.CreatedAt.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		row, ok := byDay[day]
		if !ok {
			row = &DailyRevenueRow{Day: day}
			byDay[day] = row
		}
		row.OrderCount++
		row.Revenue += order.TotalAmount
	}

	var report []DailyRevenueRow
	for _, row := range byDay {
		report = append(report, *row)
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Day.Before(report[j].Day) })
	return report, nil
}

func (s *MemStore) CreateImportRecord(_ context.Context, arg CreateImportRecordParams) (ImportRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createImportRecordLocked(arg), nil
}

func (s *MemStore) createImportRecordLocked(arg CreateImportRecordParams) ImportRecord {
	record := ImportRecord{
		ID:          s.nextRecordID,
		Code:        arg.Code,
		ProductID:   arg.ProductID,
		ProductName: arg.ProductName,
		Barcode:     arg.Barcode,
		Quantity:    arg.Quantity,
		Unit:        arg.Unit,
		ImportPrice: arg.ImportPrice,
		TotalCost:   arg.TotalCost,
		Method:      arg.Method,
		Note:        arg.Note,
		ImageURL:    arg.ImageURL,
		CreatedAt:   time.Now(),
	}
	s.nextRecordID++
	s.importRecords[record.ID] = record
	return record
}

func (s *MemStore) ListImportRecords(_ context.Context, arg ListImportRecordsParams) ([]ImportRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []ImportRecord
	for _, record := range s.importRecords {
		if arg.FromDate != nil && record.CreatedAt.Before(*arg.FromDate) {
			continue
		}
		if arg.ToDate != nil && !record.CreatedAt.Before(*arg.ToDate) {
			continue
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })
	return records, nil
}

func (s *MemStore) sortedProductsLocked() []Product {
	products := make([]Product, 0, len(s.products))
	for _, product := range s.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}
