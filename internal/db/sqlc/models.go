package db

import (
	"time"
)

type UserRole string

const (
	UserRoleOwner UserRole = "owner"
	UserRoleStaff UserRole = "staff"
)

type User struct {
	ID              string    `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	HashedPassword  *string   `json:"-"`
	GoogleAccountID *string   `json:"google_account_id"`
	Role            UserRole  `json:"role"`
	CreatedAt       time.Time `json:"created_at"`
}

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	Barcode     *string   `json:"barcode"`
	Unit        string    `json:"unit"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`        // giá bán
	ImportPrice int64     `json:"import_price"` // giá vốn
	Stock       int64     `json:"stock"`
	MinStock    int64     `json:"min_stock"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductName implements the voice search catalog entry.
func (p Product) ProductName() string {
	return p.Name
}

type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "CASH"
	PaymentMethodQRTransfer PaymentMethod = "QR_TRANSFER"
	PaymentMethodDebt       PaymentMethod = "DEBT"
)

func IsValidPaymentMethod(method string) bool {
	switch PaymentMethod(method) {
	case PaymentMethodCash, PaymentMethodQRTransfer, PaymentMethodDebt:
		return true
	}
	return false
}

type OrderStatus string

const (
	// Đơn QR_TRANSFER nằm ở pending cho tới khi webhook ngân hàng xác nhận.
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

type Order struct {
	ID            int64         `json:"id"`
	Code          string        `json:"code"`
	TotalAmount   int64         `json:"total_amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        OrderStatus   `json:"status"`
	CustomerName  *string       `json:"customer_name"`
	CustomerPhone *string       `json:"customer_phone"`
	Note          *string       `json:"note"`
	CreatedAt     time.Time     `json:"created_at"`
}

type OrderItem struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"order_id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	TotalPrice  int64  `json:"total_price"`
}

type ImportMethod string

const (
	ImportMethodBarcode ImportMethod = "barcode"
	ImportMethodVoice   ImportMethod = "voice"
	ImportMethodManual  ImportMethod = "manual"
)

func IsValidImportMethod(method string) bool {
	switch ImportMethod(method) {
	case ImportMethodBarcode, ImportMethodVoice, ImportMethodManual:
		return true
	}
	return false
}

type ImportRecord struct {
	ID          int64        `json:"id"`
	Code        string       `json:"code"`
	ProductID   *int64       `json:"product_id"`
	ProductName string       `json:"product_name"`
	Barcode     *string      `json:"barcode"`
	Quantity    int64        `json:"quantity"`
	Unit        string       `json:"unit"`
	ImportPrice int64        `json:"import_price"`
	TotalCost   int64        `json:"total_cost"`
	Method      ImportMethod `json:"method"`
	Note        *string      `json:"note"`
	ImageURL    *string      `json:"image_url"`
	CreatedAt   time.Time    `json:"created_at"`
}

// DailyRevenueRow là một dòng trong báo cáo doanh thu theo ngày.
type DailyRevenueRow struct {
	Day        time.Time `json:"day"`
	OrderCount int64     `json:"order_count"`
	Revenue    int64     `json:"revenue"`
}
