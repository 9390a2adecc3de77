package db

import (
	"context"
	"time"
)

type CreateUserParams struct {
	FullName        string
	Email           string
	HashedPassword  *string
	GoogleAccountID *string
	Role            UserRole
}

type CreateProductParams struct {
	Name        string
	Slug        string
	Description *string
	Barcode     *string
	Unit        string
	Category    string
	Price       int64
	ImportPrice int64
	Stock       int64
	MinStock    int64
	ImageURL    *string
}

type ListProductsParams struct {
	Name     *string
	Category *string
}

type UpdateProductParams struct {
	ID          int64
	Name        *string
	Description *string
	Barcode     *string
	Unit        *string
	Category    *string
	Price       *int64
	ImportPrice *int64
	MinStock    *int64
}

type UpdateProductImageURLParams struct {
	ID       int64
	ImageURL string
}

type AdjustProductStockParams struct {
	ID int64
	// Delta âm khi bán, dương khi nhập hàng.
	Delta int64
}

type CreateOrderParams struct {
	Code          string
	TotalAmount   int64
	PaymentMethod PaymentMethod
	Status        OrderStatus
	CustomerName  *string
	CustomerPhone *string
	Note          *string
}

type CreateOrderItemParams struct {
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int64
	UnitPrice   int64
	TotalPrice  int64
}

type ListOrdersParams struct {
	Status   *OrderStatus
	FromDate *time.Time
	ToDate   *time.Time
}

type GetDailyRevenueParams struct {
	FromDate time.Time
	ToDate   time.Time
}

type CreateImportRecordParams struct {
	Code        string
	ProductID   *int64
	ProductName string
	Barcode     *string
	Quantity    int64
	Unit        string
	ImportPrice int64
	TotalCost   int64
	Method      ImportMethod
	Note        *string
	ImageURL    *string
}

type ListImportRecordsParams struct {
	FromDate *time.Time
	ToDate   *time.Time
}

type Querier interface {
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)

	CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error)
	GetProductByID(ctx context.Context, id int64) (Product, error)
	GetProductByBarcode(ctx context.Context, code string) (Product, error)
	ListProducts(ctx context.Context, arg ListProductsParams) ([]Product, error)
	UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error)
	UpdateProductImageURL(ctx context.Context, arg UpdateProductImageURLParams) error
	AdjustProductStock(ctx context.Context, arg AdjustProductStockParams) (Product, error)
	ListLowStockProducts(ctx context.Context) ([]Product, error)

	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error)
	GetOrderByCode(ctx context.Context, code string) (Order, error)
	ListOrders(ctx context.Context, arg ListOrdersParams) ([]Order, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error)
	CompleteOrderByCode(ctx context.Context, code string) (Order, error)
	GetDailyRevenue(ctx context.Context, arg GetDailyRevenueParams) ([]DailyRevenueRow, error)

	CreateImportRecord(ctx context.Context, arg CreateImportRecordParams) (ImportRecord, error)
	ListImportRecords(ctx context.Context, arg ListImportRecordsParams) ([]ImportRecord, error)
}
