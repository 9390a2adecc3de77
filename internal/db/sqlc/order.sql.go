package db

import (
	"context"
)

const orderColumns = `id, code, total_amount, payment_method, status, customer_name, customer_phone, note, created_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.Code,
		&o.TotalAmount,
		&o.PaymentMethod,
		&o.Status,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.Note,
		&o.CreatedAt,
	)
	return o, err
}

const createOrder = `
INSERT INTO orders (code, total_amount, payment_method, status, customer_name, customer_phone, note)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + orderColumns

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.Code,
		arg.TotalAmount,
		arg.PaymentMethod,
		arg.Status,
		arg.CustomerName,
		arg.CustomerPhone,
		arg.Note,
	)
	return scanOrder(row)
}

const createOrderItem = `
INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, total_price)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, order_id, product_id, product_name, quantity, unit_price, total_price
`

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, createOrderItem,
		arg.OrderID,
		arg.ProductID,
		arg.ProductName,
		arg.Quantity,
		arg.UnitPrice,
		arg.TotalPrice,
	)

	var item OrderItem
	err := row.Scan(
		&item.ID,
		&item.OrderID,
		&item.ProductID,
		&item.ProductName,
		&item.Quantity,
		&item.UnitPrice,
		&item.TotalPrice,
	)
	return item, err
}

const getOrderByCode = `
SELECT ` + orderColumns + `
FROM orders
WHERE code = $1
`

func (q *Queries) GetOrderByCode(ctx context.Context, code string) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, getOrderByCode, code))
}

const listOrders = `
SELECT ` + orderColumns + `
FROM orders
WHERE ($1::text IS NULL OR status = $1)
  AND ($2::timestamptz IS NULL OR created_at >= $2)
  AND ($3::timestamptz IS NULL OR created_at < $3)
ORDER BY created_at DESC
`

func (q *Queries) ListOrders(ctx context.Context, arg ListOrdersParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrders, arg.Status, arg.FromDate, arg.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const listOrderItems = `
SELECT id, order_id, product_id, product_name, quantity, unit_price, total_price
FROM order_items
WHERE order_id = $1
ORDER BY id
`

func (q *Queries) ListOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := q.db.Query(ctx, listOrderItems, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var item OrderItem
		if err = rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.TotalPrice,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

const completeOrderByCode = `
UPDATE orders
SET status = 'completed'
WHERE code = $1 AND status = 'pending'
RETURNING ` + orderColumns

func (q *Queries) CompleteOrderByCode(ctx context.Context, code string) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, completeOrderByCode, code))
}

const getDailyRevenue = `
SELECT date_trunc('day', created_at AT TIME ZONE 'Asia/Ho_Chi_Minh') AS day,
       count(*) AS order_count,
       COALESCE(sum(total_amount), 0) AS revenue
FROM orders
WHERE status = 'completed'
  AND created_at >= $1
  AND created_at < $2
GROUP BY day
ORDER BY day
`

func (q *Queries) GetDailyRevenue(ctx context.Context, arg GetDailyRevenueParams) ([]DailyRevenueRow, error) {
	rows, err := q.db.Query(ctx, getDailyRevenue, arg.FromDate, arg.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []DailyRevenueRow
	for rows.Next() {
		var r DailyRevenueRow
		if err = rows.Scan(&r.Day, &r.OrderCount, &r.Revenue); err != nil {
			return nil, err
		}
		report = append(report, r)
	}
	return report, rows.Err()
}
