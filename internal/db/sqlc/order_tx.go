package db

import (
	"context"
	"fmt"

	"github.com/ngochandev/taphoa-BE/internal/util"
)

type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CreateOrderTxParams struct {
	Items         []OrderItemInput
	PaymentMethod PaymentMethod
	CustomerName  *string
	CustomerPhone *string
	Note          *string
}

// OrderDetails gom đơn hàng và các dòng hàng, trả về cho client sau checkout.
type OrderDetails struct {
	Order      Order       `json:"order"`
	OrderItems []OrderItem `json:"order_items"`
}

// CreateOrderTx tạo đơn bán trong một transaction: kiểm tra tồn kho, trừ kho
// từng sản phẩm, tính tổng tiền phía server rồi ghi đơn + dòng hàng. Thiếu
// hàng ở bất kỳ sản phẩm nào thì rollback toàn bộ.
//
// Đơn thanh toán tiền mặt hoặc ghi nợ hoàn tất ngay; đơn chuyển khoản QR nằm
// ở trạng thái pending cho tới khi webhook ngân hàng xác nhận.
func (store *SQLStore) CreateOrderTx(ctx context.Context, arg CreateOrderTxParams) (OrderDetails, error) {
	var result OrderDetails

	if len(arg.Items) == 0 {
		return result, fmt.Errorf("order must contain at least one item")
	}

	err := store.execTx(ctx, func(q *Queries) error {
		type line struct {
			product  Product
			quantity int64
		}

		var total int64
		lines := make([]line, 0, len(arg.Items))

		for _, item := range arg.Items {
			if item.Quantity <= 0 {
				return fmt.Errorf("quantity for product %d must be positive", item.ProductID)
			}

			product, err := q.GetProductByID(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("product %d: %w", item.ProductID, err)
			}

			if product.Stock < item.Quantity {
				return fmt.Errorf("%w: product %q has %d in stock, need %d",
					ErrInsufficientStock, product.Name, product.Stock, item.Quantity)
			}

			total += product.Price * item.Quantity
			lines = append(lines, line{product: product, quantity: item.Quantity})
		}

		status := OrderStatusCompleted
		if arg.PaymentMethod == PaymentMethodQRTransfer {
			status = OrderStatusPending
		}

		order, err := q.CreateOrder(ctx, CreateOrderParams{
			Code:          util.GenerateOrderCode(),
			TotalAmount:   total,
			PaymentMethod: arg.PaymentMethod,
			Status:        status,
			CustomerName:  arg.CustomerName,
			CustomerPhone: arg.CustomerPhone,
			Note:          arg.Note,
		})
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		result.Order = order

		for _, l := range lines {
			item, err := q.CreateOrderItem(ctx, CreateOrderItemParams{
				OrderID:     order.ID,
				ProductID:   l.product.ID,
				ProductName: l.product.Name,
				Quantity:    l.quantity,
				UnitPrice:   l.product.Price,
				TotalPrice:  l.product.Price * l.quantity,
			})
			if err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			result.OrderItems = append(result.OrderItems, item)

			if _, err = q.AdjustProductStock(ctx, AdjustProductStockParams{
				ID:    l.product.ID,
				Delta: -l.quantity,
			}); err != nil {
				return fmt.Errorf("failed to decrease stock: %w", err)
			}
		}

		return nil
	})

	return result, err
}
