package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ngochandev/taphoa-BE/internal/util"
)

// CreateOrderTx trên MemStore giữ nguyên ngữ nghĩa của bản Postgres: kiểm tra
// tồn kho toàn bộ giỏ hàng trước, thiếu hàng thì không ghi gì cả.
func (s *MemStore) CreateOrderTx(_ context.Context, arg CreateOrderTxParams) (OrderDetails, error) {
	var result OrderDetails

	if len(arg.Items) == 0 {
		return result, fmt.Errorf("order must contain at least one item")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	type line struct {
		product  Product
		quantity int64
	}

	var total int64
	lines := make([]line, 0, len(arg.Items))

	for _, item := range arg.Items {
		if item.Quantity <= 0 {
			return result, fmt.Errorf("quantity for product %d must be positive", item.ProductID)
		}

		product, err := s.getProductLocked(item.ProductID)
		if err != nil {
			return result, fmt.Errorf("product %d: %w", item.ProductID, err)
		}

		if product.Stock < item.Quantity {
			return result, fmt.Errorf("%w: product %q has %d in stock, need %d",
				ErrInsufficientStock, product.Name, product.Stock, item.Quantity)
		}

		total += product.Price * item.Quantity
		lines = append(lines, line{product: product, quantity: item.Quantity})
	}

	status := OrderStatusCompleted
	if arg.PaymentMethod == PaymentMethodQRTransfer {
		status = OrderStatusPending
	}

	result.Order = s.createOrderLocked(CreateOrderParams{
		Code:          util.GenerateOrderCode(),
		TotalAmount:   total,
		PaymentMethod: arg.PaymentMethod,
		Status:        status,
		CustomerName:  arg.CustomerName,
		CustomerPhone: arg.CustomerPhone,
		Note:          arg.Note,
	})

	for _, l := range lines {
		item := s.createOrderItemLocked(CreateOrderItemParams{
			OrderID:     result.Order.ID,
			ProductID:   l.product.ID,
			ProductName: l.product.Name,
			Quantity:    l.quantity,
			UnitPrice:   l.product.Price,
			TotalPrice:  l.product.Price * l.quantity,
		})
		result.OrderItems = append(result.OrderItems, item)

		if _, err := s.adjustStockLocked(AdjustProductStockParams{
			ID:    l.product.ID,
			Delta: -l.quantity,
		}); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (s *MemStore) CreateImportTx(_ context.Context, arg CreateImportTxParams) (ImportResult, error) {
	var result ImportResult

	if arg.ProductName == "" {
		return result, fmt.Errorf("product name is required")
	}
	if arg.Quantity == 0 {
		return result, fmt.Errorf("quantity must not be zero")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.findImportTargetLocked(arg)
	switch {
	case err == nil:
	case errors.Is(err, ErrRecordNotFound):
		product = s.createProductLocked(CreateProductParams{
			Name:        arg.ProductName,
			Slug:        util.GenerateProductSlug(arg.ProductName),
			Barcode:     arg.Barcode,
			Unit:        arg.Unit,
			Category:    "Chưa phân loại",
			Price:       suggestSellPrice(arg.ImportPrice),
			ImportPrice: arg.ImportPrice,
		})
		result.Created = true
	default:
		return result, err
	}

	product, err = s.adjustStockLocked(AdjustProductStockParams{
		ID:    product.ID,
		Delta: arg.Quantity,
	})
	if err != nil {
		return result, err
	}
	result.Product = product

	result.Record = s.createImportRecordLocked(CreateImportRecordParams{
		Code:        util.GenerateImportCode(),
		ProductID:   &product.ID,
		ProductName: product.Name,
		Barcode:     arg.Barcode,
		Quantity:    arg.Quantity,
		Unit:        arg.Unit,
		ImportPrice: arg.ImportPrice,
		TotalCost:   arg.ImportPrice * arg.Quantity,
		Method:      arg.Method,
		Note:        arg.Note,
		ImageURL:    arg.ImageURL,
	})

	return result, nil
}

func (s *MemStore) findImportTargetLocked(arg CreateImportTxParams) (Product, error) {
	if arg.Barcode != nil && *arg.Barcode != "" {
		for _, product := range s.sortedProductsLocked() {
			if product.Barcode != nil && *product.Barcode == *arg.Barcode {
				return product, nil
			}
		}
	}

	name := strings.ToLower(arg.ProductName)
	for _, product := range s.sortedProductsLocked() {
		if strings.Contains(strings.ToLower(product.Name), name) {
			return product, nil
		}
	}

	return Product{}, ErrRecordNotFound
}
