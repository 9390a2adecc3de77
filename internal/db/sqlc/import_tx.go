package db

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ngochandev/taphoa-BE/internal/util"
)

type CreateImportTxParams struct {
	ProductName string
	Barcode     *string
	Quantity    int64
	Unit        string
	ImportPrice int64
	Method      ImportMethod
	Note        *string
	ImageURL    *string
}

type ImportResult struct {
	Record  ImportRecord `json:"record"`
	Product Product      `json:"product"`
	// Created đánh dấu sản phẩm mới được thêm vào danh mục từ phiếu nhập này.
	Created bool `json:"product_created"`
}

// margin mặc định khi sinh giá bán cho sản phẩm mới từ giá nhập.
const defaultMarginPercent = 30

// CreateImportTx ghi một phiếu nhập hàng: tìm sản phẩm theo mã vạch rồi theo
// tên; chưa có thì thêm mới vào danh mục với giá bán tạm tính theo margin
// mặc định; cộng tồn kho và lưu phiếu, tất cả trong một transaction.
//
// Quantity âm là trả hàng cho nhà cung cấp: tồn kho bị trừ đi tương ứng.
func (store *SQLStore) CreateImportTx(ctx context.Context, arg CreateImportTxParams) (ImportResult, error) {
	var result ImportResult

	if arg.ProductName == "" {
		return result, fmt.Errorf("product name is required")
	}
	if arg.Quantity == 0 {
		return result, fmt.Errorf("quantity must not be zero")
	}

	err := store.execTx(ctx, func(q *Queries) error {
		product, err := findImportTarget(ctx, q, arg)
		switch {
		case err == nil:
		case errors.Is(err, ErrRecordNotFound):
			product, err = q.CreateProduct(ctx, CreateProductParams{
				Name:        arg.ProductName,
				Slug:        util.GenerateProductSlug(arg.ProductName),
				Barcode:     arg.Barcode,
				Unit:        arg.Unit,
				Category:    "Chưa phân loại",
				Price:       suggestSellPrice(arg.ImportPrice),
				ImportPrice: arg.ImportPrice,
			})
			if err != nil {
				return fmt.Errorf("failed to create product: %w", err)
			}
			result.Created = true
		default:
			return err
		}

		product, err = q.AdjustProductStock(ctx, AdjustProductStockParams{
			ID:    product.ID,
			Delta: arg.Quantity,
		})
		if err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}
		result.Product = product

		record, err := q.CreateImportRecord(ctx, CreateImportRecordParams{
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
		if err != nil {
			return fmt.Errorf("failed to create import record: %w", err)
		}
		result.Record = record

		return nil
	})

	return result, err
}

func findImportTarget(ctx context.Context, q *Queries, arg CreateImportTxParams) (Product, error) {
	if arg.Barcode != nil && *arg.Barcode != "" {
		product, err := q.GetProductByBarcode(ctx, *arg.Barcode)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, ErrRecordNotFound) {
			return Product{}, err
		}
	}

	products, err := q.ListProducts(ctx, ListProductsParams{Name: &arg.ProductName})
	if err != nil {
		return Product{}, err
	}
	if len(products) == 0 {
		return Product{}, ErrRecordNotFound
	}

	return products[0], nil
}

func suggestSellPrice(importPrice int64) int64 {
	price := float64(importPrice) * (1 + float64(defaultMarginPercent)/100)
	// Làm tròn lên 500đ cho dễ thối tiền.
	return int64(math.Ceil(price/500) * 500)
}
