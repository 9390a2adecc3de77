package db

import (
	"context"
)

const productColumns = `id, name, slug, description, barcode, unit, category, price, import_price, stock, min_stock, image_url, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Barcode,
		&p.Unit,
		&p.Category,
		&p.Price,
		&p.ImportPrice,
		&p.Stock,
		&p.MinStock,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const createProduct = `
INSERT INTO products (name, slug, description, barcode, unit, category, price, import_price, stock, min_stock, image_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + productColumns

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, createProduct,
		arg.Name,
		arg.Slug,
		arg.Description,
		arg.Barcode,
		arg.Unit,
		arg.Category,
		arg.Price,
		arg.ImportPrice,
		arg.Stock,
		arg.MinStock,
		arg.ImageURL,
	)
	return scanProduct(row)
}

const getProductByID = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`

func (q *Queries) GetProductByID(ctx context.Context, id int64) (Product, error) {
	return scanProduct(q.db.QueryRow(ctx, getProductByID, id))
}

const getProductByBarcode = `
SELECT ` + productColumns + `
FROM products
WHERE barcode = $1
`

func (q *Queries) GetProductByBarcode(ctx context.Context, code string) (Product, error) {
	return scanProduct(q.db.QueryRow(ctx, getProductByBarcode, code))
}

const listProducts = `
SELECT ` + productColumns + `
FROM products
WHERE ($1::text IS NULL OR name ILIKE '%' || $1 || '%')
  AND ($2::text IS NULL OR category = $2)
ORDER BY id
`

func (q *Queries) ListProducts(ctx context.Context, arg ListProductsParams) ([]Product, error) {
	rows, err := q.db.Query(ctx, listProducts, arg.Name, arg.Category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

const updateProduct = `
UPDATE products
SET name = COALESCE($2, name),
    description = COALESCE($3, description),
    barcode = COALESCE($4, barcode),
    unit = COALESCE($5, unit),
    category = COALESCE($6, category),
    price = COALESCE($7, price),
    import_price = COALESCE($8, import_price),
    min_stock = COALESCE($9, min_stock),
    updated_at = now()
WHERE id = $1
RETURNING ` + productColumns

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, updateProduct,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Barcode,
		arg.Unit,
		arg.Category,
		arg.Price,
		arg.ImportPrice,
		arg.MinStock,
	)
	return scanProduct(row)
}

const updateProductImageURL = `
UPDATE products
SET image_url = $2, updated_at = now()
WHERE id = $1
`

func (q *Queries) UpdateProductImageURL(ctx context.Context, arg UpdateProductImageURLParams) error {
	_, err := q.db.Exec(ctx, updateProductImageURL, arg.ID, arg.ImageURL)
	return err
}

const adjustProductStock = `
UPDATE products
SET stock = stock + $2, updated_at = now()
WHERE id = $1
RETURNING ` + productColumns

func (q *Queries) AdjustProductStock(ctx context.Context, arg AdjustProductStockParams) (Product, error) {
	return scanProduct(q.db.QueryRow(ctx, adjustProductStock, arg.ID, arg.Delta))
}

const listLowStockProducts = `
SELECT ` + productColumns + `
FROM products
WHERE stock <= min_stock
ORDER BY stock
`

func (q *Queries) ListLowStockProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.Query(ctx, listLowStockProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
