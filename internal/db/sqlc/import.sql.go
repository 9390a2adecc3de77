package db

import (
	"context"
)

const importColumns = `id, code, product_id, product_name, barcode, quantity, unit, import_price, total_cost, method, note, image_url, created_at`

func scanImportRecord(row interface{ Scan(dest ...any) error }) (ImportRecord, error) {
	var r ImportRecord
	err := row.Scan(
		&r.ID,
		&r.Code,
		&r.ProductID,
		&r.ProductName,
		&r.Barcode,
		&r.Quantity,
		&r.Unit,
		&r.ImportPrice,
		&r.TotalCost,
		&r.Method,
		&r.Note,
		&r.ImageURL,
		&r.CreatedAt,
	)
	return r, err
}

const createImportRecord = `
INSERT INTO import_records (code, product_id, product_name, barcode, quantity, unit, import_price, total_cost, method, note, image_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + importColumns

func (q *Queries) CreateImportRecord(ctx context.Context, arg CreateImportRecordParams) (ImportRecord, error) {
	row := q.db.QueryRow(ctx, createImportRecord,
		arg.Code,
		arg.ProductID,
		arg.ProductName,
		arg.Barcode,
		arg.Quantity,
		arg.Unit,
		arg.ImportPrice,
		arg.TotalCost,
		arg.Method,
		arg.Note,
		arg.ImageURL,
	)
	return scanImportRecord(row)
}

const listImportRecords = `
SELECT ` + importColumns + `
FROM import_records
WHERE ($1::timestamptz IS NULL OR created_at >= $1)
  AND ($2::timestamptz IS NULL OR created_at < $2)
ORDER BY created_at DESC
`

func (q *Queries) ListImportRecords(ctx context.Context, arg ListImportRecordsParams) ([]ImportRecord, error) {
	rows, err := q.db.Query(ctx, listImportRecords, arg.FromDate, arg.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ImportRecord
	for rows.Next() {
		r, err := scanImportRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
