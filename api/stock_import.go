package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ngochandev/taphoa-BE/internal/barcode"
	db "github.com/ngochandev/taphoa-BE/internal/db/sqlc"
	"github.com/ngochandev/taphoa-BE/internal/event"
	"github.com/ngochandev/taphoa-BE/internal/util"
	"github.com/ngochandev/taphoa-BE/internal/worker"
	"github.com/rs/zerolog/log"
)

type createImportRequest struct {
	ProductName string  `json:"product_name" binding:"required"`
	Barcode     *string `json:"barcode"`
	Quantity    int64   `json:"quantity" binding:"required"`
	Unit        string  `json:"unit"`
	ImportPrice int64   `json:"import_price"`
	Method      string  `json:"method" binding:"required"`
	Note        *string `json:"note"`
	ImageURL    *string `json:"image_url"`
}

// @Summary		Record a stock intake
// @Description	Books a stock intake slip. The product is looked up by barcode first, then by name; an unknown product is added to the catalog with a suggested sell price. A negative quantity records a return to the supplier.
// @Tags			imports
// @Accept			json
// @Produce		json
// @Param			request	body		createImportRequest	true	"Intake info"
// @Success		200		{object}	db.ImportResult
// @Security		BearerAuth
// @Router			/v1/imports [post]
func (server *Server) createImport(ctx *gin.Context) {
	req := new(createImportRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if !db.IsValidImportMethod(req.Method) {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid import method %q", req.Method)))
		return
	}

	if req.Barcode != nil && *req.Barcode != "" {
		completed, err := barcode.Complete(*req.Barcode)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, errorResponse(err))
			return
		}
		req.Barcode = &completed
	}

	if req.Unit == "" {
		req.Unit = "cái"
	}

	result, err := server.dbStore.CreateImportTx(context.Background(), db.CreateImportTxParams{
		ProductName: req.ProductName,
		Barcode:     req.Barcode,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		ImportPrice: req.ImportPrice,
		Method:      db.ImportMethod(req.Method),
		Note:        req.Note,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		log.Err(err).Msg("failed to create import record")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	// Trả hàng có thể đẩy tồn kho xuống dưới ngưỡng, kiểm tra luôn.
	if result.Product.Stock <= result.Product.MinStock {
		server.eventSender.Broadcast(event.Event{
			Topic: event.TopicOrders,
			Type:  event.EventTypeLowStock,
			Data:  result.Product,
		})

		// Distributor nil khi chạy demo không có Redis.
		if server.taskDistributor != nil {
			err = server.taskDistributor.DistributeTaskLowStockAlert(ctx, &worker.PayloadLowStockAlert{
				TriggeredBy: result.Record.Code,
			})
			if err != nil {
				log.Warn().Err(err).Str("import_code", result.Record.Code).Msg("failed to enqueue low stock alert")
			}
		}
	}

	ctx.JSON(http.StatusOK, result)
}

// @Summary		List stock intake records
// @Tags			imports
// @Produce		json
// @Param			from	query		string	false	"From date, format 2006-01-02"
// @Param			to		query		string	false	"To date (exclusive), format 2006-01-02"
// @Success		200		{array}		db.ImportRecord
// @Security		BearerAuth
// @Router			/v1/imports [get]
func (server *Server) listImports(ctx *gin.Context) {
	arg := db.ListImportRecordsParams{}

	loc := util.VietnamLocation()
	if from := ctx.Query("from"); from != "" {
		fromDate, err := time.ParseInLocation("2006-01-02", from, loc)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid from date: %w", err)))
			return
		}
		arg.FromDate = &fromDate
	}
	if to := ctx.Query("to"); to != "" {
		toDate, err := time.ParseInLocation("2006-01-02", to, loc)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid to date: %w", err)))
			return
		}
		arg.ToDate = &toDate
	}

	records, err := server.dbStore.ListImportRecords(context.Background(), arg)
	if err != nil {
		log.Err(err).Msg("failed to list import records")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, records)
}
