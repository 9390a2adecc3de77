package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	db "github.com/ngochandev/taphoa-BE/internal/db/sqlc"
	"github.com/ngochandev/taphoa-BE/internal/event"
	"github.com/ngochandev/taphoa-BE/internal/util"
	"github.com/rs/zerolog/log"
)

type createOrderRequest struct {
	Items         []db.OrderItemInput `json:"items" binding:"required"`
	PaymentMethod string              `json:"payment_method" binding:"required"`
	CustomerName  *string             `json:"customer_name"`
	CustomerPhone *string             `json:"customer_phone"`
	Note          *string             `json:"note"`
}

type createOrderResponse struct {
	db.OrderDetails
	// QRImageURL chỉ có khi thanh toán bằng chuyển khoản QR.
	QRImageURL string `json:"qr_image_url,omitempty"`
}

// @Summary		Create a sales order
// @Description	Checks out the cart at the counter. Stock is verified and decreased atomically; any shortage rolls back the whole order. QR transfer orders stay pending until the bank webhook confirms payment and include a VietQR image URL in the response.
// @Tags			orders
// @Accept			json
// @Produce		json
// @Param			request	body		createOrderRequest	true	"Cart contents"
// @Success		200		{object}	createOrderResponse
// @Security		BearerAuth
// @Router			/v1/orders [post]
func (server *Server) createOrder(ctx *gin.Context) {
	req := new(createOrderRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if !db.IsValidPaymentMethod(req.PaymentMethod) {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid payment method %q", req.PaymentMethod)))
		return
	}

	result, err := server.dbStore.CreateOrderTx(context.Background(), db.CreateOrderTxParams{
		Items:         req.Items,
		PaymentMethod: db.PaymentMethod(req.PaymentMethod),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Note:          req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, db.ErrInsufficientStock):
			ctx.JSON(http.StatusConflict, errorResponse(err))
		case errors.Is(err, db.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, errorResponse(err))
		default:
			log.Err(err).Msg("failed to create order")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		}
		return
	}

	resp := createOrderResponse{OrderDetails: result}

	if result.Order.PaymentMethod == db.PaymentMethodQRTransfer {
		if !server.vietqrService.Configured() {
			log.Warn().Str("order_code", result.Order.Code).Msg("bank account not configured, QR order created without QR image")
		} else {
			resp.QRImageURL = server.vietqrService.QuickLinkURL(result.Order.TotalAmount, result.Order.Code)
		}
	}

	server.eventSender.Broadcast(event.Event{
		Topic: event.TopicOrders,
		Type:  event.EventTypeOrderCreated,
		Data:  result,
	})

	ctx.JSON(http.StatusOK, resp)
}

// @Summary		List orders
// @Tags			orders
// @Produce		json
// @Param			status	query		string	false	"Filter by status (pending, completed)"
// @Param			from	query		string	false	"From date, format 2006-01-02"
// @Param			to		query		string	false	"To date (exclusive), format 2006-01-02"
// @Success		200		{array}		db.Order
// @Security		BearerAuth
// @Router			/v1/orders [get]
func (server *Server) listOrders(ctx *gin.Context) {
	arg := db.ListOrdersParams{}

	if status := ctx.Query("status"); status != "" {
		orderStatus := db.OrderStatus(status)
		arg.Status = &orderStatus
	}

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

	orders, err := server.dbStore.ListOrders(context.Background(), arg)
	if err != nil {
		log.Err(err).Msg("failed to list orders")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

func (server *Server) getOrderDetails(ctx *gin.Context) {
	code := ctx.Param("code")

	order, err := server.dbStore.GetOrderByCode(context.Background(), code)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("order %s not found", code)))
			return
		}

		log.Err(err).Msg("failed to get order")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	items, err := server.dbStore.ListOrderItems(context.Background(), order.ID)
	if err != nil {
		log.Err(err).Msg("failed to list order items")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, db.OrderDetails{Order: order, OrderItems: items})
}

type revenueReportResponse struct {
	Days         []db.DailyRevenueRow `json:"days"`
	TotalOrders  int64                `json:"total_orders"`
	TotalRevenue int64                `json:"total_revenue"`
}

// @Summary		Revenue report grouped by day
// @Tags			reports
// @Produce		json
// @Param			from	query		string	true	"From date, format 2006-01-02"
// @Param			to		query		string	true	"To date (exclusive), format 2006-01-02"
// @Success		200		{object}	revenueReportResponse
// @Security		BearerAuth
// @Router			/v1/reports/revenue [get]
func (server *Server) getRevenueReport(ctx *gin.Context) {
	loc := util.VietnamLocation()

	fromDate, err := time.ParseInLocation("2006-01-02", ctx.Query("from"), loc)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid from date: %w", err)))
		return
	}
	toDate, err := time.ParseInLocation("2006-01-02", ctx.Query("to"), loc)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid to date: %w", err)))
		return
	}
	if !toDate.After(fromDate) {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("to date must be after from date")))
		return
	}

	rows, err := server.dbStore.GetDailyRevenue(context.Background(), db.GetDailyRevenueParams{
		FromDate: fromDate,
		ToDate:   toDate,
	})
	if err != nil {
		log.Err(err).Msg("failed to get daily revenue")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	resp := revenueReportResponse{Days: rows}
	for _, row := range rows {
		resp.TotalOrders += row.OrderCount
		resp.TotalRevenue += row.Revenue
	}

	ctx.JSON(http.StatusOK, resp)
}
