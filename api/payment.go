package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	db "github.com/ngochandev/taphoa-BE/internal/db/sqlc"
	"github.com/ngochandev/taphoa-BE/internal/event"
	"github.com/rs/zerolog/log"
)

type createPaymentQRRequest struct {
	OrderCode string `json:"order_code" binding:"required"`
}

type createPaymentQRResponse struct {
	OrderCode  string `json:"order_code"`
	Amount     int64  `json:"amount"`
	QRImageURL string `json:"qr_image_url"`
}

// @Summary		Build a VietQR payment image for a pending order
// @Tags			payments
// @Accept			json
// @Produce		json
// @Param			request	body		createPaymentQRRequest	true	"Order code"
// @Success		200		{object}	createPaymentQRResponse
// @Security		BearerAuth
// @Router			/v1/payments/qr [post]
func (server *Server) createPaymentQR(ctx *gin.Context) {
	req := new(createPaymentQRRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if !server.vietqrService.Configured() {
		ctx.JSON(http.StatusServiceUnavailable, errorResponse(errors.New("bank account is not configured")))
		return
	}

	order, err := server.dbStore.GetOrderByCode(context.Background(), req.OrderCode)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("order %s not found", req.OrderCode)))
			return
		}

		log.Err(err).Msg("failed to get order")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if order.Status != db.OrderStatusPending {
		ctx.JSON(http.StatusConflict, errorResponse(fmt.Errorf("order %s is not awaiting payment", req.OrderCode)))
		return
	}

	ctx.JSON(http.StatusOK, createPaymentQRResponse{
		OrderCode:  order.Code,
		Amount:     order.TotalAmount,
		QRImageURL: server.vietqrService.QuickLinkURL(order.TotalAmount, order.Code),
	})
}

// orderCodePattern khớp định dạng mã đơn do util.GenerateOrderCode sinh ra.
var orderCodePattern = regexp.MustCompile(`DH-[23456789ABCDEFGHJKLMNPQRSTUVWXYZ]{10}`)

type paymentWebhookRequest struct {
	// Content là nội dung chuyển khoản, chứa mã đơn hàng.
	Content string `json:"content"`
	Amount  int64  `json:"transferAmount"`
}

// handlePaymentWebhook nhận thông báo có tiền vào từ dịch vụ đối soát ngân
// hàng. Chữ ký HMAC sai thì bỏ qua request; số tiền không khớp thì không
// hoàn tất đơn và để chủ quán tự xử lý.
func (server *Server) handlePaymentWebhook(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	signature := ctx.GetHeader("X-Signature")
	if !server.vietqrService.VerifyWebhookSignature(body, signature) {
		log.Warn().Msg("payment webhook with invalid signature rejected")
		ctx.JSON(http.StatusUnauthorized, errorResponse(errors.New("invalid signature")))
		return
	}

	req := new(paymentWebhookRequest)
	if err = json.Unmarshal(body, req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	orderCode := extractOrderCode(req.Content)
	if orderCode == "" {
		log.Warn().Str("content", req.Content).Msg("payment webhook without order code")
		ctx.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	order, err := server.dbStore.GetOrderByCode(context.Background(), orderCode)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			log.Warn().Str("order_code", orderCode).Msg("payment webhook for unknown order")
			ctx.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}

		log.Err(err).Msg("failed to get order for payment webhook")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if req.Amount < order.TotalAmount {
		log.Warn().
			Str("order_code", orderCode).
			Int64("expected", order.TotalAmount).
			Int64("received", req.Amount).
			Msg("payment amount mismatch, order left pending")
		ctx.JSON(http.StatusOK, gin.H{"status": "amount_mismatch"})
		return
	}

	completed, err := server.dbStore.CompleteOrderByCode(context.Background(), orderCode)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			// Đơn đã completed từ trước, webhook gửi lại thì bỏ qua.
			ctx.JSON(http.StatusOK, gin.H{"status": "already_completed"})
			return
		}

		log.Err(err).Msg("failed to complete order")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	log.Info().
		Str("order_code", completed.Code).
		Int64("amount", req.Amount).
		Msg("order paid via bank transfer ✅")

	server.eventSender.Broadcast(event.Event{
		Topic: event.TopicOrders,
		Type:  event.EventTypeOrderPaid,
		Data:  completed,
	})

	ctx.JSON(http.StatusOK, gin.H{"status": "completed", "order": completed})
}

// extractOrderCode tìm mã đơn dạng DH-XXXXXXXXXX trong nội dung chuyển khoản.
// Ngân hàng hay chèn thêm chữ vào trước sau nên không so sánh bằng được.
func extractOrderCode(content string) string {
	return orderCodePattern.FindString(content)
}
