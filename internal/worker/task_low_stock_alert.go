package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type PayloadLowStockAlert struct {
	// TriggeredBy ghi lại nguồn phát sinh cảnh báo: "schedule" hoặc mã phiếu nhập/đơn hàng.
	TriggeredBy string `json:"triggered_by"`
}

// DistributeTaskLowStockAlert đẩy task kiểm tra hàng sắp hết vào queue
func (distributor *RedisTaskDistributor) DistributeTaskLowStockAlert(
	ctx context.Context,
	payload *PayloadLowStockAlert,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(TaskLowStockAlert, jsonPayload, opts...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().
		Str("type", task.Type()).
		Str("triggered_by", payload.TriggeredBy).
		Str("queue", info.Queue).
		Msg("low stock alert task scheduled")

	return nil
}

// ProcessTaskLowStockAlert quét các mặt hàng có tồn kho dưới ngưỡng và bắn
// cảnh báo cho chủ quán.
func (processor *RedisTaskProcessor) ProcessTaskLowStockAlert(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadLowStockAlert
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	products, err := processor.store.ListLowStockProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list low stock products: %w", err)
	}

	if len(products) == 0 {
		log.Info().Msg("no low stock products, skipping alert")
		return nil
	}

	if processor.alertSender == nil {
		log.Warn().
			Int("low_stock_count", len(products)).
			Msg("alert sender not configured, skipping low stock alert")
		return nil
	}

	if err = processor.alertSender.SendLowStockAlert(products); err != nil {
		return fmt.Errorf("failed to send low stock alert: %w", err)
	}

	log.Info().
		Str("triggered_by", payload.TriggeredBy).
		Int("low_stock_count", len(products)).
		Msg("low stock alert sent")

	return nil
}
