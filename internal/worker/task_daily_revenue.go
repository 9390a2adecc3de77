package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	db "github.com/ngochandev/taphoa-BE/internal/db/sqlc"
	"github.com/ngochandev/taphoa-BE/internal/util"
	"github.com/rs/zerolog/log"
)

type PayloadDailyRevenueReport struct {
	// Date là ngày cần báo cáo, định dạng 2006-01-02 theo giờ Việt Nam.
	Date string `json:"date"`
}

// DistributeTaskDailyRevenueReport lên lịch task gửi báo cáo doanh thu cuối ngày
func (distributor *RedisTaskDistributor) DistributeTaskDailyRevenueReport(
	ctx context.Context,
	payload *PayloadDailyRevenueReport,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	taskID := fmt.Sprintf("report:daily_revenue:%s", payload.Date)
	task := asynq.NewTask(TaskDailyRevenueReport, jsonPayload, append(opts, asynq.TaskID(taskID))...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().
		Str("type", task.Type()).
		Str("task_id", taskID).
		Str("queue", info.Queue).
		Time("process_at", info.NextProcessAt).
		Msg("daily revenue report task scheduled")

	return nil
}

// ProcessTaskDailyRevenueReport tổng hợp doanh thu của ngày được yêu cầu và
// gửi email cho chủ quán.
func (processor *RedisTaskProcessor) ProcessTaskDailyRevenueReport(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadDailyRevenueReport
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	loc := util.VietnamLocation()
	day, err := time.ParseInLocation("2006-01-02", payload.Date, loc)
	if err != nil {
		return fmt.Errorf("invalid report date %q: %w", payload.Date, asynq.SkipRetry)
	}

	rows, err := processor.store.GetDailyRevenue(ctx, db.GetDailyRevenueParams{
		FromDate: day,
		ToDate:   day.AddDate(0, 0, 1),
	})
	if err != nil {
		return fmt.Errorf("failed to get daily revenue: %w", err)
	}

	if processor.mailer == nil || processor.config.OwnerEmail == "" {
		log.Warn().
			Str("date", payload.Date).
			Msg("owner email not configured, skipping revenue report")
		return nil
	}

	if err = processor.mailer.SendDailyRevenueReport(ctx, processor.config.OwnerEmail, day, rows); err != nil {
		return fmt.Errorf("failed to send revenue report: %w", err)
	}

	log.Info().
		Str("date", payload.Date).
		Int("days", len(rows)).
		Msg("daily revenue report sent")

	return nil
}
