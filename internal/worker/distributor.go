package worker

import (
	"context"

	"github.com/hibiken/asynq"
)

const (
	TaskDailyRevenueReport = "report:daily_revenue"
	TaskLowStockAlert      = "stock:low_alert"
)

/*
This file will contain the codes to create tasks and distributes them to the Redis queue.
*/

type TaskDistributor interface {
	DistributeTaskDailyRevenueReport(ctx context.Context, payload *PayloadDailyRevenueReport, opts ...asynq.Option) error
	DistributeTaskLowStockAlert(ctx context.Context, payload *PayloadLowStockAlert, opts ...asynq.Option) error
}

type RedisTaskDistributor struct {
	client *asynq.Client // client sends tasks to redis queue.
}

func NewTaskDistributor(redisOpt asynq.RedisClientOpt) TaskDistributor {
	client := asynq.NewClient(redisOpt)

	return &RedisTaskDistributor{
		client: client,
	}
}
