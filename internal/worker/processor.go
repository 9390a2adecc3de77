package worker

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/ngochandev/taphoa-BE/internal/alert"
	db "github.com/ngochandev/taphoa-BE/internal/db/sqlc"
	"github.com/ngochandev/taphoa-BE/internal/mailer"
	"github.com/ngochandev/taphoa-BE/internal/util"
	"github.com/rs/zerolog/log"
)

/*
 This file contains code that will pick up the tasks from the Redis queue and process them.
*/

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

type RedisTaskProcessor struct {
	server      *asynq.Server
	store       db.Store
	config      util.Config
	mailer      mailer.EmailSender
	alertSender alert.Sender
}

func NewRedisTaskProcessor(
	redisOpt asynq.RedisClientOpt,
	store db.Store,
	config util.Config,
	emailSender mailer.EmailSender,
	alertSender alert.Sender,
) *RedisTaskProcessor {
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				QueueCritical: 10,
				QueueDefault:  5,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).
					Bytes("payload", task.Payload()).Msg("process task failed")
			}),
			Logger: NewLogger(),
		},
	)

	return &RedisTaskProcessor{
		server:      server,
		store:       store,
		config:      config,
		mailer:      emailSender,
		alertSender: alertSender,
	}
}

// Start registers the task handlers for the mux, attaches the mux to the asynq server, and starts the server.
func (processor *RedisTaskProcessor) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskDailyRevenueReport, processor.ProcessTaskDailyRevenueReport)
	mux.HandleFunc(TaskLowStockAlert, processor.ProcessTaskLowStockAlert)

	return processor.server.Start(mux)
}

func (processor *RedisTaskProcessor) Shutdown() {
	processor.server.Shutdown()
}
