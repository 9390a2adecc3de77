package main

import (
	"context"
	"net/http"
	"os"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ngochandev/taphoa-BE/api"
	"github.com/ngochandev/taphoa-BE/internal/alert"
	db "github.com/ngochandev/taphoa-BE/internal/db/sqlc"
	"github.com/ngochandev/taphoa-BE/internal/event"
	"github.com/ngochandev/taphoa-BE/internal/mailer"
	"github.com/ngochandev/taphoa-BE/internal/report"
	"github.com/ngochandev/taphoa-BE/internal/util"
	"github.com/ngochandev/taphoa-BE/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.ngrok.com/ngrok"
	ngrokconfig "golang.ngrok.com/ngrok/config"

	"github.com/rs/zerolog/log"

	_ "github.com/ngochandev/taphoa-BE/docs"
)

//	@title			Tap Hoa API
//	@version		1.0.0
//	@description	API documentation for the Tap Hoa point-of-sale application

//	@host		localhost:8080
//	@BasePath	/v1
//	@schemes	http https

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}

	log.Info().Msg("configurations loaded successfully ✅")

	store := newStore(config)

	eventSender := event.NewSSEServer()
	go eventSender.Run()

	var taskDistributor worker.TaskDistributor
	if config.RedisServerAddress != "" {
		redisDb := redis.NewClient(&redis.Options{
			Addr: config.RedisServerAddress,
		})
		if err = redisDb.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis 😣")
		}
		log.Info().Msg("connected to redis ✅")

		redisOpt := asynq.RedisClientOpt{Addr: config.RedisServerAddress}
		taskDistributor = worker.NewTaskDistributor(redisOpt)

		go runTaskProcessor(redisOpt, store, config)
		go runReportScheduler(taskDistributor)
	} else {
		log.Warn().Msg("REDIS_SERVER_ADDRESS is not set, background reports and alerts are disabled")
	}

	runHTTPServer(config, store, taskDistributor, eventSender)
}

// newStore mở pool Postgres, hoặc kho dữ liệu trong bộ nhớ với danh mục hàng
// mẫu khi DATABASE_URL bỏ trống.
func newStore(config util.Config) db.Store {
	if config.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL is not set, running with in-memory store and sample catalog")
		return db.NewSeededMemStore()
	}

	connPool, err := pgxpool.New(context.Background(), config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to validate db connection string 😣")
	}

	pingErr := connPool.Ping(context.Background())
	if pingErr != nil {
		log.Fatal().Err(pingErr).Msg("failed to connect to db 😣")
	}
	log.Info().Msg("connected to db ✅")

	return db.NewStore(connPool)
}

func runTaskProcessor(redisOpt asynq.RedisClientOpt, store db.Store, config util.Config) {
	var emailSender mailer.EmailSender
	if config.GmailSMTPUsername != "" && config.GmailSMTPPassword != "" {
		gmailSender, err := mailer.NewGmailSender(config.GmailSMTPUsername, config.GmailSMTPPassword, config)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create mailer service 😣")
		}
		emailSender = gmailSender
		log.Info().Msg("mailer service created successfully ✅")
	}

	var alertSender alert.Sender
	if config.DiscordBotToken != "" && config.DiscordChannelID != "" {
		discordSender, err := alert.NewDiscordSender(config)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create discord alert sender 😣")
		}
		alertSender = discordSender
		log.Info().Msg("discord alert sender created successfully ✅")
	}

	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, store, config, emailSender, alertSender)
	log.Info().Msg("starting task processor")
	if err := taskProcessor.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start task processor 😣")
	}
}

func runReportScheduler(taskDistributor worker.TaskDistributor) {
	scheduler, err := report.NewScheduler(taskDistributor)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create report scheduler 😣")
	}

	if err = scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start report scheduler 😣")
	}
	log.Info().Msg("report scheduler started ✅")
}

func runHTTPServer(config util.Config, store db.Store, taskDistributor worker.TaskDistributor, eventSender event.EventSender) {
	server, err := api.NewServer(store, taskDistributor, &config, eventSender)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP server 😣")
	}

	// Web Speech API trên điện thoại đòi HTTPS nên hỗ trợ expose server qua
	// ngrok khi chạy thử, token đọc từ biến môi trường NGROK_AUTHTOKEN.
	if config.NgrokEnabled {
		opts := []ngrokconfig.HTTPEndpointOption{}
		if config.NgrokDomain != "" {
			opts = append(opts, ngrokconfig.WithDomain(config.NgrokDomain))
		}

		listener, err := ngrok.Listen(context.Background(),
			ngrokconfig.HTTPEndpoint(opts...),
			ngrok.WithAuthtokenFromEnv(),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create ngrok listener 😣")
		}
		log.Info().Str("url", listener.URL()).Msg("serving over ngrok tunnel ✅")

		if err = http.Serve(listener, server.Handler()); err != nil {
			log.Fatal().Err(err).Msg("failed to serve over ngrok 😣")
		}
		return
	}

	err = server.Start(config.HTTPServerAddress)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start HTTP server 😣")
	}
}
