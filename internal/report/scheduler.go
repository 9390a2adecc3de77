package report

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/ngochandev/taphoa-BE/internal/util"
	"github.com/ngochandev/taphoa-BE/internal/worker"
	"github.com/rs/zerolog/log"
)

// Scheduler đẩy các task định kỳ của quán vào queue: báo cáo doanh thu cuối
// ngày và kiểm tra hàng sắp hết mỗi sáng.
type Scheduler struct {
	taskDistributor worker.TaskDistributor
	scheduler       gocron.Scheduler
}

func NewScheduler(taskDistributor worker.TaskDistributor) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(util.VietnamLocation()))
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		taskDistributor: taskDistributor,
		scheduler:       scheduler,
	}, nil
}

// Start đăng ký các cronjob và chạy scheduler.
func (s *Scheduler) Start() error {
	// Báo cáo doanh thu lúc 21h30, sau giờ đóng cửa của phần lớn quán tạp hóa.
	_, err := s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(21, 30, 0))),
		gocron.NewTask(
			func() {
				s.enqueueDailyRevenueReport()
			},
		),
	)
	if err != nil {
		return err
	}

	// Kiểm tra hàng sắp hết lúc 6h sáng để chủ quán kịp gọi nhà cung cấp.
	_, err = s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(6, 0, 0))),
		gocron.NewTask(
			func() {
				s.enqueueLowStockCheck()
			},
		),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	return nil
}

// Stop dừng toàn bộ cronjob.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

func (s *Scheduler) enqueueDailyRevenueReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	date := time.Now().In(util.VietnamLocation()).Format("2006-01-02")
	err := s.taskDistributor.DistributeTaskDailyRevenueReport(ctx, &worker.PayloadDailyRevenueReport{
		Date: date,
	})
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to enqueue daily revenue report")
	}
}

func (s *Scheduler) enqueueLowStockCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.taskDistributor.DistributeTaskLowStockAlert(ctx, &worker.PayloadLowStockAlert{
		TriggeredBy: "schedule",
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to enqueue low stock check")
	}
}
