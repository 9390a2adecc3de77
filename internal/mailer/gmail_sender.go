package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	db "github.com/ngochandev/taphoa-BE/internal/db/sqlc"
	"github.com/ngochandev/taphoa-BE/internal/util"
	"github.com/wneessen/go-mail"
)

const (
	smtpGmailHost = "smtp.gmail.com"
	smtpGmailPort = 587
)

// EmailSender gửi báo cáo doanh thu cho chủ quán.
type EmailSender interface {
	SendDailyRevenueReport(ctx context.Context, to string, day time.Time, rows []db.DailyRevenueRow) error
}

type GmailSender struct {
	client   *mail.Client
	config   util.Config
	username string
}

func NewGmailSender(username, password string, config util.Config) (*GmailSender, error) {
	client, err := mail.NewClient(smtpGmailHost, mail.WithPort(smtpGmailPort), mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username), mail.WithPassword(password))
	if err != nil {
		return nil, err
	}
	if err = client.DialWithContext(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	return &GmailSender{
		client:   client,
		config:   config,
		username: username,
	}, nil
}

func (sender *GmailSender) SendDailyRevenueReport(_ context.Context, to string, day time.Time, rows []db.DailyRevenueRow) error {
	msg := mail.NewMsg()

	if err := msg.FromFormat(sender.config.ShopName, sender.username); err != nil {
		return fmt.Errorf("failed to set From address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set To address: %w", err)
	}

	msg.Subject(fmt.Sprintf("Báo cáo doanh thu ngày %s", day.Format("02/01/2006")))
	msg.SetBodyString(mail.TypeTextHTML, buildRevenueReportBody(sender.config.ShopName, rows))

	if err := sender.client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func buildRevenueReportBody(shopName string, rows []db.DailyRevenueRow) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h3>%s</h3>", shopName))

	if len(rows) == 0 {
		sb.WriteString("<p>Hôm nay chưa có đơn hàng nào.</p>")
		return sb.String()
	}

	var totalOrders, totalRevenue int64
	sb.WriteString("<table border=\"1\" cellpadding=\"6\"><tr><th>Ngày</th><th>Số đơn</th><th>Doanh thu</th></tr>")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td></tr>",
			row.Day.Format("02/01/2006"), humanize.Comma(row.OrderCount), util.FormatVND(row.Revenue)))
		totalOrders += row.OrderCount
		totalRevenue += row.Revenue
	}
	sb.WriteString("</table>")
	sb.WriteString(fmt.Sprintf("<p>Tổng cộng: <b>%d đơn</b>, doanh thu <b>%s</b>.</p>",
		totalOrders, util.FormatVND(totalRevenue)))

	return sb.String()
}
