package alert

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	db "github.com/ngochandev/taphoa-BE/internal/db/sqlc"
	"github.com/ngochandev/taphoa-BE/internal/util"
)

// Sender bắn cảnh báo vận hành cho chủ quán.
type Sender interface {
	SendLowStockAlert(products []db.Product) error
}

// DiscordSender gửi cảnh báo qua kênh Discord của quán.
// TODO: Thay thế bằng Zalo OA khi quán có tài khoản doanh nghiệp.
type DiscordSender struct {
	discord   *discordgo.Session
	channelID string
	shopName  string
}

func NewDiscordSender(config util.Config) (*DiscordSender, error) {
	discord, err := discordgo.New("Bot " + config.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return &DiscordSender{
		discord:   discord,
		channelID: config.DiscordChannelID,
		shopName:  config.ShopName,
	}, nil
}

func (s *DiscordSender) SendLowStockAlert(products []db.Product) error {
	if len(products) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚠️ %s: %d mặt hàng sắp hết\n", s.shopName, len(products)))
	for _, p := range products {
		sb.WriteString(fmt.Sprintf("- %s: còn %d %s (ngưỡng %d), giá bán %s\n",
			p.Name, p.Stock, p.Unit, p.MinStock, util.FormatVND(p.Price)))
	}

	_, err := s.discord.ChannelMessageSend(s.channelID, sb.String())
	return err
}
