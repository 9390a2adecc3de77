package util

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	AllowedOrigins      []string      `mapstructure:"ALLOWED_ORIGINS"`
	DatabaseURL         string        `mapstructure:"DATABASE_URL"`
	HTTPServerAddress   string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	TokenSecretKey      string        `mapstructure:"TOKEN_SECRET_KEY"`
	AccessTokenDuration time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	GoogleClientID      string        `mapstructure:"GOOGLE_CLIENT_ID"`
	CloudinaryURL       string        `mapstructure:"CLOUDINARY_URL"`
	RedisServerAddress  string        `mapstructure:"REDIS_SERVER_ADDRESS"`

	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Prefixes dùng khi sinh mã vạch EAN-13 dự phòng.
	BarcodePrefixes []string `mapstructure:"BARCODE_PREFIXES"`

	// Thông tin tài khoản ngân hàng cho mã QR chuyển khoản (VietQR).
	BankID            string `mapstructure:"BANK_ID"`
	BankAccountNo     string `mapstructure:"BANK_ACCOUNT_NO"`
	BankAccountName   string `mapstructure:"BANK_ACCOUNT_NAME"`
	PaymentWebhookKey string `mapstructure:"PAYMENT_WEBHOOK_KEY"`

	GmailSMTPUsername string `mapstructure:"GMAIL_SMTP_USERNAME"`
	GmailSMTPPassword string `mapstructure:"GMAIL_SMTP_PASSWORD"`
	OwnerEmail        string `mapstructure:"OWNER_EMAIL"`
	ShopName          string `mapstructure:"SHOP_NAME"`

	DiscordBotToken  string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordChannelID string `mapstructure:"DISCORD_CHANNEL_ID"`

	// Web Speech API chỉ chạy trên HTTPS nên hỗ trợ expose server qua ngrok
	// khi chạy thử trên điện thoại trong mạng nội bộ.
	NgrokEnabled bool   `mapstructure:"NGROK_ENABLED"`
	NgrokDomain  string `mapstructure:"NGROK_DOMAIN"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	// Set defaults for non-sensitive config
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("ACCESS_TOKEN_DURATION", "24h")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("BARCODE_PREFIXES", []string{"893", "890", "894", "888"})
	viper.SetDefault("SHOP_NAME", "Tạp Hóa")

	// Prefer environment variables over config file
	viper.AutomaticEnv()

	// Load config file
	viper.SetConfigFile(path)
	if err = viper.ReadInConfig(); err != nil {
		return
	}

	// Unmarshal config into struct
	err = viper.UnmarshalExact(&config)
	if err != nil {
		return
	}

	// Validate required configuration
	err = validateConfig(config)
	return
}

func validateConfig(config Config) error {
	if config.TokenSecretKey == "" {
		return fmt.Errorf("TOKEN_SECRET_KEY is required")
	}
	for _, prefix := range config.BarcodePrefixes {
		if len(prefix) != 3 {
			return fmt.Errorf("BARCODE_PREFIXES entries must be 3 digits, got %q", prefix)
		}
	}
	// DATABASE_URL được phép bỏ trống: server sẽ chạy với kho dữ liệu trong
	// bộ nhớ và danh mục hàng mẫu, giống chế độ demo của bản client cũ.

	return nil
}
