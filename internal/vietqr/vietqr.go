package vietqr

import (
	"fmt"
	"net/url"

	"github.com/zpmep/hmacutil"
)

const quickLinkBaseURL = "https://img.vietqr.io/image"

// Service dựng link ảnh QR chuyển khoản VietQR cho một đơn hàng và xác thực
// webhook báo có tiền vào từ dịch vụ đối soát ngân hàng.
type Service struct {
	bankID      string
	accountNo   string
	accountName string
	webhookKey  string
}

func NewService(bankID, accountNo, accountName, webhookKey string) *Service {
	return &Service{
		bankID:      bankID,
		accountNo:   accountNo,
		accountName: accountName,
		webhookKey:  webhookKey,
	}
}

// Configured reports whether bank account details are present.
func (s *Service) Configured() bool {
	return s.bankID != "" && s.accountNo != ""
}

// QuickLinkURL trả về URL ảnh QR compact của VietQR, khách quét bằng app
// ngân hàng bất kỳ. Nội dung chuyển khoản là mã đơn hàng để webhook đối soát
// tìm lại được đơn.
func (s *Service) QuickLinkURL(amount int64, orderCode string) string {
	params := url.Values{}
	params.Set("amount", fmt.Sprintf("%d", amount))
	params.Set("addInfo", orderCode)
	if s.accountName != "" {
		params.Set("accountName", s.accountName)
	}

	return fmt.Sprintf("%s/%s-%s-compact.png?%s", quickLinkBaseURL, s.bankID, s.accountNo, params.Encode())
}

// VerifyWebhookSignature kiểm tra chữ ký HMAC-SHA256 của payload webhook.
// Chữ ký sai nghĩa là request không đến từ dịch vụ đối soát, bỏ qua.
func (s *Service) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookKey == "" {
		return false
	}

	mac := hmacutil.HexStringEncode(hmacutil.SHA256, s.webhookKey, string(body))
	return mac == signature
}
