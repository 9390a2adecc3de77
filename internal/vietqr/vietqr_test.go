package vietqr

import (
	"strings"
	"testing"

	"github.com/zpmep/hmacutil"
)

func TestQuickLinkURL(t *testing.T) {
	service := NewService("970436", "0123456789", "NGUYEN VAN A", "")

	url := service.QuickLinkURL(145000, "DH-ABCDEFGHJK")
	if !strings.HasPrefix(url, "https://img.vietqr.io/image/970436-0123456789-compact.png?") {
		t.Fatalf("unexpected url prefix: %s", url)
	}
	if !strings.Contains(url, "amount=145000") {
		t.Fatalf("url missing amount: %s", url)
	}
	if !strings.Contains(url, "addInfo=DH-ABCDEFGHJK") {
		t.Fatalf("url missing order code: %s", url)
	}
	if !strings.Contains(url, "accountName=NGUYEN+VAN+A") {
		t.Fatalf("url missing account name: %s", url)
	}
}

func TestConfigured(t *testing.T) {
	if NewService("", "", "", "").Configured() {
		t.Fatalf("empty service should not be configured")
	}
	if !NewService("970436", "0123456789", "", "").Configured() {
		t.Fatalf("service with bank account should be configured")
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	service := NewService("970436", "0123456789", "", "secret-key")
	body := []byte(`{"content":"DH-ABCDEFGHJK","transferAmount":145000}`)

	signature := hmacutil.HexStringEncode(hmacutil.SHA256, "secret-key", string(body))
	if !service.VerifyWebhookSignature(body, signature) {
		t.Fatalf("expected valid signature to verify")
	}

	if service.VerifyWebhookSignature(body, "deadbeef") {
		t.Fatalf("expected invalid signature to be rejected")
	}

	// Chưa cấu hình key thì từ chối tất cả.
	unconfigured := NewService("970436", "0123456789", "", "")
	if unconfigured.VerifyWebhookSignature(body, signature) {
		t.Fatalf("expected rejection when webhook key is not set")
	}
}
