package di

import (
	"log/slog"

	contactadapters "blog_backend/internal/feature/contact/adapters"
	contactusecase "blog_backend/internal/feature/contact/usecase"
	"blog_backend/internal/platform/config"
)

// NewContactSender はお問い合わせ用のSMTP送信者を生成します。
func NewContactSender(cfg config.Mail) contactusecase.Sender {
	if cfg.SenderEmail == "" {
		slog.Warn("SENDER_EMAIL is not set; contact messages will not be forwarded")
	}
	return contactadapters.NewSMTPSender(cfg)
}
