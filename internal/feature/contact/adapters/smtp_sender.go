// Package adapters はお問い合わせメッセージをサイト管理者に送信します。
package adapters

import (
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"blog_backend/internal/feature/contact/domain/entity"
	"blog_backend/internal/platform/config"
)

const (
	subject        = "New Inquiry"
	defaultTimeout = 10 * time.Second
)

// ErrNotConfigured は送信元アカウントが設定されていない場合に返されます。
var ErrNotConfigured = errors.New("mail sender is not configured")

// SMTPSender は設定されたアカウントから同じアカウント宛てにお問い合わせを送信します。
type SMTPSender struct {
	cfg  config.Mail
	auth smtp.Auth
	now  func() time.Time
}

// NewSMTPSender はcfgに基づく送信者を生成します。
func NewSMTPSender(cfg config.Mail) *SMTPSender {
	return &SMTPSender{
		cfg:  cfg,
		auth: smtp.PlainAuth("", cfg.SenderEmail, cfg.SenderPassword, cfg.SMTPHost),
		now:  time.Now,
	}
}

// Send はmsgを送信します。465番ポートは暗黙的TLS、それ以外はSTARTTLSを使用します。
func (s *SMTPSender) Send(ctx context.Context, msg entity.Message) error {
	if s.cfg.SenderEmail == "" || s.cfg.SMTPHost == "" {
		return ErrNotConfigured
	}

	body, err := s.buildMessage(msg)
	if err != nil {
		return err
	}
	address := net.JoinHostPort(s.cfg.SMTPHost, fmt.Sprint(s.cfg.SMTPPort))

	conn, err := s.dial(ctx, address)
	if err != nil {
		slog.Error("failed to connect to SMTP server", "address", address, "error", err)
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		slog.Error("failed to create SMTP client", "error", err)
		return err
	}
	defer client.Close()

	if s.cfg.SMTPPort != 465 {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.SMTPHost}); err != nil {
			slog.Error("failed to start TLS", "error", err)
			return err
		}
	}
	return s.sendViaClient(client, body)
}

func (s *SMTPSender) dial(ctx context.Context, address string) (net.Conn, error) {
	timeout := s.cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	dialer := &net.Dialer{Timeout: timeout}
	if s.cfg.SMTPPort == 465 {
		td := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: s.cfg.SMTPHost}}
		return td.DialContext(ctx, "tcp", address)
	}
	return dialer.DialContext(ctx, "tcp", address)
}

// sendViaClient は認証・送信元と宛先の設定・本文の書き込みを行います。
func (s *SMTPSender) sendViaClient(client *smtp.Client, body []byte) error {
	if err := client.Auth(s.auth); err != nil {
		slog.Error("SMTP authentication failed", "error", err)
		return err
	}
	if err := client.Mail(s.cfg.SenderEmail); err != nil {
		slog.Error("failed to set sender", "error", err)
		return err
	}
	if err := client.Rcpt(s.cfg.SenderEmail); err != nil {
		slog.Error("failed to set recipient", "error", err)
		return err
	}

	w, err := client.Data()
	if err != nil {
		slog.Error("failed to get data writer", "error", err)
		return err
	}
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write message", "error", err)
		return err
	}
	if err := w.Close(); err != nil {
		slog.Error("failed to close data writer", "error", err)
		return err
	}
	return client.Quit()
}

func (s *SMTPSender) buildMessage(msg entity.Message) ([]byte, error) {
	id, err := messageID(s.cfg.SMTPHost)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\r\n", oneLine(msg.Name))
	fmt.Fprintf(&b, "Email: %s\r\n", oneLine(msg.Email))
	fmt.Fprintf(&b, "Phone No: %s\r\n", oneLine(msg.Phone))
	fmt.Fprintf(&b, "Message: %s\r\n", normalizeNewlines(msg.Body))

	return fmt.Appendf(nil,
		"Message-ID: %s\r\n"+
			"Date: %s\r\n"+
			"To: %s\r\n"+
			"From: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"utf-8\"\r\n"+
			"\r\n"+
			"%s",
		id, s.now().Format(time.RFC1123Z), s.cfg.SenderEmail, s.cfg.SenderEmail,
		oneLine(msg.Email), mime.QEncoding.Encode("utf-8", subject), b.String(),
	), nil
}

func messageID(domain string) (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate message id: %w", err)
	}
	return fmt.Sprintf("<%s@%s>", hex.EncodeToString(b), domain), nil
}

// oneLine はユーザー入力によるヘッダーインジェクションを防ぐため、CRとLFを取り除きます。
func oneLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
