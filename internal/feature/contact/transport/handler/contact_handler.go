// Package handler は contact フィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"blog_backend/internal/feature/contact/domain/entity"
	"blog_backend/internal/feature/contact/transport/http/dto"
	"blog_backend/internal/feature/contact/usecase"
	"blog_backend/internal/platform/http/validation"
	"blog_backend/internal/platform/http/view"
)

const (
	statusSent    = "sent"
	statusPending = "pending"
	statusFailed  = "failed"
)

// ContactUsecase は問い合わせ送信のユースケースを定義します。
type ContactUsecase interface {
	Submit(ctx context.Context, msg entity.Message) error
}

// ContactHandler は問い合わせフォームのHTTPリクエストを処理します。
type ContactHandler struct {
	contact ContactUsecase
}

// NewContactHandler はContactHandlerの新しいインスタンスを生成します。
func NewContactHandler(contact ContactUsecase) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Show は問い合わせフォームを表示します。
func (h *ContactHandler) Show(c *gin.Context) {
	view.Render(c, http.StatusOK, "contact.html", gin.H{"Title": "Contact", "Form": dto.ContactForm{}, "Status": ""})
}

// Submit は問い合わせフォームの送信を処理します。
// - バリデーションエラー時は400でフォームを再表示
// - 送信完了・送信中・送信失敗のいずれでもリクエストは正常に完了し、結果をページに表示
// - 送信失敗は致命的ではなく、警告として表示
func (h *ContactHandler) Submit(c *gin.Context) {
	var form dto.ContactForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		slog.Warn("contact validation failed", "error", err, "remote_addr", c.ClientIP())
		view.Render(c, http.StatusBadRequest, "contact.html", gin.H{
			"Title": "Contact",
			"Form":   form,
			"Status": "",
			"Error":  validation.Message(err),
		})
		return
	}

	err := h.contact.Submit(c.Request.Context(), entity.Message{
		Name:  form.Name,
		Email: form.Email,
		Phone: form.Phone,
		Body:  form.Message,
	})

	var status string
	switch {
	case err == nil:
		status = statusSent
	case errors.Is(err, usecase.ErrDeliveryPending):
		status = statusPending
	case errors.Is(err, usecase.ErrDeliveryFailed):
		slog.Warn("contact message not forwarded", "error", err, "remote_addr", c.ClientIP())
		status = statusFailed
	default:
		slog.Error("contact submit failed", "error", err, "remote_addr", c.ClientIP())
		view.Error(c, http.StatusInternalServerError)
		return
	}

	view.Render(c, http.StatusOK, "contact.html", gin.H{"Title": "Contact", "Form": dto.ContactForm{}, "Status": status})
}
