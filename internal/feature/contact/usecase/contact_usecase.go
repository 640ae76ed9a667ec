// Package usecase はお問い合わせの通知フローを実装します。
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"blog_backend/internal/feature/contact/domain/entity"
	"blog_backend/internal/platform/metrics"
)

// Deliverer はバックグラウンドでの送信を開始します。
type Deliverer interface {
	Dispatch(msg entity.Message) *Delivery
}

type contactUsecase struct {
	deliverer Deliverer
	wait      time.Duration
}

// NewContactUsecase はcontactUsecaseの新しいインスタンスを生成します。
// waitはSubmitが送信結果を待つ最大時間です。
func NewContactUsecase(deliverer Deliverer, wait time.Duration) *contactUsecase {
	return &contactUsecase{deliverer: deliverer, wait: wait}
}

// Submit はmsgをdelivererに渡し、設定された時間まで結果を待ちます。
// 結果はnil、ErrDeliveryPending、またはErrDeliveryFailedをラップしたエラーのいずれかです。
func (u *contactUsecase) Submit(ctx context.Context, msg entity.Message) error {
	msg = entity.Message{
		Name:  strings.TrimSpace(msg.Name),
		Email: strings.ToLower(strings.TrimSpace(msg.Email)),
		Phone: strings.TrimSpace(msg.Phone),
		Body:  strings.TrimSpace(msg.Body),
	}

	delivery := u.deliverer.Dispatch(msg)

	waitCtx, cancel := context.WithTimeout(ctx, u.wait)
	defer cancel()

	err := delivery.Wait(waitCtx)
	if errors.Is(err, ErrDeliveryPending) {
		metrics.ContactWaitExpired.Inc()
	}
	return err
}
