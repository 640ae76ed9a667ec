package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"blog_backend/internal/feature/contact/domain/entity"
	"blog_backend/internal/platform/metrics"
)

// Sender は1通のメッセージを送信します。実装はctxのキャンセルに従います。
type Sender interface {
	Send(ctx context.Context, msg entity.Message) error
}

// Delivery はバックグラウンド送信1件のハンドルです。
type Delivery struct {
	done chan struct{}
	err  error
}

// Wait は送信が終わるかctxが終了するまでブロックします。
// 成功時はnil、失敗時はErrDeliveryFailedをラップしたエラー、
// ctxが先に終了した場合はErrDeliveryPendingを返します。
func (d *Delivery) Wait(ctx context.Context) error {
	select {
	case <-d.done:
		return d.err
	case <-ctx.Done():
		return ErrDeliveryPending
	}
}

func (d *Delivery) finish(err error) {
	d.err = err
	close(d.done)
}

// Dispatcher は送信ごとにgoroutineを起動し、遅いメールサーバーが
// 元のリクエストを待たせないようにします。
type Dispatcher struct {
	sender      Sender
	sendTimeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher はDispatcherを生成します。各送信の上限時間はsendTimeoutです。
func NewDispatcher(sender Sender, sendTimeout time.Duration) *Dispatcher {
	return &Dispatcher{sender: sender, sendTimeout: sendTimeout}
}

// Dispatch はmsgの送信を開始し、すぐに戻ります。
func (d *Dispatcher) Dispatch(msg entity.Message) *Delivery {
	delivery := &Delivery{done: make(chan struct{})}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		delivery.finish(fmt.Errorf("%w: %w", ErrDeliveryFailed, ErrDispatcherClosed))
		return delivery
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()

		// リクエストは既に終わっている可能性があるため、送信には独自の期限を設ける
		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		defer cancel()

		if err := d.sender.Send(ctx, msg); err != nil {
			slog.Error("contact delivery failed", "error", err, "from", msg.Email)
			metrics.ContactDeliveries.WithLabelValues("failed").Inc()
			delivery.finish(fmt.Errorf("%w: %w", ErrDeliveryFailed, err))
			return
		}
		slog.Info("contact delivery sent", "from", msg.Email)
		metrics.ContactDeliveries.WithLabelValues("sent").Inc()
		delivery.finish(nil)
	}()
	return delivery
}

// Close は新規の受け付けを止め、送信中のメッセージを待ちます。
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
}
