package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog_backend/internal/feature/contact/domain/entity"
	"blog_backend/internal/platform/metrics"
)

// fakeSender は送信内容を記録し、releaseが設定されていれば閉じられるまでブロックします。
type fakeSender struct {
	mu      sync.Mutex
	sent    []entity.Message
	err     error
	release chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, msg entity.Message) error {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

var testMessage = entity.Message{Name: " Alice ", Email: " Alice@Example.com ", Phone: "", Body: " Hi \n"}

func TestContactUsecase_Submit(t *testing.T) {
	tests := []struct {
		name    string
		sender  *fakeSender
		wait    time.Duration
		wantErr error
	}{
		{name: "success", sender: &fakeSender{}, wait: time.Second},
		{name: "sender error", sender: &fakeSender{err: errors.New("535 auth failed")}, wait: time.Second, wantErr: ErrDeliveryFailed},
		{name: "slow sender", sender: &fakeSender{release: make(chan struct{})}, wait: 20 * time.Millisecond, wantErr: ErrDeliveryPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(tt.sender, 5*time.Second)
			uc := NewContactUsecase(d, tt.wait)

			err := uc.Submit(context.Background(), testMessage)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			if tt.sender.release != nil {
				close(tt.sender.release)
			}
			d.Close()
			require.Equal(t, 1, tt.sender.count(), "the message is delivered even when the caller stopped waiting")
		})
	}
}

func TestContactUsecase_Submit_Normalizes(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, time.Second)
	uc := NewContactUsecase(d, time.Second)

	require.NoError(t, uc.Submit(context.Background(), testMessage))
	d.Close()

	require.Len(t, sender.sent, 1)
	assert.Equal(t, entity.Message{Name: "Alice", Email: "alice@example.com", Body: "Hi"}, sender.sent[0])
}

// TestContactUsecase_Submit_RecordsOutcome は待機打ち切り後に届いたメールも最終結果として1回だけ数えることを検証します。
func TestContactUsecase_Submit_RecordsOutcome(t *testing.T) {
	sent := testutil.ToFloat64(metrics.ContactDeliveries.WithLabelValues("sent"))
	failed := testutil.ToFloat64(metrics.ContactDeliveries.WithLabelValues("failed"))
	expired := testutil.ToFloat64(metrics.ContactWaitExpired)

	ok := NewDispatcher(&fakeSender{}, time.Second)
	require.NoError(t, NewContactUsecase(ok, time.Second).Submit(context.Background(), testMessage))
	ok.Close()

	slow := &fakeSender{release: make(chan struct{})}
	d := NewDispatcher(slow, time.Second)
	assert.ErrorIs(t, NewContactUsecase(d, time.Millisecond).Submit(context.Background(), testMessage), ErrDeliveryPending)
	assert.Equal(t, expired+1, testutil.ToFloat64(metrics.ContactWaitExpired))
	assert.Equal(t, sent+1, testutil.ToFloat64(metrics.ContactDeliveries.WithLabelValues("sent")), "not final yet")
	close(slow.release)
	d.Close()

	// 2通とも最終結果はsentで、それぞれ1回ずつ
	assert.Equal(t, sent+2, testutil.ToFloat64(metrics.ContactDeliveries.WithLabelValues("sent")))
	assert.Equal(t, failed, testutil.ToFloat64(metrics.ContactDeliveries.WithLabelValues("failed")))
	assert.Equal(t, expired+1, testutil.ToFloat64(metrics.ContactWaitExpired))
}

func TestDispatcher_CloseWaitsAndRejects(t *testing.T) {
	sender := &fakeSender{release: make(chan struct{})}
	d := NewDispatcher(sender, 5*time.Second)

	delivery := d.Dispatch(entity.Message{Name: "A"})

	closed := make(chan struct{})
	go func() {
		d.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a send was in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(sender.release)
	<-closed
	assert.NoError(t, delivery.Wait(context.Background()))

	late := d.Dispatch(entity.Message{Name: "B"})
	err := late.Wait(context.Background())
	assert.ErrorIs(t, err, ErrDispatcherClosed)
	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.Equal(t, 1, sender.count())
}

func TestDispatcher_SendTimeout(t *testing.T) {
	sender := &fakeSender{release: make(chan struct{})}
	d := NewDispatcher(sender, 10*time.Millisecond)

	err := d.Dispatch(entity.Message{}).Wait(context.Background())

	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	d.Close()
}
