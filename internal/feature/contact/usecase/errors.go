package usecase

import "errors"

var (
	// ErrDeliveryPending は送信完了前に呼び出し側が待機をやめた場合に返されます。
	// メッセージは引き続き送信中です。
	ErrDeliveryPending = errors.New("delivery still in progress")

	// ErrDeliveryFailed は送信者がエラーを報告した場合に返されます。
	ErrDeliveryFailed = errors.New("delivery failed")

	// ErrDispatcherClosed はシャットダウン開始後に受け付けたメッセージに対して返されます。
	ErrDispatcherClosed = errors.New("dispatcher is closed")
)
