package entity

import "time"

// Session は明示的にログアウトするまで、不透明なトークンをユーザーに結び付けます。
// 有効期限はなく、ログアウトするまで無期限に有効です。
type Session struct {
	ID        string    // ランダムなトークン値（64文字の16進数）
	UserID    uint      // 紐づくユーザーID
	UserAgent string    // クライアントのUser-Agentヘッダー
	IPAddress string    // クライアントのIPアドレス
	CreatedAt time.Time // セッション作成日時
}
