// Package entity はcontactフィーチャーのドメインエンティティを定義します。
package entity

// Message はお問い合わせフォームから送られた問い合わせです。
type Message struct {
	Name  string
	Email string
	// Phone は任意です。
	Phone string
	Body  string
}
