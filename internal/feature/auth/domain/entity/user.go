// Package entity はauthフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Role はユーザーに付与される権限レベルです。
type Role string

const (
	// RoleAdmin はブログ記事の作成・編集・削除ができます。
	RoleAdmin Role = "admin"
	// RoleMember は閲覧とコメントができます。
	RoleMember Role = "member"
)

// User はシステムに登録されたユーザーを表します。
type User struct {
	// ID はユーザーの一意な識別子です。ストアが採番し、再利用されません。
	ID uint `gorm:"primaryKey"`

	// Name は記事やコメントの横に表示される名前です。
	Name string `gorm:"size:250;not null"`

	// Email は認証に使用するメールアドレスです。
	// 全ユーザーで一意である必要があります。
	Email string `gorm:"uniqueIndex;size:250;not null"`

	// Password はハッシュ化されたパスワードです。
	// 平文のパスワードを保存してはいけません。
	Password string `gorm:"size:255;not null"`

	// Role は登録時に一度だけ決まり、最初に登録したユーザーが管理者になります。
	Role Role `gorm:"size:16;not null;default:member"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName はGORM用のテーブル名を返します。
func (User) TableName() string {
	return "users"
}

// IsAdmin はユーザーが管理者ロールを持つかを返します。nilレシーバーでも安全です。
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
