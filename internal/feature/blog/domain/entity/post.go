// Package entity はblogフィーチャーのドメインエンティティを定義します。
package entity

import (
	"time"

	authentity "blog_backend/internal/feature/auth/domain/entity"
)

// DateLayout は記事の公開日の表示・保存形式です。
const DateLayout = "January 02, 2006"

// Post は管理者が書くブログ記事です。
type Post struct {
	ID       uint   `gorm:"primaryKey"`
	Title    string `gorm:"uniqueIndex;size:250;not null"`
	Subtitle string `gorm:"size:250;not null"`
	// Date は作成時に決まる表示用の日付です（例: "March 04, 2024"）。
	Date string `gorm:"size:250;not null"`
	// Body はサニタイズ済みのHTMLです。
	Body   string `gorm:"type:text;not null"`
	ImgURL string `gorm:"column:img_url;size:250;not null"`

	AuthorID uint            `gorm:"index;not null"`
	Author   authentity.User `gorm:"foreignKey:AuthorID"`
	Comments []Comment       `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName はGORM用のテーブル名を返します。
func (Post) TableName() string {
	return "blog_posts"
}
