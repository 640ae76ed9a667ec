package entity

import (
	"time"

	authentity "blog_backend/internal/feature/auth/domain/entity"
)

// MaxCommentLength はコメントの表示文字数の上限です。
const MaxCommentLength = 500

// Comment は記事に付けられた読者の返信です。
type Comment struct {
	ID uint `gorm:"primaryKey"`
	// Text はサニタイズ済みHTMLで、表示文字数はMaxCommentLength以下です。
	Text string `gorm:"type:text;not null"`

	AuthorID uint            `gorm:"index;not null"`
	Author   authentity.User `gorm:"foreignKey:AuthorID"`
	PostID   uint            `gorm:"index;not null"`

	CreatedAt time.Time
}

// TableName はGORM用のテーブル名を返します。
func (Comment) TableName() string {
	return "comments"
}
