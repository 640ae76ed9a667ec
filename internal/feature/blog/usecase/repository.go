package usecase

import (
	"context"

	"blog_backend/internal/feature/blog/domain/entity"
)

// PostRepository は記事の永続化層を抽象化します。
type PostRepository interface {
	// List はすべての記事を登録順に、投稿者を読み込んだ状態で返します。
	List(ctx context.Context) ([]*entity.Post, error)

	// FindByID は投稿者を読み込んだ状態で記事を返します。
	// 存在しない場合はErrPostNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Post, error)

	// Create は新しい記事を永続化します。タイトルが使用済みの場合はErrDuplicateTitleを返します。
	Create(ctx context.Context, post *entity.Post) error

	// Update は既存記事のタイトル・サブタイトル・画像URL・本文を上書きします。
	// 投稿者と日付は変更しません。
	Update(ctx context.Context, post *entity.Post) error

	// Delete は記事をコメントごと削除します。
	Delete(ctx context.Context, id uint) error
}

// CommentRepository はコメントの永続化層を抽象化します。
type CommentRepository interface {
	// Create は既存の記事にコメントを追加します。
	// 記事が存在しない場合はErrPostNotFoundを返します。
	Create(ctx context.Context, comment *entity.Comment) error

	// ListByPost は記事のコメントを古い順に返します。
	ListByPost(ctx context.Context, postID uint) ([]*entity.Comment, error)
}

// Sanitizer はユーザー入力のHTMLを無害化します。
type Sanitizer interface {
	Sanitize(s string) string
}
