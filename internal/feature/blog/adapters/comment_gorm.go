package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blog_backend/internal/feature/blog/domain/entity"
	"blog_backend/internal/feature/blog/usecase"
)

// commentGorm はCommentRepositoryインターフェースのGORM実装です。
type commentGorm struct {
	db *gorm.DB
}

// commentGormがCommentRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.CommentRepository = (*commentGorm)(nil)

// NewCommentGorm はcommentGormの新しいインスタンスを生成します。
func NewCommentGorm(db *gorm.DB) *commentGorm {
	return &commentGorm{db: db}
}

// Create は記事の存在を確認してからコメントを登録します。
func (r *commentGorm) Create(ctx context.Context, comment *entity.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post entity.Post
		if err := tx.Select("id").First(&post, comment.PostID).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(comment).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usecase.ErrPostNotFound
	}
	return err
}

// ListByPost は記事のコメントを投稿者付きで古い順に返します。
func (r *commentGorm) ListByPost(ctx context.Context, postID uint) ([]*entity.Comment, error) {
	var comments []*entity.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
