// Package adapters はblogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blog_backend/internal/feature/blog/domain/entity"
	"blog_backend/internal/feature/blog/usecase"
)

// postGorm はPostRepositoryインターフェースのGORM実装です。
type postGorm struct {
	db *gorm.DB
}

// postGormがPostRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PostRepository = (*postGorm)(nil)

// NewPostGorm はpostGormの新しいインスタンスを生成します。
func NewPostGorm(db *gorm.DB) *postGorm {
	return &postGorm{db: db}
}

// List はすべての記事を登録順で返します。
func (r *postGorm) List(ctx context.Context) ([]*entity.Post, error) {
	var posts []*entity.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByID は投稿者付きで記事を返します。
func (r *postGorm) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var post entity.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create は関連を保存せずに記事を登録します。
func (r *postGorm) Create(ctx context.Context, post *entity.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(post).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return usecase.ErrDuplicateTitle
	}
	return err
}

// Update は既存記事の編集可能なカラムを書き換えます。
func (r *postGorm) Update(ctx context.Context, post *entity.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entity.Post
		if err := tx.Select("id").First(&current, post.ID).Error; err != nil {
			return err
		}
		return tx.Model(&current).Omit(clause.Associations).Updates(map[string]any{
			"title":    post.Title,
			"subtitle": post.Subtitle,
			"img_url":  post.ImgURL,
			"body":     post.Body,
		}).Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return usecase.ErrPostNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return usecase.ErrDuplicateTitle
	}
	return err
}

// Delete は記事とそのコメントを1つのトランザクションで削除します。
func (r *postGorm) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entity.Post
		if err := tx.Select("id").First(&current, id).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Post{}, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usecase.ErrPostNotFound
	}
	return err
}
