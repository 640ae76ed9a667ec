package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/auth/usecase"
)

// sessionGorm はRedisが未設定の場合に使用するRDB版のSessionRepositoryです。
type sessionGorm struct {
	db *gorm.DB
}

// sessionGormがSessionRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SessionRepository = (*sessionGorm)(nil)

// NewSessionGorm はsessionGormの新しいインスタンスを生成します。
func NewSessionGorm(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db}
}

// Create は新しいセッションを永続化します。
func (r *sessionGorm) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(SessionModelFromEntity(session)).Error
}

// FindByID はトークンでセッションを取得します。
func (r *sessionGorm) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var model SessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// Delete はセッションを削除します。削除対象がない場合はusecase.ErrSessionNotFoundを返します。
func (r *sessionGorm) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&SessionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}
