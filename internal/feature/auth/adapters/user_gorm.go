// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/auth/usecase"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm はuserGormの新しいインスタンスを生成します。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create はユーザーを登録します。テーブルが空の場合、そのユーザーが管理者になります。
// 件数確認と挿入は同一トランザクションで行います。PostgresではREAD COMMITTEDのため
// 最初の登録が同時に2件あると両方が0件と数えてしまうので、テーブルもロックします。
// SQLiteは書き込みが直列化されるためロック不要です。
// メールアドレスが使用済みの場合はusecase.ErrEmailAlreadyExistsを返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUsers(tx); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&entity.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			u.Role = entity.RoleAdmin
		} else if u.Role == "" {
			u.Role = entity.RoleMember
		}
		return tx.Create(u).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return usecase.ErrEmailAlreadyExists
	}
	return err
}

// lockUsers はtxの終了まで自己競合するテーブルロックを取得します。通常の読み取りはブロックしません。
// LOCK TABLEを持たない方言では何もしません。
func lockUsers(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	table := clause.Table{Name: entity.User{}.TableName()}
	if err := tx.Exec("LOCK TABLE ? IN SHARE ROW EXCLUSIVE MODE", table).Error; err != nil {
		return fmt.Errorf("failed to lock users table: %w", err)
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// 該当がない場合はusecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
// 該当がない場合はusecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
