package adapters

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/auth/usecase"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to initialize test database")

	// :memory: は接続ごとに別のデータベースになる
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(&entity.User{}, &SessionModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestNewUserGorm(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserGorm(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("first user becomes admin, later users are members", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)
		ctx := context.Background()

		first := &entity.User{Name: "Alice", Email: "a@x.com", Password: "hash", Role: entity.RoleMember}
		require.NoError(t, repo.Create(ctx, first))
		assert.NotZero(t, first.ID, "ID is not set")
		assert.False(t, first.CreatedAt.IsZero(), "CreatedAt is not set")
		assert.Equal(t, entity.RoleAdmin, first.Role)

		second := &entity.User{Name: "Bob", Email: "b@x.com", Password: "hash", Role: entity.RoleMember}
		require.NoError(t, repo.Create(ctx, second))
		assert.Equal(t, entity.RoleMember, second.Role)
		assert.Greater(t, second.ID, first.ID)

		stored, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsAdmin())
	})

	t.Run("empty role defaults to member", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, &entity.User{Name: "A", Email: "a@x.com", Password: "h"}))
		u := &entity.User{Name: "B", Email: "b@x.com", Password: "h"}
		require.NoError(t, repo.Create(ctx, u))
		assert.Equal(t, entity.RoleMember, u.Role)
	})

	t.Run("duplicate email error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		user1 := &entity.User{Name: "One", Email: "duplicate@example.com", Password: "password1"}
		require.NoError(t, repo.Create(context.Background(), user1), "failed to create first user")

		user2 := &entity.User{Name: "Two", Email: "duplicate@example.com", Password: "password2"}
		err := repo.Create(context.Background(), user2)

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)

		var count int64
		require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("nil user error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		err := repo.Create(context.Background(), nil)

		assert.Error(t, err)
	})

	t.Run("concurrent first registrations promote exactly one admin", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		var wg sync.WaitGroup
		for _, email := range []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"} {
			wg.Add(1)
			go func(email string) {
				defer wg.Done()
				assert.NoError(t, repo.Create(context.Background(), &entity.User{Name: email, Email: email, Password: "h"}))
			}(email)
		}
		wg.Wait()

		var admins int64
		require.NoError(t, db.Model(&entity.User{}).Where("role = ?", entity.RoleAdmin).Count(&admins).Error)
		assert.Equal(t, int64(1), admins)
	})

	t.Run("table lock is skipped on sqlite", func(t *testing.T) {
		db := setupTestDB(t)

		err := db.Transaction(func(tx *gorm.DB) error { return lockUsers(tx) })

		assert.NoError(t, err)
	})
}

func TestUserGorm_Find(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	user := &entity.User{Name: "Alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	tests := []struct {
		name    string
		find    func() (*entity.User, error)
		wantErr error
	}{
		{
			name: "by email",
			find: func() (*entity.User, error) { return repo.FindByEmail(ctx, "alice@example.com") },
		},
		{
			name: "by id",
			find: func() (*entity.User, error) { return repo.FindByID(ctx, user.ID) },
		},
		{
			name:    "missing email",
			find:    func() (*entity.User, error) { return repo.FindByEmail(ctx, "nobody@example.com") },
			wantErr: usecase.ErrUserNotFound,
		},
		{
			name:    "missing id",
			find:    func() (*entity.User, error) { return repo.FindByID(ctx, 9999) },
			wantErr: usecase.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.find()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
			assert.Equal(t, "Alice", got.Name)
		})
	}
}
