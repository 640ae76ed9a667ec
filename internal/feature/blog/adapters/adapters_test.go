package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authentity "blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/blog/domain/entity"
	"blog_backend/internal/feature/blog/usecase"
)

// setupTestDB は外部キー制約を有効にしたインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&authentity.User{}, &entity.Post{}, &entity.Comment{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *authentity.User {
	t.Helper()
	u := &authentity.User{Name: name, Email: email, Password: "hash", Role: authentity.RoleMember}
	require.NoError(t, db.Create(u).Error)
	return u
}

func newPost(title string, authorID uint) *entity.Post {
	return &entity.Post{
		Title:    title,
		Subtitle: "sub " + title,
		Date:     "January 02, 2024",
		Body:     "<p>body</p>",
		ImgURL:   "https://example.com/" + title + ".png",
		AuthorID: authorID,
	}
}

func TestPostGorm_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostGorm(db)
	ctx := context.Background()
	author := seedUser(t, db, "Admin", "admin@example.com")

	post := newPost("hello", author.ID)
	require.NoError(t, repo.Create(ctx, post))
	assert.NotZero(t, post.ID)

	got, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Title)
	assert.Equal(t, "Admin", got.Author.Name)
	assert.Equal(t, "https://example.com/hello.png", got.ImgURL)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, usecase.ErrPostNotFound)
}

func TestPostGorm_Create_DuplicateTitle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostGorm(db)
	ctx := context.Background()
	author := seedUser(t, db, "Admin", "admin@example.com")

	require.NoError(t, repo.Create(ctx, newPost("same", author.ID)))
	err := repo.Create(ctx, newPost("same", author.ID))

	assert.ErrorIs(t, err, usecase.ErrDuplicateTitle)
}

// TestPostGorm_List_InsertionOrder は作成日時に関係なく登録順で返ることを検証します。
func TestPostGorm_List_InsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostGorm(db)
	ctx := context.Background()
	author := seedUser(t, db, "Admin", "admin@example.com")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		p := newPost(title, author.ID)
		// 後に登録した記事ほど古い日時にする
		p.CreatedAt = base.Add(-time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, p))
	}

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "first", posts[0].Title)
	assert.Equal(t, "second", posts[1].Title)
	assert.Equal(t, "third", posts[2].Title)
	assert.Equal(t, "Admin", posts[0].Author.Name)
}

func TestPostGorm_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostGorm(db)
	ctx := context.Background()
	author := seedUser(t, db, "Original Author", "a@example.com")

	post := newPost("T", author.ID)
	require.NoError(t, repo.Create(ctx, post))
	other := newPost("taken", author.ID)
	require.NoError(t, repo.Create(ctx, other))

	t.Run("rewrites content, keeps author and date", func(t *testing.T) {
		err := repo.Update(ctx, &entity.Post{ID: post.ID, Title: "T2", Subtitle: "new sub", ImgURL: "https://example.com/n.png", Body: "<p>new</p>"})
		require.NoError(t, err)

		got, err := repo.FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "T2", got.Title)
		assert.Equal(t, "new sub", got.Subtitle)
		assert.Equal(t, "<p>new</p>", got.Body)
		assert.Equal(t, author.ID, got.AuthorID)
		assert.Equal(t, "Original Author", got.Author.Name)
		assert.Equal(t, "January 02, 2024", got.Date)
	})

	t.Run("missing post", func(t *testing.T) {
		err := repo.Update(ctx, &entity.Post{ID: 9999, Title: "x", Subtitle: "x", ImgURL: "x", Body: "x"})
		assert.ErrorIs(t, err, usecase.ErrPostNotFound)
	})

	t.Run("title clash", func(t *testing.T) {
		err := repo.Update(ctx, &entity.Post{ID: post.ID, Title: "taken", Subtitle: "x", ImgURL: "x", Body: "x"})
		assert.ErrorIs(t, err, usecase.ErrDuplicateTitle)
	})
}

func TestPostGorm_Delete_CascadesComments(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostGorm(db)
	comments := NewCommentGorm(db)
	ctx := context.Background()
	author := seedUser(t, db, "Admin", "admin@example.com")

	doomed := newPost("doomed", author.ID)
	require.NoError(t, posts.Create(ctx, doomed))
	kept := newPost("kept", author.ID)
	require.NoError(t, posts.Create(ctx, kept))

	require.NoError(t, comments.Create(ctx, &entity.Comment{Text: "a", AuthorID: author.ID, PostID: doomed.ID}))
	require.NoError(t, comments.Create(ctx, &entity.Comment{Text: "b", AuthorID: author.ID, PostID: doomed.ID}))
	require.NoError(t, comments.Create(ctx, &entity.Comment{Text: "c", AuthorID: author.ID, PostID: kept.ID}))

	require.NoError(t, posts.Delete(ctx, doomed.ID))

	_, err := posts.FindByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, usecase.ErrPostNotFound)

	var orphans int64
	require.NoError(t, db.Model(&entity.Comment{}).Where("post_id = ?", doomed.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)

	left, err := comments.ListByPost(ctx, kept.ID)
	require.NoError(t, err)
	assert.Len(t, left, 1)

	assert.ErrorIs(t, posts.Delete(ctx, doomed.ID), usecase.ErrPostNotFound)
}

func TestCommentGorm(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostGorm(db)
	repo := NewCommentGorm(db)
	ctx := context.Background()
	admin := seedUser(t, db, "Admin", "admin@example.com")
	reader := seedUser(t, db, "Reader", "reader@example.com")

	post := newPost("p", admin.ID)
	require.NoError(t, posts.Create(ctx, post))

	t.Run("attaches to post and author in order", func(t *testing.T) {
		first := &entity.Comment{Text: "first", AuthorID: reader.ID, PostID: post.ID}
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, &entity.Comment{Text: "second", AuthorID: admin.ID, PostID: post.ID}))
		assert.NotZero(t, first.ID)

		got, err := repo.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "first", got[0].Text)
		assert.Equal(t, "Reader", got[0].Author.Name)
		assert.Equal(t, "reader@example.com", got[0].Author.Email)
		assert.Equal(t, "Admin", got[1].Author.Name)
	})

	t.Run("missing post", func(t *testing.T) {
		err := repo.Create(ctx, &entity.Comment{Text: "x", AuthorID: reader.ID, PostID: 9999})
		assert.ErrorIs(t, err, usecase.ErrPostNotFound)
	})

	t.Run("empty list", func(t *testing.T) {
		got, err := repo.ListByPost(ctx, 9999)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
