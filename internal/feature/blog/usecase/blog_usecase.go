// Package usecase はブログの記事とコメントの操作を実装します。
package usecase

import (
	"context"
	"strings"
	"time"

	"blog_backend/internal/feature/auth/domain"
	authentity "blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/blog/domain/entity"
	"blog_backend/internal/platform/sanitize"
)

// PostInput は記事の編集可能な内容です。
type PostInput struct {
	Title    string
	Subtitle string
	ImgURL   string
	Body     string
}

type blogUsecase struct {
	posts     PostRepository
	comments  CommentRepository
	sanitizer Sanitizer
	now       func() time.Time
}

// NewBlogUsecase はblogUsecaseの新しいインスタンスを生成します。
func NewBlogUsecase(posts PostRepository, comments CommentRepository, sanitizer Sanitizer) *blogUsecase {
	return &blogUsecase{
		posts:     posts,
		comments:  comments,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// ListPosts はすべての記事を登録順で返します。
func (u *blogUsecase) ListPosts(ctx context.Context) ([]*entity.Post, error) {
	return u.posts.List(ctx)
}

// GetPost は記事を1件、コメントを古い順に付けて返します。
func (u *blogUsecase) GetPost(ctx context.Context, id uint) (*entity.Post, error) {
	post, err := u.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := u.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Comments = make([]entity.Comment, len(comments))
	for i, c := range comments {
		post.Comments[i] = *c
	}
	return post, nil
}

// CreatePost はactorを投稿者とし、本日の日付で記事を公開します。
func (u *blogUsecase) CreatePost(ctx context.Context, actor *authentity.User, in PostInput) (*entity.Post, error) {
	if err := domain.CanManagePosts(actor); err != nil {
		return nil, err
	}
	in, err := u.clean(in)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		ImgURL:   in.ImgURL,
		Body:     in.Body,
		Date:     u.now().Format(entity.DateLayout),
		AuthorID: actor.ID,
	}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	post.Author = *actor
	return post, nil
}

// UpdatePost は記事idの内容を置き換えます。元の投稿者は維持されます。
func (u *blogUsecase) UpdatePost(ctx context.Context, actor *authentity.User, id uint, in PostInput) (*entity.Post, error) {
	if err := domain.CanManagePosts(actor); err != nil {
		return nil, err
	}
	in, err := u.clean(in)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		ID:       id,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		ImgURL:   in.ImgURL,
		Body:     in.Body,
	}
	if err := u.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost は記事idとそのコメントを削除します。
func (u *blogUsecase) DeletePost(ctx context.Context, actor *authentity.User, id uint) error {
	if err := domain.CanManagePosts(actor); err != nil {
		return err
	}
	return u.posts.Delete(ctx, id)
}

// AddComment はactorのコメントを記事postIDに追加します。
// 匿名の場合はdomain.ErrUnauthenticatedを返し、何も保存しません。
func (u *blogUsecase) AddComment(ctx context.Context, actor *authentity.User, postID uint, text string) (*entity.Comment, error) {
	if err := domain.RequireIdentity(actor); err != nil {
		return nil, err
	}

	clean := u.sanitizer.Sanitize(text)
	switch n := sanitize.TextLen(clean); {
	case n == 0:
		return nil, ErrEmptyComment
	case n > entity.MaxCommentLength:
		return nil, ErrCommentTooLong
	}

	comment := &entity.Comment{
		Text:     clean,
		AuthorID: actor.ID,
		PostID:   postID,
	}
	if err := u.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = *actor
	return comment, nil
}

// clean はプレーンなフィールドの空白を除去し、本文をサニタイズします。
func (u *blogUsecase) clean(in PostInput) (PostInput, error) {
	out := PostInput{
		Title:    strings.TrimSpace(in.Title),
		Subtitle: strings.TrimSpace(in.Subtitle),
		ImgURL:   strings.TrimSpace(in.ImgURL),
		Body:     u.sanitizer.Sanitize(in.Body),
	}
	if out.Title == "" || out.Subtitle == "" || out.ImgURL == "" || out.Body == "" {
		return PostInput{}, ErrInvalidPost
	}
	return out, nil
}
