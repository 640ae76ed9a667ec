// Package handler は blog フィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"blog_backend/internal/feature/auth/domain"
	authentity "blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/blog/domain/entity"
	"blog_backend/internal/feature/blog/transport/http/dto"
	"blog_backend/internal/feature/blog/usecase"
	"blog_backend/internal/platform/authz"
	"blog_backend/internal/platform/http/httpx"
	"blog_backend/internal/platform/http/validation"
	"blog_backend/internal/platform/http/view"
	"blog_backend/internal/platform/identity"
)

const (
	flashLoginToComment = "You need to login or register to comment."
	flashPostDeleted    = "Post deleted."

	msgInvalidPost    = "Title, subtitle, image URL and body are required."
	msgDuplicateTitle = "A post with this title already exists."
	msgEmptyComment   = "Comment is required."
	msgCommentTooLong = "Comment must be at most 500 characters."
)

// BlogUsecase は投稿とコメントのユースケースを定義します。
// Goの慣例に従い、インターフェースはコンシューマー（handler）側で定義します。
type BlogUsecase interface {
	ListPosts(ctx context.Context) ([]*entity.Post, error)
	GetPost(ctx context.Context, id uint) (*entity.Post, error)
	CreatePost(ctx context.Context, actor *authentity.User, in usecase.PostInput) (*entity.Post, error)
	UpdatePost(ctx context.Context, actor *authentity.User, id uint, in usecase.PostInput) (*entity.Post, error)
	DeletePost(ctx context.Context, actor *authentity.User, id uint) error
	AddComment(ctx context.Context, actor *authentity.User, postID uint, text string) (*entity.Comment, error)
}

// PostHandler は投稿一覧・詳細・作成・編集・削除のHTTPリクエストを処理します。
type PostHandler struct {
	blog BlogUsecase
}

// NewPostHandler はPostHandlerの新しいインスタンスを生成します。
func NewPostHandler(blog BlogUsecase) *PostHandler {
	return &PostHandler{blog: blog}
}

// List はトップページに全投稿を新しい順で表示します。
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.blog.ListPosts(c.Request.Context())
	if err != nil {
		slog.Error("failed to list posts", "error", err)
		view.Error(c, http.StatusInternalServerError)
		return
	}
	view.Render(c, http.StatusOK, "index.html", gin.H{"Posts": posts})
}

// Show は投稿とそのコメントを表示します。
// - idが不正、または投稿が存在しない場合は404
func (h *PostHandler) Show(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	view.Render(c, http.StatusOK, "post.html", gin.H{"Title": post.Title, "Post": post})
}

// Comment は投稿へのコメント送信を処理します。
// - 未ログインの場合はコメントを作成せず、フラッシュ付きで/loginへリダイレクト
// - 空・長すぎるコメントは400で投稿ページを再表示
// - 成功時は投稿ページへリダイレクト
func (h *PostHandler) Comment(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		view.Error(c, http.StatusNotFound)
		return
	}

	user := identity.FromContext(c)
	if user == nil {
		view.SetFlash(c, flashLoginToComment)
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var form dto.CommentForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		h.rerenderPost(c, id, form.Comment, validation.Message(err))
		return
	}

	_, err = h.blog.AddComment(c.Request.Context(), user, id, form.Comment)
	switch {
	case err == nil:
		slog.Info("comment added", "post_id", id, "user_id", user.ID)
		c.Redirect(http.StatusSeeOther, postPath(id))
	case errors.Is(err, usecase.ErrEmptyComment):
		h.rerenderPost(c, id, form.Comment, msgEmptyComment)
	case errors.Is(err, usecase.ErrCommentTooLong):
		h.rerenderPost(c, id, form.Comment, msgCommentTooLong)
	case errors.Is(err, usecase.ErrPostNotFound):
		view.Error(c, http.StatusNotFound)
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrForbidden):
		view.Error(c, authz.StatusFor(err))
	default:
		slog.Error("failed to add comment", "error", err, "post_id", id)
		view.Error(c, http.StatusInternalServerError)
	}
}

// ShowNew は新規投稿フォームを表示します。
func (h *PostHandler) ShowNew(c *gin.Context) {
	renderPostForm(c, http.StatusOK, false, "/new-post", dto.PostForm{}, "")
}

// New は新規投稿フォームの送信を処理します。
// - バリデーションエラー・タイトル重複時は400でフォームを再表示
// - 成功時はトップページへリダイレクト
func (h *PostHandler) New(c *gin.Context) {
	var form dto.PostForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		renderPostForm(c, http.StatusBadRequest, false, "/new-post", form, validation.Message(err))
		return
	}

	post, err := h.blog.CreatePost(c.Request.Context(), identity.FromContext(c), toInput(form))
	if err != nil {
		h.postFormError(c, false, "/new-post", form, err)
		return
	}
	slog.Info("post created", "post_id", post.ID, "title", post.Title)
	c.Redirect(http.StatusSeeOther, "/")
}

// ShowEdit は既存の投稿内容を埋めた編集フォームを表示します。
func (h *PostHandler) ShowEdit(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	form := dto.PostForm{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImgURL:   post.ImgURL,
		Body:     post.Body,
	}
	renderPostForm(c, http.StatusOK, true, editPath(post.ID), form, "")
}

// Edit は編集フォームの送信を処理します。著者は変更しません。
// - 投稿が存在しない場合は404
// - 成功時は投稿ページへリダイレクト
func (h *PostHandler) Edit(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		view.Error(c, http.StatusNotFound)
		return
	}

	var form dto.PostForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		renderPostForm(c, http.StatusBadRequest, true, editPath(id), form, validation.Message(err))
		return
	}

	if _, err := h.blog.UpdatePost(c.Request.Context(), identity.FromContext(c), id, toInput(form)); err != nil {
		h.postFormError(c, true, editPath(id), form, err)
		return
	}
	slog.Info("post updated", "post_id", id)
	c.Redirect(http.StatusSeeOther, postPath(id))
}

// Delete は投稿とそのコメントを削除し、トップページへリダイレクトします。
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		view.Error(c, http.StatusNotFound)
		return
	}

	err = h.blog.DeletePost(c.Request.Context(), identity.FromContext(c), id)
	switch {
	case err == nil:
		slog.Info("post deleted", "post_id", id)
		view.SetFlash(c, flashPostDeleted)
		c.Redirect(http.StatusFound, "/")
	case errors.Is(err, usecase.ErrPostNotFound):
		view.Error(c, http.StatusNotFound)
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrForbidden):
		view.Error(c, authz.StatusFor(err))
	default:
		slog.Error("failed to delete post", "error", err, "post_id", id)
		view.Error(c, http.StatusInternalServerError)
	}
}

// loadPost は:idパラメータを解決し、失敗時は自ら404または500を表示します。
func (h *PostHandler) loadPost(c *gin.Context) (*entity.Post, bool) {
	id, err := httpx.PathID(c, "id")
	if err != nil {
		slog.Warn("invalid post id", "error", err, "remote_addr", c.ClientIP())
		view.Error(c, http.StatusNotFound)
		return nil, false
	}
	post, err := h.blog.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			view.Error(c, http.StatusNotFound)
			return nil, false
		}
		slog.Error("failed to load post", "error", err, "post_id", id)
		view.Error(c, http.StatusInternalServerError)
		return nil, false
	}
	return post, true
}

func (h *PostHandler) rerenderPost(c *gin.Context, id uint, comment, msg string) {
	post, err := h.blog.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			view.Error(c, http.StatusNotFound)
			return
		}
		slog.Error("failed to load post", "error", err, "post_id", id)
		view.Error(c, http.StatusInternalServerError)
		return
	}
	view.Render(c, http.StatusBadRequest, "post.html", gin.H{
		"Title":   post.Title,
		"Post":    post,
		"Comment": comment,
		"Error":   msg,
	})
}

func (h *PostHandler) postFormError(c *gin.Context, isEdit bool, action string, form dto.PostForm, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidPost):
		renderPostForm(c, http.StatusBadRequest, isEdit, action, form, msgInvalidPost)
	case errors.Is(err, usecase.ErrDuplicateTitle):
		renderPostForm(c, http.StatusBadRequest, isEdit, action, form, msgDuplicateTitle)
	case errors.Is(err, usecase.ErrPostNotFound):
		view.Error(c, http.StatusNotFound)
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrForbidden):
		view.Error(c, authz.StatusFor(err))
	default:
		slog.Error("failed to save post", "error", err, "action", action)
		view.Error(c, http.StatusInternalServerError)
	}
}

func renderPostForm(c *gin.Context, status int, isEdit bool, action string, form dto.PostForm, msg string) {
	title := "New Post"
	if isEdit {
		title = "Edit Post"
	}
	view.Render(c, status, "make-post.html", gin.H{
		"Title":  title,
		"IsEdit": isEdit,
		"Action": action,
		"Form":   form,
		"Error":  msg,
	})
}

func toInput(form dto.PostForm) usecase.PostInput {
	return usecase.PostInput{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		ImgURL:   form.ImgURL,
		Body:     form.Body,
	}
}

func postPath(id uint) string {
	return "/post/" + strconv.FormatUint(uint64(id), 10)
}

func editPath(id uint) string {
	return "/edit-post/" + strconv.FormatUint(uint64(id), 10)
}
