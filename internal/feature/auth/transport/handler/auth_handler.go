// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/auth/transport/http/dto"
	"blog_backend/internal/feature/auth/usecase"
	jwtmw "blog_backend/internal/platform/jwt"
	"blog_backend/internal/platform/http/validation"
	"blog_backend/internal/platform/http/view"
)

const (
	flashEmailExists = "Email already exists, login instead."
	flashAuthFailed  = "Authentication failed."

	msgPasswordTooShort = "Password must be at least 8 characters."
	msgPasswordTooLong  = "Password must be at most 72 bytes."

	maxUserAgentLength = 512
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、そのままセッションを開始します。
	Register(ctx context.Context, name, email, password string, meta usecase.SessionMeta) (*entity.User, *entity.Session, error)
	// Login はユーザーを認証し、成功時にセッションを開始します。
	Login(ctx context.Context, email, password string, meta usecase.SessionMeta) (*entity.User, *entity.Session, error)
	// Logout はセッションを終了します。
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandler は登録・ログイン・ログアウトのHTTPリクエストを処理します。
type AuthHandler struct {
	auth   AuthUsecase
	cookie *jwtmw.SessionCookie
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseとセッションCookieを注入します。
func NewAuthHandler(auth AuthUsecase, cookie *jwtmw.SessionCookie) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie}
}

// ShowRegister は登録フォームを表示します。
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	view.Render(c, http.StatusOK, "register.html", gin.H{"Title": "Register", "Form": dto.RegisterReq{}})
}

// Register はユーザー登録フォームの送信を処理します。
// - バリデーションエラー時は400でフォームを再表示（bcryptの72バイト上限超過を含む）
// - メール重複時はフラッシュ付きで/loginへリダイレクト
// - 成功時はセッションCookieを発行してトップページへリダイレクト
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		renderRegisterError(c, req, validation.Message(err))
		return
	}

	user, session, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password, sessionMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			slog.Warn("register rejected: email exists", "email", req.Email, "remote_addr", c.ClientIP())
			view.SetFlash(c, flashEmailExists)
			c.Redirect(http.StatusSeeOther, "/login")
			return
		case errors.Is(err, usecase.ErrPasswordTooShort):
			slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
			renderRegisterError(c, req, msgPasswordTooShort)
			return
		case errors.Is(err, usecase.ErrPasswordTooLong):
			slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
			renderRegisterError(c, req, msgPasswordTooLong)
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		view.Error(c, http.StatusInternalServerError)
		return
	}

	if !h.startSession(c, session) {
		return
	}
	slog.Info("user registered", "user_id", user.ID, "email", user.Email, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusSeeOther, "/")
}

// ShowLogin はログインフォームを表示します。
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	view.Render(c, http.StatusOK, "login.html", gin.H{"Title": "Log In", "Form": dto.LoginReq{}})
}

// Login はログインフォームの送信を処理します。
// - バリデーションエラー時は400でフォームを再表示
// - 認証失敗時はフラッシュ付きで/loginへリダイレクト（メールの存在有無は区別しない）
// - 成功時はセッションCookieを発行してトップページへリダイレクト
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		req.Password = ""
		view.Render(c, http.StatusBadRequest, "login.html", gin.H{
			"Title": "Log In",
			"Form":  req,
			"Error": validation.Message(err),
		})
		return
	}

	user, session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, sessionMeta(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// ユーザー列挙攻撃を防止するため、失敗理由は公開しない
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			view.SetFlash(c, flashAuthFailed)
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
		view.Error(c, http.StatusInternalServerError)
		return
	}

	if !h.startSession(c, session) {
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout はセッションを破棄し、Cookieを削除してトップページへリダイレクトします。
// 未ログイン状態で呼ばれてもエラーにはなりません。
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, ok := h.cookie.Read(c); ok {
		if err := h.auth.Logout(c.Request.Context(), sid); err != nil {
			slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
			view.Error(c, http.StatusInternalServerError)
			return
		}
	}
	h.cookie.Clear(c)
	c.Redirect(http.StatusFound, "/")
}

func renderRegisterError(c *gin.Context, req dto.RegisterReq, msg string) {
	req.Password = ""
	view.Render(c, http.StatusBadRequest, "register.html", gin.H{
		"Title": "Register",
		"Form":  req,
		"Error": msg,
	})
}

func (h *AuthHandler) startSession(c *gin.Context, session *entity.Session) bool {
	if err := h.cookie.Set(c, session.ID); err != nil {
		slog.Error("failed to issue session cookie", "error", err)
		view.Error(c, http.StatusInternalServerError)
		return false
	}
	return true
}

func sessionMeta(c *gin.Context) usecase.SessionMeta {
	return usecase.SessionMeta{UserAgent: truncateUTF8(c.Request.UserAgent(), maxUserAgentLength), IPAddress: c.ClientIP()}
}

// truncateUTF8 は最大maxバイトに切り詰め、途中で切れた文字や不正なバイト列を取り除きます。
func truncateUTF8(s string, max int) string {
	if len(s) > max {
		s = s[:max]
	}
	return strings.ToValidUTF8(s, "")
}
