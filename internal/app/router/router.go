// Package router はginエンジンとルーティングを構築します。
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "blog_backend/internal/feature/auth/transport/handler"
	bloghandler "blog_backend/internal/feature/blog/transport/handler"
	contacthandler "blog_backend/internal/feature/contact/transport/handler"
	"blog_backend/internal/platform/authz"
	"blog_backend/internal/platform/http/middleware"
	"blog_backend/internal/platform/http/view"
	"blog_backend/internal/platform/metrics"
	"blog_backend/internal/shared/ratelimiter"
)

// contentSecurityPolicy はbootstrapのCDNと外部の記事画像を許可します。
const contentSecurityPolicy = "default-src 'self'; " +
	"img-src 'self' https: data:; " +
	"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
	"script-src 'self' https://cdn.jsdelivr.net; " +
	"frame-ancestors 'none'; form-action 'self'"

// Deps はルートが必要とするハンドラーとリクエスト単位のミドルウェアです。
type Deps struct {
	Auth    *authhandler.AuthHandler
	Posts   *bloghandler.PostHandler
	Contact *contacthandler.ContactHandler

	// Identity はセッションCookieから現在のユーザーを解決します。
	Identity gin.HandlerFunc
	// Health は/healthzに応答します。
	Health gin.HandlerFunc

	LoginLimiter   ratelimiter.Limiter
	ContactLimiter ratelimiter.Limiter

	// SecureCookies はCookieにSecure属性を付け、HSTSを有効にします。
	SecureCookies bool
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	// ClientIPは接続元のアドレスを使い、レート制限ではX-Forwarded-Forを信頼しない
	_ = r.SetTrustedProxies(nil)
	r.SetHTMLTemplate(view.MustTemplates())

	r.Use(
		gin.Recovery(),
		middleware.RequestLog(),
		metrics.Middleware(),
		middleware.SecurityHeaders(d.SecureCookies, contentSecurityPolicy),
	)

	// 導通確認・メトリクス（CSRF・セッション不要）
	r.GET("/healthz", d.Health)
	r.HEAD("/healthz", d.Health)
	r.GET("/metrics", metrics.Handler())

	site := r.Group("/", middleware.CSRF(d.SecureCookies), d.Identity)
	{
		site.GET("/", d.Posts.List)
		site.GET("/about", bloghandler.About)

		// 新規ユーザー登録・ログイン
		site.GET("/register", d.Auth.ShowRegister)
		site.POST("/register", d.Auth.Register)
		site.GET("/login", d.Auth.ShowLogin)
		site.POST("/login", middleware.RateLimit(d.LoginLimiter), d.Auth.Login)
		site.GET("/logout", d.Auth.Logout)

		// 投稿表示・コメント（コメント送信の認証はハンドラー側で判定）
		site.GET("/post/:id", d.Posts.Show)
		site.POST("/post/:id", d.Posts.Comment)

		site.GET("/contact", d.Contact.Show)
		site.POST("/contact", middleware.RateLimit(d.ContactLimiter), d.Contact.Submit)
	}

	// 管理者のみ
	admin := site.Group("/", authz.RequireAuthenticated(), authz.RequireAdmin())
	{
		admin.GET("/new-post", d.Posts.ShowNew)
		admin.POST("/new-post", d.Posts.New)
		admin.GET("/edit-post/:id", d.Posts.ShowEdit)
		admin.POST("/edit-post/:id", d.Posts.Edit)
		// GETのため、トークンはクエリで受け取る
		admin.GET("/delete/:id", middleware.RequireCSRFQuery(), d.Posts.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		view.Error(c, http.StatusNotFound)
	})

	return r
}
