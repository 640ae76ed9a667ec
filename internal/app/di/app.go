package di

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"blog_backend/internal/app/router"
	authadapters "blog_backend/internal/feature/auth/adapters"
	authhandler "blog_backend/internal/feature/auth/transport/handler"
	authusecase "blog_backend/internal/feature/auth/usecase"
	blogadapters "blog_backend/internal/feature/blog/adapters"
	bloghandler "blog_backend/internal/feature/blog/transport/handler"
	blogusecase "blog_backend/internal/feature/blog/usecase"
	contacthandler "blog_backend/internal/feature/contact/transport/handler"
	contactusecase "blog_backend/internal/feature/contact/usecase"
	"blog_backend/internal/platform/config"
	"blog_backend/internal/platform/db"
	"blog_backend/internal/platform/http/handler"
	"blog_backend/internal/platform/http/validation"
	jwtmw "blog_backend/internal/platform/jwt"
	"blog_backend/internal/platform/password"
	"blog_backend/internal/platform/sanitize"
	"blog_backend/internal/shared/ratelimiter"
)

const (
	loginAttemptsPerMinute   = 10
	contactMessagesPerMinute = 5
)

// Options はアプリケーションが利用するプロセス全体のリソースです。
type Options struct {
	Config *config.Config
	DB     *gorm.DB
	// Redisは任意です。未設定の場合、セッションはデータベースに保存されます。
	Redis *redis.Client
	// Sender はConfig.Mailから生成するSMTP送信者を差し替えます。
	Sender contactusecase.Sender
	// BcryptCost は範囲内であればbcrypt.DefaultCostを上書きします。
	BcryptCost int
}

// App は依存関係を組み立てたアプリケーションです。
type App struct {
	Router     *gin.Engine
	Dispatcher *contactusecase.Dispatcher
}

// NewApp はリポジトリ・ユースケース・ハンドラーを組み立ててルーターを構築します。
func NewApp(opts Options) *App {
	cfg := opts.Config
	validation.MustRegister()

	// リポジトリ
	userRepo := authadapters.NewUserGorm(opts.DB)
	sessionRepo := NewSessionRepository(opts.Redis, opts.DB)
	postRepo := blogadapters.NewPostGorm(opts.DB)
	commentRepo := blogadapters.NewCommentGorm(opts.DB)

	// ユースケース
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, password.NewBcryptHasher(opts.BcryptCost))
	blogUC := blogusecase.NewBlogUsecase(postRepo, commentRepo, sanitize.New())

	sender := opts.Sender
	if sender == nil {
		sender = NewContactSender(cfg.Mail)
	}
	sendTimeout := cfg.Mail.Timeout
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}
	dispatcher := contactusecase.NewDispatcher(sender, sendTimeout)
	contactUC := contactusecase.NewContactUsecase(dispatcher, cfg.ContactWait)

	// ハンドラー
	cookie := jwtmw.NewSessionCookie(jwtmw.NewCodec(cfg.SecretKey), cfg.CookieSecure)
	deps := router.Deps{
		Auth:           authhandler.NewAuthHandler(authUC, cookie),
		Posts:          bloghandler.NewPostHandler(blogUC),
		Contact:        contacthandler.NewContactHandler(contactUC),
		Identity:       jwtmw.LoadIdentity(authUC, cookie),
		Health:         handler.Health(handler.PingFunc(func(ctx context.Context) error { return db.Ping(ctx, opts.DB) })),
		LoginLimiter:   ratelimiter.NewRateLimiter(loginAttemptsPerMinute, time.Minute),
		ContactLimiter: ratelimiter.NewRateLimiter(contactMessagesPerMinute, time.Minute),
		SecureCookies:  cfg.CookieSecure,
	}

	return &App{
		Router:     router.NewRouter(deps),
		Dispatcher: dispatcher,
	}
}

// Close は送信中のお問い合わせメールを待ちます。
func (a *App) Close() {
	a.Dispatcher.Close()
}
