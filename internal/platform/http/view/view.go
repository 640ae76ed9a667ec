// Package view はサーバーサイドのHTMLページを描画します。
//
// 各ページはDataが構築する共通レイアウトデータを受け取ります。現在の識別情報、
// フォーム用のCSRFトークン、保留中のフラッシュメッセージです。
package view

import (
	"crypto/md5"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/platform/identity"
)

//go:embed templates/*.html
var templateFS embed.FS

const csrfTokenKey = "view.csrf_token"

// Funcs はテンプレート内で使える補助関数です。
var Funcs = template.FuncMap{
	"gravatar": Gravatar,
	// safe はサニタイズ済みのHTMLをマークします。
	"safe": func(s string) template.HTML { return template.HTML(s) },
	"year": func() int { return time.Now().Year() },
}

// MustTemplates は埋め込みのページテンプレートを解析します。解析エラー時はpanicします。
func MustTemplates() *template.Template {
	return template.Must(template.New("").Funcs(Funcs).ParseFS(templateFS, "templates/*.html"))
}

// Data はページ固有の値を全ページ共通のレイアウト値にマージします。
func Data(c *gin.Context, page gin.H) gin.H {
	user := identity.FromContext(c)
	data := gin.H{
		"User":      user,
		"IsAdmin":   user.IsAdmin(),
		"CSRFToken": CSRFToken(c),
		"Flashes":   PopFlashes(c),
	}
	for k, v := range page {
		data[k] = v
	}
	return data
}

// Render はレイアウトデータ付きで指定のテンプレートを出力します。
func Render(c *gin.Context, status int, name string, page gin.H) {
	c.HTML(status, name, Data(c, page))
}

// Error はstatusのエラーページを表示し、ハンドラーチェーンを中断します。
func Error(c *gin.Context, status int) {
	c.Abort()
	Render(c, status, "error.html", gin.H{
		"Status":  status,
		"Message": http.StatusText(status),
	})
}

// SetCSRFToken はこのリクエストのフォームが返送すべきトークンを記録します。
func SetCSRFToken(c *gin.Context, token string) {
	c.Set(csrfTokenKey, token)
}

// CSRFToken はリクエストのCSRFトークンを返します。未発行の場合は""です。
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfTokenKey)
}

// Gravatar はメールアドレスのアバターURLを返します（サイズ100、レーティングg、フォールバックretro）。
func Gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	q := url.Values{}
	q.Set("s", "100")
	q.Set("r", "g")
	q.Set("d", "retro")
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?%s", hex.EncodeToString(sum[:]), q.Encode())
}
