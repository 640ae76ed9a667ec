package jwtmw

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName は署名付きセッショントークンを運ぶブラウザCookieの名前です。
const CookieName = "blog_session"

// SessionCookie はセッションCookieの書き込みと読み取りを行います。
type SessionCookie struct {
	codec  *Codec
	secure bool
}

// NewSessionCookie はSessionCookieを生成します。secureはSecure属性を設定します。
func NewSessionCookie(codec *Codec, secure bool) *SessionCookie {
	return &SessionCookie{codec: codec, secure: secure}
}

// Set はsessionIDのCookieを発行します。Max-Ageのないブラウザセッション Cookieです。
func (s *SessionCookie) Set(c *gin.Context, sessionID string) error {
	token, err := s.codec.Encode(sessionID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, 0, "/", "", s.secure, true)
	return nil
}

// Clear はCookieを失効させます。
func (s *SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", s.secure, true)
}

// Read はリクエストのCookieからセッションIDを返します。
// Cookieがないか署名が検証できない場合、okはfalseです。
func (s *SessionCookie) Read(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return "", false
	}
	sid, err := s.codec.Decode(raw)
	if err != nil {
		return "", false
	}
	return sid, true
}
