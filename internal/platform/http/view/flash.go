package view

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// FlashCookie は次に表示するページで一度だけ見せるメッセージを保持します。
const FlashCookie = "blog_flash"

const flashSeparator = "\x1f"

// SetFlash は次のページ表示用にmsgを積みます。
func SetFlash(c *gin.Context, msg string) {
	msgs := readFlashes(c)
	msgs = append(msgs, msg)
	value := base64.RawURLEncoding.EncodeToString([]byte(strings.Join(msgs, flashSeparator)))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookie, value, 0, "/", "", c.Request.TLS != nil, true)
}

// PopFlashes は保留中のメッセージを返し、消去します。
func PopFlashes(c *gin.Context) []string {
	msgs := readFlashes(c)
	if len(msgs) == 0 {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	return msgs
}

func readFlashes(c *gin.Context) []string {
	raw, err := c.Cookie(FlashCookie)
	if err != nil || raw == "" {
		return nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	return strings.Split(string(decoded), flashSeparator)
}
