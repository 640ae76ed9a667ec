package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/platform/http/view"
)

// About は静的なaboutページを表示します。
func About(c *gin.Context) {
	view.Render(c, http.StatusOK, "about.html", gin.H{"Title": "About"})
}
