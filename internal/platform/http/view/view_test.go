package view

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/platform/identity"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newEngine() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(MustTemplates())
	return r
}

func TestMustTemplates_AllPagesParse(t *testing.T) {
	tmpl := MustTemplates()

	for _, name := range []string{
		"index.html", "post.html", "make-post.html", "login.html", "register.html",
		"about.html", "contact.html", "error.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), "missing template %s", name)
	}
}

func TestGravatar(t *testing.T) {
	t.Parallel()

	// md5("test@example.com")
	const hash = "55502f40dc8b7c769880b10874abc9d0"

	got := Gravatar("  Test@Example.com ")

	assert.True(t, strings.HasPrefix(got, "https://www.gravatar.com/avatar/"+hash+"?"))
	assert.Contains(t, got, "s=100")
	assert.Contains(t, got, "r=g")
	assert.Contains(t, got, "d=retro")
}

func TestError_RendersStatusPage(t *testing.T) {
	r := newEngine()
	r.GET("/", func(c *gin.Context) {
		Error(c, http.StatusForbidden)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Forbidden")
}

func TestData_LayoutValues(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	data := Data(c, gin.H{"Title": "x"})
	assert.Nil(t, data["User"])
	assert.Equal(t, false, data["IsAdmin"])
	assert.Equal(t, "", data["CSRFToken"])
	assert.Equal(t, "x", data["Title"])

	identity.Set(c, &entity.User{ID: 1, Role: entity.RoleAdmin})
	SetCSRFToken(c, "tok")
	data = Data(c, nil)
	assert.Equal(t, true, data["IsAdmin"])
	assert.Equal(t, "tok", data["CSRFToken"])
}

func TestFlash_ShownOnce(t *testing.T) {
	r := newEngine()
	r.GET("/set", func(c *gin.Context) {
		SetFlash(c, "Email already exists, login instead.")
		c.Redirect(http.StatusSeeOther, "/show")
	})
	r.GET("/show", func(c *gin.Context) {
		Render(c, http.StatusOK, "about.html", nil)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, FlashCookie, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/show", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), "Email already exists, login instead.")
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, FlashCookie, cleared[0].Name)
	assert.True(t, cleared[0].MaxAge < 0, "flash cookie must be cleared after display")
}

func TestPopFlashes_GarbageCookie(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: FlashCookie, Value: "%%%not-base64"})

	assert.Nil(t, PopFlashes(c))
}
