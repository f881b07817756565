package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webtor-io/video-feed/models"
)

func TestCategoryURL(t *testing.T) {
	assert.Equal(t, "/", CategoryURL(models.CategoryAll, ""))
	assert.Equal(t, "/?category=Travel", CategoryURL(models.CategoryTravel, ""))
	assert.Equal(t, "/?category=Music&q=night+drive", CategoryURL(models.CategoryMusic, "night drive"))
}

func TestJSON(t *testing.T) {
	js, err := JSON(map[string]string{"a": "</script>"})
	require.NoError(t, err)
	assert.NotContains(t, string(js), "</script>")
}

func TestHelper_SessionTTL(t *testing.T) {
	h := &Helper{sessionTTL: 26 * time.Hour}
	assert.Equal(t, "1 day 2 hours", h.SessionTTL())
	assert.Empty(t, (&Helper{}).SessionTTL())
}

func TestBackURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		referer string
		want    string
	}{
		{"", "/"},
		{"http://example.com/?category=Music", "/?category=Music"},
		{"http://evil.com/phish", "/"},
		{"/?q=ocean", "/?q=ocean"},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "http://example.com/videos", nil)
		c.Request.Header.Set("Referer", tt.referer)
		assert.Equal(t, tt.want, backURL(c), "referer %q", tt.referer)
	}
}

func TestFlashRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("secret"))))
	r.POST("/fail", func(c *gin.Context) {
		RedirectWithError(c, errors.New("nope"))
	})
	r.GET("/", func(c *gin.Context) {
		ctx := NewContext(c)
		c.String(http.StatusOK, ctx.Flash+":"+ctx.Message)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/fail", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range w.Result().Cookies() {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "error:nope", w.Body.String())
}

func TestWantsJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/player/close", nil)
	c.Request.Header.Set("Accept", "application/json")
	assert.True(t, WantsJSON(c))

	c.Request.Header.Set("Accept", "text/html,application/xhtml+xml")
	assert.False(t, WantsJSON(c))
}
