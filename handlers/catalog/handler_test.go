package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webtor-io/video-feed/models"
	"github.com/webtor-io/video-feed/services/catalog"
)

func newEngine(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r, catalog.NewSeeded(), origins)
	return r
}

func get(t *testing.T, r *gin.Engine, path string, v any) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if v != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
	}
	return w
}

func ids(vs []models.Video) []string {
	var res []string
	for _, v := range vs {
		res = append(res, v.ID)
	}
	return res
}

func TestList(t *testing.T) {
	r := newEngine([]string{"*"})
	var all []models.Video
	get(t, r, "/api/videos", &all)
	assert.Len(t, all, len(models.SeedVideos()))

	var travel []models.Video
	get(t, r, "/api/videos?category=Travel", &travel)
	assert.Equal(t, []string{"4", "6", "9"}, ids(travel))

	var found []models.Video
	get(t, r, "/api/videos?q=GOOGLE", &found)
	assert.Len(t, found, 5)

	var none []models.Video
	get(t, r, "/api/videos?q=zzz", &none)
	assert.Empty(t, none)
}

func TestGetAndRelated(t *testing.T) {
	r := newEngine([]string{"*"})
	var v models.Video
	w := get(t, r, "/api/videos/8", &v)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sintel", v.Title)
	assert.Contains(t, w.Body.String(), `"videoUrl"`)

	var related []models.Video
	get(t, r, "/api/videos/1/related", &related)
	assert.Equal(t, []string{"8"}, ids(related))

	assert.Equal(t, http.StatusNotFound, get(t, r, "/api/videos/99", nil).Code)
	assert.Equal(t, http.StatusNotFound, get(t, r, "/api/videos/99/related", nil).Code)
}

func TestCORS(t *testing.T) {
	r := newEngine([]string{"https://allowed.example"})
	req := httptest.NewRequest(http.MethodGet, "/api/videos/1", nil)
	req.Header.Set("Origin", "https://allowed.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://allowed.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/videos/1", nil)
	req.Header.Set("Origin", "https://other.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestParseOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, ParseOrigins(""))
	assert.Equal(t, []string{"*"}, ParseOrigins(" , "))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, ParseOrigins("https://a.example, https://b.example"))
}
