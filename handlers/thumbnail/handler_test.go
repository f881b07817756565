package thumbnail

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webtor-io/video-feed/models"
	"github.com/webtor-io/video-feed/services/catalog"
	"github.com/webtor-io/video-feed/services/session/sessiontest"
	"github.com/webtor-io/video-feed/services/thumbnail"
)

func imageServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1280, 720))))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Path != "/poster.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newEngine(t *testing.T, img *httptest.Server) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cat := catalog.New([]models.Video{
		{ID: "1", Title: "Poster", Category: models.CategoryNature, Thumbnail: img.URL + "/poster.png"},
		{ID: "2", Title: "Gone", Category: models.CategoryNature, Thumbnail: img.URL + "/gone.png"},
		{ID: "3", Title: "Local", Category: models.CategoryNature, Thumbnail: catalog.DefaultThumbnail},
		{ID: "4", Title: "Elsewhere", Category: models.CategoryNature, Thumbnail: "//evil.example/a.jpg"},
	})
	r := gin.New()
	RegisterHandler(r, cat, thumbnail.NewResizer(img.Client(), time.Minute))
	return r
}

func get(r *gin.Engine, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestThumb_Resizes(t *testing.T) {
	var hits int32
	r := newEngine(t, imageServer(t, &hits))

	w := get(r, "/thumb/1/160.jpg")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	decoded, err := imaging.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 160, decoded.Bounds().Dx())
	assert.Equal(t, 90, decoded.Bounds().Dy())

	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, http.StatusNotModified, get(r, "/thumb/1/160.jpg", "If-None-Match", etag).Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestThumb_Fallbacks(t *testing.T) {
	var hits int32
	r := newEngine(t, imageServer(t, &hits))

	tests := []struct {
		path     string
		code     int
		location string
	}{
		{"/thumb/2/320.jpg", http.StatusFound, catalog.DefaultThumbnail},
		{"/thumb/3/320.jpg", http.StatusFound, catalog.DefaultThumbnail},
		{"/thumb/4/320.jpg", http.StatusFound, catalog.DefaultThumbnail},
		{"/thumb/missing/320.jpg", http.StatusNotFound, ""},
		{"/thumb/1/321.jpg", http.StatusBadRequest, ""},
		{"/thumb/1/320.png", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		w := get(r, tt.path)
		assert.Equal(t, tt.code, w.Code, tt.path)
		assert.Equal(t, tt.location, w.Header().Get("Location"), tt.path)
	}
}

func TestThumb_AddedVideosAreNeverFetched(t *testing.T) {
	var hits int32
	img := imageServer(t, &hits)
	env := sessiontest.New(t)
	RegisterHandler(env.App, catalog.NewSeeded(), thumbnail.NewResizer(img.Client(), time.Minute))
	cl := env.Client(t)

	v, err := cl.Session().AddVideo(catalog.Form{
		Title:     "Internal",
		VideoURL:  "https://example.com/v.mp4",
		Thumbnail: img.URL + "/poster.png",
	})
	require.NoError(t, err)
	assert.Equal(t, img.URL+"/poster.png", thumbnail.URL(v, 320))

	for _, w := range thumbnail.Widths {
		assert.Equal(t, http.StatusNotFound, cl.Get("/thumb/"+v.ID+"/"+strconv.Itoa(w)+".jpg").Code)
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestBindWidth(t *testing.T) {
	tests := []struct {
		file string
		want int
		ok   bool
	}{
		{"160.jpg", 160, true},
		{"640.jpg", 640, true},
		{"100.jpg", 0, false},
		{"abc.jpg", 0, false},
		{"320", 0, false},
		{"320.jpg.jpg", 0, false},
	}
	for _, tt := range tests {
		w, err := bindWidth(tt.file)
		if tt.ok {
			require.NoError(t, err, tt.file)
			assert.Equal(t, tt.want, w)
		} else {
			assert.Error(t, err, tt.file)
		}
	}
}
