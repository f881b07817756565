package thumbnail

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/video-feed/services/catalog"
	"github.com/webtor-io/video-feed/services/thumbnail"
)

const formatJPEG = "jpg"

// Handler resizes catalog thumbnails. Videos added in a browser are not
// known here; their pages load thumbnails straight from the source.
type Handler struct {
	cat *catalog.Catalog
	rs  *thumbnail.Resizer
}

func RegisterHandler(r gin.IRouter, cat *catalog.Catalog, rs *thumbnail.Resizer) {
	h := &Handler{
		cat: cat,
		rs:  rs,
	}
	r.GET("/thumb/:id/:file", h.thumb)
}

func bindWidth(file string) (int, error) {
	parts := strings.Split(file, ".")
	if len(parts) != 2 {
		return 0, errors.Errorf("wrong file format %v", file)
	}
	if parts[1] != formatJPEG {
		return 0, errors.Errorf("wrong format %v", parts[1])
	}
	width, err := strconv.Atoi(parts[0])
	if err != nil || !thumbnail.AllowedWidth(width) {
		return 0, errors.Errorf("wrong width %v", parts[0])
	}
	return width, nil
}

func (s *Handler) thumb(c *gin.Context) {
	width, err := bindWidth(c.Param("file"))
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	v, ok := s.cat.Get(c.Param("id"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	if !thumbnail.Proxied(v) {
		if thumbnail.Local(v.Thumbnail) {
			c.Redirect(http.StatusFound, v.Thumbnail)
		} else {
			c.Redirect(http.StatusFound, catalog.DefaultThumbnail)
		}
		return
	}
	b, err := s.rs.Get(c.Request.Context(), v.Thumbnail, width)
	if err != nil {
		log.WithError(err).WithField("id", v.ID).Warn("failed to resize thumbnail")
		c.Redirect(http.StatusFound, catalog.DefaultThumbnail)
		return
	}
	etag := generateETag(b)
	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("ETag", etag)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/jpeg", b)
}

func generateETag(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf(`"%x"`, sum[:])
}
