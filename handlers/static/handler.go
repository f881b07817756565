package static

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/webtor-io/video-feed/assets"
)

const placeholder = "placeholder.svg"

func RegisterHandler(r gin.IRouter) error {
	svg, err := assets.FS.ReadFile(placeholder)
	if err != nil {
		return errors.Wrap(err, "failed to read placeholder")
	}
	r.StaticFS("/assets", http.FS(assets.FS))
	r.GET("/"+placeholder, func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=86400")
		c.Data(http.StatusOK, "image/svg+xml", svg)
	})
	return nil
}
