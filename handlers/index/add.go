package index

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/video-feed/services/catalog"
	"github.com/webtor-io/video-feed/services/session"
	"github.com/webtor-io/video-feed/services/web"
)

func (s *Handler) add(c *gin.Context) {
	var f catalog.Form
	if err := c.ShouldBind(&f); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.Wrap(err, "failed to bind add video form"))
		return
	}
	sess := session.MustGet(c)
	v, err := sess.AddVideo(f)
	if errors.Is(err, catalog.ErrRequired) {
		d := s.data(c)
		d.Form = f
		d.FormErr = err.Error()
		d.FormOpen = true
		s.tb.Build("index").HTML(http.StatusUnprocessableEntity, web.NewContext(c).WithData(d))
		return
	}
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	log.WithFields(log.Fields{
		"session": sess.ID,
		"id":      v.ID,
	}).Info("video added")
	web.RedirectWithSuccessAndMessage(c, "Video added")
}
