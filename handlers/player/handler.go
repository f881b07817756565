package player

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/video-feed/services/bridge"
	"github.com/webtor-io/video-feed/services/session"
	"github.com/webtor-io/video-feed/services/web"
)

type Handler struct {
	upgrader websocket.Upgrader
}

func RegisterHandler(r gin.IRouter) {
	h := &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	gr := r.Group("/player")
	gr.POST("/open/:id", h.open)
	gr.POST("/close", h.action(session.ActionClose))
	gr.POST("/minimize", h.action(session.ActionMinimize))
	gr.POST("/restore", h.action(session.ActionRestore))
	gr.POST("/toggle", h.action(session.ActionTogglePlay))
	gr.POST("/countdown/cancel", h.action(session.ActionCancelCountdown))
	gr.POST("/related/toggle", h.action(session.ActionToggleRelated))
	gr.GET("/state", h.state)
	gr.GET("/ws", h.ws)
}

func (s *Handler) open(c *gin.Context) {
	s.perform(c, bridge.Action{Name: session.ActionOpen, ID: c.Param("id")})
}

func (s *Handler) action(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.perform(c, bridge.Action{Name: name})
	}
}

func (s *Handler) perform(c *gin.Context, a bridge.Action) {
	sess := session.MustGet(c)
	err := sess.Perform(a)
	if errors.Is(err, session.ErrVideoNotFound) {
		_ = c.AbortWithError(http.StatusNotFound, err)
		return
	}
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	if web.WantsJSON(c) {
		c.JSON(http.StatusOK, sess.View())
		return
	}
	web.RedirectBack(c)
}

func (s *Handler) state(c *gin.Context) {
	c.JSON(http.StatusOK, session.MustGet(c).View())
}

// ws connects the page's video element to the session. The call blocks
// until the page goes away or another page of the same session connects.
func (s *Handler) ws(c *gin.Context) {
	sess := session.MustGet(c)
	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("failed to upgrade websocket")
		return
	}
	conn := bridge.NewConn(ws)
	sess.Attach(conn)
	log.WithField("session", sess.ID).Debug("player page connected")
	conn.Serve(sess)
	log.WithField("session", sess.ID).Debug("player page disconnected")
}
