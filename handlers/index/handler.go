package index

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/webtor-io/video-feed/models"
	"github.com/webtor-io/video-feed/services/catalog"
	"github.com/webtor-io/video-feed/services/session"
	"github.com/webtor-io/video-feed/services/template"
	"github.com/webtor-io/video-feed/services/web"
)

type Data struct {
	Categories         []models.Category
	EditableCategories []models.Category
	Category           models.Category
	Query              string
	Groups             []catalog.Group
	Form               catalog.Form
	FormErr            string
	FormOpen           bool
	Player             session.View
}

type Handler struct {
	tb template.Builder[*web.Context]
}

func RegisterHandler(r gin.IRouter, tm *template.Manager[*web.Context]) {
	h := &Handler{
		tb: tm.MustRegisterViews("*").WithLayout("main"),
	}
	r.GET("/", h.index)
	r.POST("/videos", h.add)
}

func (s *Handler) index(c *gin.Context) {
	s.tb.Build("index").HTML(http.StatusOK, web.NewContext(c).WithData(s.data(c)))
}

func (s *Handler) data(c *gin.Context) *Data {
	sess := session.MustGet(c)
	cat := models.ParseCategory(c.Query("category"))
	q := c.Query("q")
	return &Data{
		Categories:         models.Categories,
		EditableCategories: models.EditableCategories,
		Category:           cat,
		Query:              q,
		Groups:             sess.Grouped(cat, q),
		Form:               catalog.Form{Category: string(models.EditableCategories[0])},
		Player:             sess.View(),
	}
}
