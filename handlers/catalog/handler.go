package catalog

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli"
	"github.com/webtor-io/video-feed/models"
	"github.com/webtor-io/video-feed/services/catalog"
)

const CORSOriginsFlag = "cors-origins"

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   CORSOriginsFlag,
			Usage:  "comma separated origins allowed to read the catalog api",
			Value:  "*",
			EnvVar: "CORS_ORIGINS",
		},
	)
}

// Handler serves the seed catalog read-only. Videos added in a browser
// session are private to it and are not listed here.
type Handler struct {
	cat  *catalog.Catalog
	feed *catalog.Feed
}

func RegisterHandler(c *cli.Context, r gin.IRouter, cat *catalog.Catalog) {
	Register(r, cat, ParseOrigins(c.String(CORSOriginsFlag)))
}

func Register(r gin.IRouter, cat *catalog.Catalog, origins []string) {
	h := &Handler{
		cat:  cat,
		feed: catalog.NewFeed(cat),
	}
	gr := r.Group("/api/videos")
	gr.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
	}))
	gr.GET("", h.list)
	gr.GET("/:id", h.get)
	gr.GET("/:id/related", h.related)
}

func ParseOrigins(s string) []string {
	var res []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			res = append(res, o)
		}
	}
	if len(res) == 0 {
		return []string{"*"}
	}
	return res
}

func (s *Handler) list(c *gin.Context) {
	cat := models.ParseCategory(c.Query("category"))
	c.JSON(http.StatusOK, s.feed.Filter(cat, c.Query("q")))
}

func (s *Handler) get(c *gin.Context) {
	v, ok := s.cat.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Handler) related(c *gin.Context) {
	v, ok := s.cat.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
		return
	}
	c.JSON(http.StatusOK, s.cat.Related(&v))
}
