package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/hako/durafmt"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	csrf "github.com/utrack/gin-csrf"
	"github.com/webtor-io/video-feed/templates"

	wc "github.com/webtor-io/video-feed/handlers/catalog"
	wi "github.com/webtor-io/video-feed/handlers/index"
	wp "github.com/webtor-io/video-feed/handlers/player"
	sta "github.com/webtor-io/video-feed/handlers/static"
	wt "github.com/webtor-io/video-feed/handlers/thumbnail"
	"github.com/webtor-io/video-feed/services/catalog"
	"github.com/webtor-io/video-feed/services/common"
	"github.com/webtor-io/video-feed/services/session"
	"github.com/webtor-io/video-feed/services/template"
	"github.com/webtor-io/video-feed/services/thumbnail"
	w "github.com/webtor-io/video-feed/services/web"
)

const sessionCookieName = "session"

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = w.RegisterFlags(c.Flags)
	c.Flags = common.RegisterFlags(c.Flags)
	c.Flags = session.RegisterFlags(c.Flags)
	c.Flags = thumbnail.RegisterFlags(c.Flags)
	c.Flags = template.RegisterFlags(c.Flags)
	c.Flags = wc.RegisterFlags(c.Flags)
}

func serve(c *cli.Context) error {
	// Setting HTTP Client
	cl := &http.Client{Timeout: 30 * time.Second}

	// Setting Catalog
	cat := catalog.NewSeeded()

	// Setting template renderer
	re := multitemplate.NewRenderer()

	// Setting TemplateManager
	tm := template.NewManager[*w.Context](re, template.NewSource(c, templates.FS)).
		WithHelper(w.NewHelper(c))

	// Setting Gin
	r := gin.Default()
	r.RedirectTrailingSlash = false
	r.HTMLRender = re

	// Setting Web
	web := w.New(c, r)
	defer web.Close()

	// Setting Static
	err := sta.RegisterHandler(r)
	if err != nil {
		return err
	}

	// Setting CatalogApi
	wc.RegisterHandler(c, r, cat)

	// Setting ThumbnailHandler
	wt.RegisterHandler(r, cat, thumbnail.New(c, cl))

	// Setting Sessions
	reg := session.New(c, cat)
	secret := c.String(common.SessionSecretFlag)
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(reg.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	app := r.Group("/")
	app.Use(sessions.Sessions(sessionCookieName, store))
	app.Use(csrf.Middleware(csrf.Options{
		Secret: secret,
		ErrorFunc: func(c *gin.Context) {
			c.String(http.StatusBadRequest, "CSRF token mismatch")
			c.Abort()
		},
	}))
	app.Use(reg.Middleware())
	log.Infof("player sessions expire after %v", durafmt.Parse(reg.TTL()).LimitFirstN(2))

	// Setting IndexHandler
	wi.RegisterHandler(app, tm)

	// Setting PlayerHandler
	wp.RegisterHandler(app)

	// Render templates
	err = tm.Init()
	if err != nil {
		return err
	}

	// And SERVE!
	err = web.Serve()
	if err != nil {
		log.WithError(err).Error("got server error")
	}
	return err
}
