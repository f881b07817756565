package web

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	csrf "github.com/utrack/gin-csrf"
)

const (
	flashError   = "error"
	flashSuccess = "success"
)

// set by the gin-csrf middleware
const csrfSecretKey = "csrfSecret"

// Context is what every page template is executed with.
type Context struct {
	Data    any
	CSRF    string
	Path    string
	Err     error
	Message string
	Flash   string

	c *gin.Context
}

func NewContext(c *gin.Context) *Context {
	ctx := &Context{
		Path: c.Request.URL.Path,
		c:    c,
	}
	if _, ok := c.Get(csrfSecretKey); ok {
		ctx.CSRF = csrf.GetToken(c)
	}
	ctx.Message, ctx.Flash = popFlash(c)
	return ctx
}

func (s *Context) WithData(d any) *Context {
	s.Data = d
	return s
}

func (s *Context) WithErr(err error) *Context {
	s.Err = err
	return s
}

func (s *Context) GinContext() *gin.Context {
	return s.c
}

// WantsJSON reports whether the request came from script rather than a
// plain form post.
func WantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

func RedirectWithError(c *gin.Context, err error) {
	log.WithError(err).Warn("request failed")
	redirectWithFlash(c, flashError, err.Error())
}

func RedirectWithSuccessAndMessage(c *gin.Context, msg string) {
	redirectWithFlash(c, flashSuccess, msg)
}

// RedirectBack sends the browser to the page it came from, or home.
func RedirectBack(c *gin.Context) {
	c.Redirect(http.StatusFound, backURL(c))
}

func redirectWithFlash(c *gin.Context, kind, msg string) {
	s := sessions.Default(c)
	s.AddFlash(msg, kind)
	if err := s.Save(); err != nil {
		log.WithError(err).Warn("failed to save flash")
	}
	RedirectBack(c)
}

func popFlash(c *gin.Context) (msg, kind string) {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return
	}
	s := sessions.Default(c)
	for _, k := range []string{flashError, flashSuccess} {
		fs := s.Flashes(k)
		if len(fs) == 0 {
			continue
		}
		if m, ok := fs[0].(string); ok {
			msg, kind = m, k
		}
	}
	if kind != "" {
		_ = s.Save()
	}
	return
}

func backURL(c *gin.Context) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) {
		return "/"
	}
	res := u.Path
	if res == "" {
		res = "/"
	}
	if u.RawQuery != "" {
		res += "?" + u.RawQuery
	}
	return res
}
