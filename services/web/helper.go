package web

import (
	"encoding/json"
	"html/template"
	"net/url"
	"time"

	"github.com/hako/durafmt"
	"github.com/urfave/cli"
	"github.com/webtor-io/video-feed/models"
	"github.com/webtor-io/video-feed/services/common"
	"github.com/webtor-io/video-feed/services/session"
	"github.com/webtor-io/video-feed/services/thumbnail"
)

type Helper struct {
	domain     string
	sessionTTL time.Duration
}

func NewHelper(c *cli.Context) *Helper {
	return &Helper{
		domain:     c.String(common.DomainFlag),
		sessionTTL: c.Duration(session.SessionTTLFlag),
	}
}

func (s *Helper) Funcs() template.FuncMap {
	return template.FuncMap{
		"domain":      s.Domain,
		"sessionTTL":  s.SessionTTL,
		"thumb":       thumbnail.URL,
		"duration":    models.FormatDuration,
		"json":        JSON,
		"categoryURL": CategoryURL,
		"card":        NewCard,
	}
}

// Card is a feed card's template data.
type Card struct {
	Video models.Video
	CSRF  string
}

func NewCard(v models.Video, csrf string) *Card {
	return &Card{Video: v, CSRF: csrf}
}

func (s *Helper) Domain() string {
	return s.domain
}

// SessionTTL is how long a browser's added videos survive without a
// request, for the page footer.
func (s *Helper) SessionTTL() string {
	if s.sessionTTL <= 0 {
		return ""
	}
	return durafmt.Parse(s.sessionTTL).LimitFirstN(2).String()
}

func JSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

func CategoryURL(c models.Category, query string) string {
	q := url.Values{}
	if c != models.CategoryAll {
		q.Set("category", string(c))
	}
	if query != "" {
		q.Set("q", query)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
