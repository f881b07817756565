package template

import (
	"html/template"
	"path"
	"strings"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	layoutsDir  = "layouts"
	partialsDir = "partials"
	viewsDir    = "views"
	ext         = ".html"
)

// Context is the value templates are executed with.
type Context interface {
	GinContext() *gin.Context
}

type Helper interface {
	Funcs() template.FuncMap
}

type Builder[C Context] interface {
	WithLayout(name string) Builder[C]
	Build(name string) *Template[C]
}

// Manager collects view registrations from handlers and compiles them into
// the renderer on Init. Every view is compiled together with its layout and
// all partials.
type Manager[C Context] struct {
	re    multitemplate.Renderer
	src   Source
	funcs template.FuncMap
	views []*builder[C]
}

func NewManager[C Context](re multitemplate.Renderer, src Source) *Manager[C] {
	return &Manager[C]{
		re:    re,
		src:   src,
		funcs: template.FuncMap{},
	}
}

func (s *Manager[C]) WithHelper(h Helper) *Manager[C] {
	for k, v := range h.Funcs() {
		s.funcs[k] = v
	}
	return s
}

// MustRegisterViews registers views matching pattern under views/.
func (s *Manager[C]) MustRegisterViews(pattern string) Builder[C] {
	if pattern == "" {
		panic("empty view pattern")
	}
	b := &builder[C]{pattern: pattern}
	s.views = append(s.views, b)
	return b
}

func (s *Manager[C]) Init() error {
	partials, err := s.src.Glob(path.Join(partialsDir, "**", "*"+ext))
	if err != nil {
		return errors.Wrap(err, "failed to list partials")
	}
	var shared []string
	for _, p := range partials {
		t, err := s.src.ReadFile(p)
		if err != nil {
			return errors.Wrapf(err, "failed to read partial %v", p)
		}
		shared = append(shared, string(t))
	}
	for _, b := range s.views {
		if err := s.initBuilder(b, shared); err != nil {
			return err
		}
	}
	return nil
}

func (s *Manager[C]) initBuilder(b *builder[C], partials []string) error {
	var layout string
	if b.layout != "" {
		l, err := s.src.ReadFile(path.Join(layoutsDir, b.layout+ext))
		if err != nil {
			return errors.Wrapf(err, "failed to read layout %v", b.layout)
		}
		layout = string(l)
	}
	views, err := s.src.Glob(path.Join(viewsDir, b.pattern+ext))
	if err != nil {
		return errors.Wrapf(err, "failed to list views %v", b.pattern)
	}
	if len(views) == 0 {
		return errors.Errorf("no views match %v", b.pattern)
	}
	for _, v := range views {
		t, err := s.src.ReadFile(v)
		if err != nil {
			return errors.Wrapf(err, "failed to read view %v", v)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(v, viewsDir+"/"), ext)
		var parts []string
		if layout != "" {
			parts = append(parts, layout)
		}
		parts = append(parts, partials...)
		parts = append(parts, string(t))
		s.re.AddFromStringsFuncs(name, s.funcs, parts...)
		log.WithField("view", name).Debug("template registered")
	}
	return nil
}

type builder[C Context] struct {
	pattern string
	layout  string
}

func (s *builder[C]) WithLayout(name string) Builder[C] {
	s.layout = name
	return s
}

func (s *builder[C]) Build(name string) *Template[C] {
	return &Template[C]{name: name}
}

type Template[C Context] struct {
	name string
}

func (s *Template[C]) HTML(code int, ctx C) {
	ctx.GinContext().HTML(code, s.name, ctx)
}
