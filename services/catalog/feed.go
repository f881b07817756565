package catalog

import (
	"strings"

	"github.com/webtor-io/video-feed/models"
	"golang.org/x/text/cases"
)

type Group struct {
	Category models.Category
	Videos   []models.Video
}

// Feed is the list shown on the catalog page: records added during the
// session, newest first, followed by the catalog.
type Feed struct {
	catalog *Catalog
	extra   []models.Video
}

func NewFeed(c *Catalog) *Feed {
	return &Feed{catalog: c}
}

func (s *Feed) Add(v models.Video) {
	s.extra = append([]models.Video{v}, s.extra...)
}

func (s *Feed) Added() []models.Video {
	res := make([]models.Video, len(s.extra))
	copy(res, s.extra)
	return res
}

func (s *Feed) Videos() []models.Video {
	return append(s.Added(), s.catalog.All()...)
}

func (s *Feed) Get(id string) (models.Video, bool) {
	for _, v := range s.extra {
		if v.ID == id {
			return v, true
		}
	}
	return s.catalog.Get(id)
}

func (s *Feed) Related(v *models.Video) []models.Video {
	return s.catalog.Related(v)
}

func (s *Feed) Filter(c models.Category, query string) []models.Video {
	vs := s.Videos()
	if c != models.CategoryAll {
		vs = filterCategory(vs, c)
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return vs
	}
	fold := cases.Fold()
	q = fold.String(q)
	res := []models.Video{}
	for _, v := range vs {
		if strings.Contains(fold.String(v.Title), q) || strings.Contains(fold.String(v.Creator), q) {
			res = append(res, v)
		}
	}
	return res
}

// Grouped splits the filtered feed into sections. For All there is one
// section per category that has matches; otherwise a single section.
func (s *Feed) Grouped(c models.Category, query string) []Group {
	vs := s.Filter(c, query)
	if c != models.CategoryAll {
		return []Group{{Category: c, Videos: vs}}
	}
	var gs []Group
	for _, cat := range models.EditableCategories {
		g := filterCategory(vs, cat)
		if len(g) > 0 {
			gs = append(gs, Group{Category: cat, Videos: g})
		}
	}
	return gs
}
