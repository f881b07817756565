package catalog

import (
	"github.com/webtor-io/video-feed/models"
)

// Catalog is the static, read-only list of videos loaded at start.
type Catalog struct {
	videos []models.Video
	byID   map[string]int
}

func New(videos []models.Video) *Catalog {
	c := &Catalog{
		videos: videos,
		byID:   make(map[string]int, len(videos)),
	}
	for i, v := range videos {
		c.byID[v.ID] = i
	}
	return c
}

func NewSeeded() *Catalog {
	return New(models.SeedVideos())
}

func (s *Catalog) All() []models.Video {
	res := make([]models.Video, len(s.videos))
	copy(res, s.videos)
	return res
}

func (s *Catalog) ByCategory(c models.Category) []models.Video {
	if c == models.CategoryAll {
		return s.All()
	}
	return filterCategory(s.videos, c)
}

// Related returns videos sharing v's category, without v itself, in
// catalog order.
func (s *Catalog) Related(v *models.Video) []models.Video {
	var res []models.Video
	for _, o := range s.videos {
		if o.Category == v.Category && o.ID != v.ID {
			res = append(res, o)
		}
	}
	return res
}

func (s *Catalog) Get(id string) (models.Video, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Video{}, false
	}
	return s.videos[i], true
}

func filterCategory(vs []models.Video, c models.Category) []models.Video {
	res := []models.Video{}
	for _, v := range vs {
		if v.Category == c {
			res = append(res, v)
		}
	}
	return res
}
