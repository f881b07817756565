package catalog

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/webtor-io/video-feed/models"
)

const (
	MaxTitleLen       = 120
	MaxURLLen         = 500
	MaxCreatorLen     = 80
	MaxDescriptionLen = 200

	DefaultCreator   = "Unknown"
	DefaultThumbnail = "/placeholder.svg"
	DefaultViews     = "0"
	DefaultUploaded  = "Just now"
)

var ErrRequired = errors.New("Title and Video URL are required.")

// Form is the add-video form as submitted by the browser.
type Form struct {
	Title       string `form:"title"`
	VideoURL    string `form:"video_url"`
	Thumbnail   string `form:"thumbnail"`
	Creator     string `form:"creator"`
	Description string `form:"description"`
	Category    string `form:"category"`
	Duration    string `form:"duration"`
}

// Normalize trims every field, applies length limits and defaults the
// category.
func (f *Form) Normalize() {
	f.Title = limit(f.Title, MaxTitleLen)
	f.VideoURL = limit(f.VideoURL, MaxURLLen)
	f.Thumbnail = limit(f.Thumbnail, MaxURLLen)
	f.Creator = limit(f.Creator, MaxCreatorLen)
	f.Description = limit(f.Description, MaxDescriptionLen)
	f.Duration = strings.TrimSpace(f.Duration)
	if !models.Category(f.Category).Editable() {
		f.Category = string(models.EditableCategories[0])
	}
}

func (f *Form) Validate() error {
	if strings.TrimSpace(f.Title) == "" || strings.TrimSpace(f.VideoURL) == "" {
		return ErrRequired
	}
	return nil
}

func (f *Form) Build(id string, now time.Time) (models.Video, error) {
	f.Normalize()
	if err := f.Validate(); err != nil {
		return models.Video{}, err
	}
	v := models.Video{
		ID:          id,
		Title:       f.Title,
		Description: f.Description,
		Category:    models.Category(f.Category),
		Duration:    parseDuration(f.Duration),
		Thumbnail:   f.Thumbnail,
		VideoURL:    f.VideoURL,
		Creator:     f.Creator,
		Views:       DefaultViews,
		UploadedAt:  DefaultUploaded,
		AddedAt:     now,
	}
	if v.Description == "" {
		v.Description = v.Title
	}
	if v.Thumbnail == "" {
		v.Thumbnail = DefaultThumbnail
	}
	if v.Creator == "" {
		v.Creator = DefaultCreator
	}
	return v, nil
}

func parseDuration(s string) int {
	d, err := strconv.Atoi(s)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

func limit(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) > n {
		return strings.TrimSpace(string(r[:n]))
	}
	return s
}

// IDGenerator hands out timestamp ids that never repeat, even when two
// records are created within the same millisecond.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

func (s *IDGenerator) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return strconv.FormatInt(id, 10)
}
