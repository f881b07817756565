package models

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

type Category string

const (
	CategoryAll        Category = "All"
	CategoryNature     Category = "Nature"
	CategoryTechnology Category = "Technology"
	CategoryMusic      Category = "Music"
	CategoryTravel     Category = "Travel"
	CategoryEducation  Category = "Education"
)

// Categories lists every category in display order, "All" first.
var Categories = []Category{
	CategoryAll,
	CategoryNature,
	CategoryTechnology,
	CategoryMusic,
	CategoryTravel,
	CategoryEducation,
}

// EditableCategories are the categories a record may belong to.
var EditableCategories = Categories[1:]

func (c Category) String() string {
	return string(c)
}

func (c Category) Editable() bool {
	for _, e := range EditableCategories {
		if c == e {
			return true
		}
	}
	return false
}

// ParseCategory returns All for unknown values.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryAll
}

type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Duration    int       `json:"duration"`
	Thumbnail   string    `json:"thumbnail"`
	VideoURL    string    `json:"videoUrl"`
	Creator     string    `json:"creator"`
	Views       string    `json:"views"`
	UploadedAt  string    `json:"uploadedAt"`
	AddedAt     time.Time `json:"-"`
}

// Recency is the upload age shown on cards. Records added during the
// session age in place, seed records keep their static label.
func (v *Video) Recency() string {
	if v.AddedAt.IsZero() {
		return v.UploadedAt
	}
	if time.Since(v.AddedAt) < time.Minute {
		return v.UploadedAt
	}
	return humanize.Time(v.AddedAt)
}

func (v *Video) FormattedDuration() string {
	return FormatDuration(v.Duration)
}

func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
