package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{65, "1:05"},
		{596, "9:56"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-10, "0:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryTravel, ParseCategory("Travel"))
	assert.Equal(t, CategoryAll, ParseCategory("All"))
	assert.Equal(t, CategoryAll, ParseCategory(""))
	assert.Equal(t, CategoryAll, ParseCategory("travel"))
	assert.True(t, CategoryMusic.Editable())
	assert.False(t, CategoryAll.Editable())
	assert.Len(t, EditableCategories, len(Categories)-1)
}

func TestVideo_Recency(t *testing.T) {
	seed := Video{UploadedAt: "2 years ago"}
	assert.Equal(t, "2 years ago", seed.Recency())

	fresh := Video{UploadedAt: "Just now", AddedAt: time.Now()}
	assert.Equal(t, "Just now", fresh.Recency())

	older := Video{UploadedAt: "Just now", AddedAt: time.Now().Add(-2 * time.Hour)}
	assert.Equal(t, "2 hours ago", older.Recency())
}

func TestSeedVideos(t *testing.T) {
	vs := SeedVideos()
	require.Len(t, vs, 12)
	ids := map[string]bool{}
	for _, v := range vs {
		assert.False(t, ids[v.ID], "duplicate id %v", v.ID)
		ids[v.ID] = true
		assert.True(t, v.Category.Editable(), v.ID)
		assert.GreaterOrEqual(t, v.Duration, 0)
		assert.NotEmpty(t, v.VideoURL)
	}
}
