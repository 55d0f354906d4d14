package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYoutubeVideoID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"https://vimeo.com/123456", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, YoutubeVideoID(tc.url), tc.url)
	}
}

func TestYoutubeEmbedURL(t *testing.T) {
	assert.Equal(t,
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		YoutubeEmbedURL("https://youtu.be/dQw4w9WgXcQ"))
	assert.Equal(t, "", YoutubeEmbedURL("https://example.com/video"))
}

func TestYoutubeThumbnailURL(t *testing.T) {
	assert.Equal(t,
		"https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		YoutubeThumbnailURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.Equal(t, "", YoutubeThumbnailURL("not a url"))
}
