package utils

import (
	"fmt"
	"lms/config"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"
)

// Matches the video ID in watch, short and embed style YouTube URLs
var youtubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
}

// YoutubeVideoID extracts the 11-character video ID from a YouTube URL.
// Returns an empty string when the URL is not a recognizable YouTube link.
func YoutubeVideoID(url string) string {
	if url == "" {
		return ""
	}
	for _, pattern := range youtubeIDPatterns {
		if match := pattern.FindStringSubmatch(url); match != nil {
			return match[1]
		}
	}
	return ""
}

// YoutubeEmbedURL converts a YouTube URL to its embeddable player URL
func YoutubeEmbedURL(url string) string {
	id := YoutubeVideoID(url)
	if id == "" {
		return ""
	}
	return fmt.Sprintf("https://www.youtube.com/embed/%s", id)
}

// YoutubeThumbnailURL returns the max-resolution thumbnail for a YouTube URL
func YoutubeThumbnailURL(url string) string {
	id := YoutubeVideoID(url)
	if id == "" {
		return ""
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id)
}

// OEmbedResponse is the subset of the YouTube oEmbed payload we care about
type OEmbedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// FetchYoutubeMetadata looks up title/author/thumbnail for a YouTube URL via
// the oEmbed endpoint. Used to enrich lesson responses; failures are reported
// to the caller, which should treat the metadata as optional.
func FetchYoutubeMetadata(videoURL string) (*OEmbedResponse, error) {
	if YoutubeVideoID(videoURL) == "" {
		return nil, fmt.Errorf("not a recognizable YouTube URL: %s", videoURL)
	}

	client := resty.New().SetTimeout(5 * time.Second)

	var meta OEmbedResponse
	resp, err := client.R().
		SetQueryParams(map[string]string{
			"url":    videoURL,
			"format": "json",
		}).
		SetResult(&meta).
		Get(config.AppConfig.OEmbedURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("oembed lookup failed with status %d", resp.StatusCode())
	}

	return &meta, nil
}
