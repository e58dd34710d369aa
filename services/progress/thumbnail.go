package progress

import (
	"regexp"
	"strings"
)

// PlaceholderThumbnail is returned for providers we cannot derive a still from.
const PlaceholderThumbnail = "https://placehold.co/640x360?text=Video"

var (
	youtubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com|youtube-nocookie\.com)/(?:watch\?(?:.*&)?v=|embed/|shorts/|v/)([A-Za-z0-9_-]{6,})`),
		regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{6,})`),
	}
	vimeoPattern = regexp.MustCompile(`vimeo\.com/(?:video/)?(\d+)`)
)

// Thumbnail derives a preview image URL from a video's external URL.
func Thumbnail(videoURL string) string {
	u := strings.TrimSpace(videoURL)
	if u == "" {
		return PlaceholderThumbnail
	}
	for _, re := range youtubePatterns {
		if m := re.FindStringSubmatch(u); m != nil {
			return "https://img.youtube.com/vi/" + m[1] + "/hqdefault.jpg"
		}
	}
	if m := vimeoPattern.FindStringSubmatch(u); m != nil {
		return "https://vumbnail.com/" + m[1] + ".jpg"
	}
	return PlaceholderThumbnail
}

// Difficulty is a presentation label derived from the number of videos.
func Difficulty(videoCount int) string {
	switch {
	case videoCount <= 5:
		return "Beginner"
	case videoCount <= 15:
		return "Intermediate"
	default:
		return "Advanced"
	}
}
