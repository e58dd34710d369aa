package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThumbnail(t *testing.T) {
	yt := "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg"
	assert.Equal(t, yt, Thumbnail("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.Equal(t, yt, Thumbnail("https://www.youtube.com/watch?list=abc&v=dQw4w9WgXcQ"))
	assert.Equal(t, yt, Thumbnail("https://youtu.be/dQw4w9WgXcQ?t=10"))
	assert.Equal(t, yt, Thumbnail("https://www.youtube.com/embed/dQw4w9WgXcQ"))
	assert.Equal(t, yt, Thumbnail("https://youtube.com/shorts/dQw4w9WgXcQ"))
	assert.Equal(t, "https://vumbnail.com/76979871.jpg", Thumbnail("https://vimeo.com/76979871"))
	assert.Equal(t, PlaceholderThumbnail, Thumbnail("https://cdn.example.com/lesson.mp4"))
	assert.Equal(t, PlaceholderThumbnail, Thumbnail(""))
}

func TestDifficulty(t *testing.T) {
	assert.Equal(t, "Beginner", Difficulty(0))
	assert.Equal(t, "Beginner", Difficulty(5))
	assert.Equal(t, "Intermediate", Difficulty(6))
	assert.Equal(t, "Intermediate", Difficulty(15))
	assert.Equal(t, "Advanced", Difficulty(16))
}
