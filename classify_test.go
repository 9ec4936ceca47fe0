package resource

import (
	"mime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifierExtension(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		filename string
		want     string
	}{
		{"r1.png", "png"},
		{"Slides.PDF", "pdf"},
		{"archive.tar.gz", "gz"},
		{"README", ""},
		{"", ""},
		{"docs/index.html", "html"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Extension(tt.filename), "extension of %q", tt.filename)
	}
}

func TestClassifierMimeType(t *testing.T) {
	c := NewClassifier()

	assert.Equal(t, "image/png", c.MimeType("png"))
	assert.Equal(t, "video/mp4", c.MimeType("mp4"))
	assert.Equal(t, "audio/mpeg", c.MimeType("mp3"))
	assert.Equal(t, "application/pdf", c.MimeType("pdf"))
	assert.Equal(t, "application/octet-stream", c.MimeType("zzz"))

	// The registry has no HTML matcher; the stdlib fallback answers, with
	// whatever parameters the platform table carries.
	mediaType, _, err := mime.ParseMediaType(c.MimeType("html"))
	require.NoError(t, err)
	assert.Equal(t, "text/html", mediaType)
}

func TestClassifierMediaKind(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		ext  string
		want MediaKind
	}{
		{"png", MediaImage},
		{"jpg", MediaImage},
		{"svg", MediaImage},
		{"mp3", MediaAudio},
		{"mp4", MediaVideo},
		{"webm", MediaVideo},
		{"pdf", MediaFile},
		{"html", MediaFile},
		{"", MediaFile},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.MediaKind(tt.ext), "media kind of %q", tt.ext)
	}
}

func TestClassifierEmbeddable(t *testing.T) {
	c := NewClassifier()

	for _, ext := range []string{"png", "jpg", "gif", "svg", "mp3", "mp4", "webm"} {
		assert.True(t, c.Embeddable(ext), "%q should be embeddable", ext)
	}
	for _, ext := range []string{"pdf", "html", "doc", "zip", ""} {
		assert.False(t, c.Embeddable(ext), "%q should not be embeddable", ext)
	}
}
