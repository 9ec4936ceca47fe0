package resource

import (
	"mime"
	"path"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/h2non/filetype/types"
)

// MediaKind is the general media category of a file extension.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaAudio MediaKind = "audio"
	MediaVideo MediaKind = "video"
	MediaFile  MediaKind = "file"
)

// Classifier derives presentation-relevant facts from filenames and
// extensions. Implementations must be pure and total: any input yields an
// answer, never an error.
type Classifier interface {
	Extension(filename string) string
	MimeType(ext string) string
	MediaKind(ext string) MediaKind
	Embeddable(ext string) bool
}

// NewClassifier returns the default extension classifier, backed by the
// filetype registry with a stdlib mime fallback for text formats the
// registry does not sniff.
func NewClassifier() Classifier {
	return classifier{}
}

type classifier struct{}

// embeddableExts are the extensions renderable inline by a web view:
// the registry's image, audio and video matchers plus SVG, which has no
// magic-number matcher.
var embeddableExts = func() map[string]bool {
	m := map[string]bool{"svg": true}
	for _, kind := range []matchers.Map{matchers.Image, matchers.Audio, matchers.Video} {
		for t := range kind {
			m[t.Extension] = true
		}
	}
	return m
}()

func (classifier) Extension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
}

func (classifier) MimeType(ext string) string {
	if t := filetype.GetType(ext); t != types.Unknown {
		return t.MIME.Value
	}
	if mt := mime.TypeByExtension("." + ext); mt != "" {
		return mt
	}
	return "application/octet-stream"
}

func (classifier) MediaKind(ext string) MediaKind {
	if ext == "svg" {
		return MediaImage
	}
	switch filetype.GetType(ext).MIME.Type {
	case "image":
		return MediaImage
	case "audio":
		return MediaAudio
	case "video":
		return MediaVideo
	}
	return MediaFile
}

func (classifier) Embeddable(ext string) bool {
	return embeddableExts[ext]
}
