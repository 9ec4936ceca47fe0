package resource

import "fmt"

// embedMarkup builds the inline markup embedding a local file. The empty
// string for non-media kinds is a defensive default: callers are expected
// to have confirmed embeddability first.
func embedMarkup(kind MediaKind, localPath, fileName, mimeType string) string {
	switch kind {
	case MediaImage:
		return fmt.Sprintf("<img src=%q></img>", localPath)
	case MediaAudio, MediaVideo:
		return fmt.Sprintf("<%[1]s title=%[2]q controls=\"true\"><source src=%[3]q type=%[4]q></%[1]s>",
			kind, fileName, localPath, mimeType)
	}
	return ""
}
