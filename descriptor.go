package resource

import "strings"

// Component is the component tag used as part of cache keys for files
// belonging to downloadable resources.
const Component = "mod_resource"

// Resource describes one downloadable learning-content activity instance.
// Instances are transient values owned by the caller; this package never
// stores or mutates them.
type Resource struct {
	ID       int64
	CourseID int64

	// URL is the remote canonical URL of the resource package.
	URL string

	// Contents lists the files belonging to the resource. The first entry
	// is the main file and is the sole basis for presentation decisions.
	Contents []ContentFile

	// Completion is the completion-tracking status token. Its shape is
	// opaque here; it is handed to the CompletionReporter unmodified.
	Completion any
}

// MainFile returns the first content file, or false when the resource
// declares no files.
func (r *Resource) MainFile() (ContentFile, bool) {
	if r == nil || len(r.Contents) == 0 {
		return ContentFile{}, false
	}
	return r.Contents[0], true
}

// ContentFile is a single file within a resource package.
type ContentFile struct {
	FileName string

	// FilePath is the sub-path within the package. The package root is
	// denoted by "/".
	FilePath string

	// FileURL is the direct remote URL of the file, when one exists.
	FileURL string
}

// RelativePath is the file's path relative to the package directory:
// the filename, prefixed by the sub-path with its leading separator
// stripped when the sub-path is not the root.
func (f ContentFile) RelativePath() string {
	if f.FilePath == "" || f.FilePath == "/" {
		return f.FileName
	}
	return strings.TrimPrefix(f.FilePath, "/") + f.FileName
}

// DisplayMode is the stored display-mode preference of a resource.
type DisplayMode int

// Only DisplayAuto and DisplayEmbed allow embedding; any other value is
// treated as not embeddable.
const (
	DisplayAuto  DisplayMode = 0
	DisplayEmbed DisplayMode = 1
)

// PackageKey identifies a resource's file package towards the cache layer.
type PackageKey struct {
	CourseID   int64
	Component  string
	ResourceID int64

	// URL is the package's remote canonical URL, used by cache
	// implementations to index the package directory.
	URL string
}

// LocalFile is the cache layer's representative result for a downloaded
// package: the main file resolved to a usable local path.
type LocalFile struct {
	Name string
	Path string
	Size int64
}
