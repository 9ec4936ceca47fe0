package resource

import "context"

// CacheManager resolves remote resource packages to local, reusable copies.
// Implementations are expected to serialize concurrent requests for the
// same package themselves.
type CacheManager interface {
	// DownloadPackage ensures the files of the keyed package are present
	// locally and returns the main file resolved to a usable local path.
	DownloadPackage(ctx context.Context, key PackageKey, files []ContentFile) (LocalFile, error)

	// PackageDirURL resolves the local cache directory URL holding the
	// package previously downloaded from pkgURL under the given site.
	// Fails when no cached copy exists or local caching is unsupported.
	PackageDirURL(ctx context.Context, siteID, pkgURL string) (string, error)
}

// FileOpener fetches a package if needed and hands its main file to the
// platform's native viewer.
type FileOpener interface {
	OpenFiles(ctx context.Context, key PackageKey, files []ContentFile) error
}

// FileOpenerFunc adapts a function to the FileOpener interface.
type FileOpenerFunc func(ctx context.Context, key PackageKey, files []ContentFile) error

func (f FileOpenerFunc) OpenFiles(ctx context.Context, key PackageKey, files []ContentFile) error {
	return f(ctx, key, files)
}

// StorageProbe reports whether local file storage is usable on the current
// platform.
type StorageProbe interface {
	StorageAvailable() bool
}

// ConnectivityProbe reports whether the device is currently online.
type ConnectivityProbe interface {
	Online() bool
}

// StorageProbeFunc adapts a function to the StorageProbe interface.
type StorageProbeFunc func() bool

func (f StorageProbeFunc) StorageAvailable() bool { return f() }

// ConnectivityProbeFunc adapts a function to the ConnectivityProbe interface.
type ConnectivityProbeFunc func() bool

func (f ConnectivityProbeFunc) Online() bool { return f() }

// Site provides the active session's identity and its authenticated
// file-access URL rewrite.
type Site interface {
	ID() string
	RewriteURL(fileURL string) string
}

// StaticSite is a Site with a fixed identifier. When Rewrite is nil, URLs
// pass through unchanged.
type StaticSite struct {
	SiteID  string
	Rewrite func(fileURL string) string
}

func (s StaticSite) ID() string { return s.SiteID }

func (s StaticSite) RewriteURL(fileURL string) string {
	if s.Rewrite != nil {
		return s.Rewrite(fileURL)
	}
	return fileURL
}

// CompletionReporter records activity and completion state after a resource
// has been presented. Both calls are fire-and-forget from this package's
// perspective.
type CompletionReporter interface {
	LogView(ctx context.Context, resourceID int64) error
	CheckCompletion(ctx context.Context, courseID, resourceID int64, completion any) error
}

// Notifier surfaces blocking progress and error messages to the user.
type Notifier interface {
	// ShowLoading displays a blocking loading indicator and returns its
	// dismiss operation. Dismiss must tolerate being called exactly once.
	ShowLoading(ctx context.Context) (dismiss func())

	// ShowError displays a default-formatted, translated error for the
	// given message key.
	ShowError(ctx context.Context, messageKey string)
}

type alwaysOnline struct{}

func (alwaysOnline) Online() bool { return true }

type nopNotifier struct{}

func (nopNotifier) ShowLoading(context.Context) func() { return func() {} }
func (nopNotifier) ShowError(context.Context, string)  {}

type nopReporter struct{}

func (nopReporter) LogView(context.Context, int64) error { return nil }

func (nopReporter) CheckCompletion(context.Context, int64, int64, any) error { return nil }
