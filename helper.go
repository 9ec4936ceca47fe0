package resource

import (
	"context"
	"mime"

	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// Helper decides how a resource should be presented and orchestrates the
// download/open workflow for it. It holds no state of its own beyond the
// collaborators it was constructed with; every operation is computed fresh
// from its arguments.
type Helper struct {
	classifier Classifier
	cache      CacheManager
	opener     FileOpener
	storage    StorageProbe
	network    ConnectivityProbe
	site       Site
	completion CompletionReporter
	notifier   Notifier
	log        zerolog.Logger
}

// NewHelper creates a presentation helper wired to the given collaborators.
// Options are matched by the interfaces they satisfy; one value may serve
// several roles. Missing collaborators fall back to defaults: the built-in
// classifier, a FileCache under the user cache directory, an always-online
// probe, a pass-through site and silent notification/reporting.
func NewHelper(options ...any) *Helper {
	h := &Helper{
		classifier: NewClassifier(),
		network:    alwaysOnline{},
		site:       StaticSite{SiteID: "default"},
		completion: nopReporter{},
		notifier:   nopNotifier{},
		log:        zerolog.Nop(),
	}
	h.initOptions(options...)
	return h
}

func (h *Helper) initOptions(options ...any) {
	for _, option := range options {
		if instance, ok := option.(Classifier); ok {
			h.classifier = instance
		}
		if instance, ok := option.(CacheManager); ok {
			h.cache = instance
		}
		if instance, ok := option.(FileOpener); ok {
			h.opener = instance
		}
		if instance, ok := option.(StorageProbe); ok {
			h.storage = instance
		}
		if instance, ok := option.(ConnectivityProbe); ok {
			h.network = instance
		}
		if instance, ok := option.(Site); ok {
			h.site = instance
		}
		if instance, ok := option.(CompletionReporter); ok {
			h.completion = instance
		}
		if instance, ok := option.(Notifier); ok {
			h.notifier = instance
		}
		if logger, ok := option.(zerolog.Logger); ok {
			h.log = logger
		}
	}

	if h.cache == nil {
		h.cache = NewFileCache()
	}
	if h.opener == nil {
		if opener, ok := h.cache.(FileOpener); ok {
			h.opener = opener
		} else {
			h.opener = FileOpenerFunc(func(context.Context, PackageKey, []ContentFile) error {
				return xerrors.New("no file opener configured")
			})
		}
	}
	if h.storage == nil {
		if probe, ok := h.cache.(StorageProbe); ok {
			h.storage = probe
		} else {
			h.storage = StorageProbeFunc(func() bool { return true })
		}
	}
}

func (h *Helper) packageKey(res *Resource, courseID int64) PackageKey {
	return PackageKey{
		CourseID:   courseID,
		Component:  Component,
		ResourceID: res.ID,
		URL:        res.URL,
	}
}

// ShouldEmbed reports whether the resource's main file should be rendered
// as inline markup. True only when the display mode allows embedding, the
// main file's extension is embeddable and local storage is usable.
func (h *Helper) ShouldEmbed(res *Resource, mode DisplayMode) bool {
	main, ok := res.MainFile()
	if !ok || !h.storage.StorageAvailable() {
		return false
	}
	if mode != DisplayAuto && mode != DisplayEmbed {
		return false
	}
	return h.classifier.Embeddable(h.classifier.Extension(main.FileName))
}

// ShouldIframe reports whether the resource's main file should be rendered
// in an in-app iframe, which is the case exactly for HTML content.
//
// Embed and iframe eligibility are not mutually exclusive by construction;
// callers must check ShouldIframe only after ShouldEmbed returned false.
func (h *Helper) ShouldIframe(res *Resource) bool {
	main, ok := res.MainFile()
	if !ok || !h.storage.StorageAvailable() {
		return false
	}
	mt, _, err := mime.ParseMediaType(h.classifier.MimeType(h.classifier.Extension(main.FileName)))
	return err == nil && mt == "text/html"
}

// EmbedMarkup downloads the resource's files through the cache layer and
// returns inline markup embedding the main file: an img tag for images, an
// audio/video tag with a nested source for playable media, and an empty
// string for anything else. A download failure is returned as-is.
func (h *Helper) EmbedMarkup(ctx context.Context, res *Resource) (string, error) {
	main, ok := res.MainFile()
	if !ok {
		return "", noContentError(res.URL, xerrors.Caller(xErrorsFrameCaller))
	}

	local, err := h.cache.DownloadPackage(ctx, h.packageKey(res, res.CourseID), res.Contents)
	if err != nil {
		return "", err
	}

	ext := h.classifier.Extension(main.FileName)
	kind := h.classifier.MediaKind(ext)
	return embedMarkup(kind, local.Path, main.FileName, h.classifier.MimeType(ext)), nil
}

// IframeSource resolves the path or URL an iframe should point at for the
// resource's main file. It prefers the locally cached package directory,
// degrades to the authenticated remote URL when online, and fails with
// ErrNoSource when neither is possible.
//
// The returned value is meant for direct injection into a rendering
// surface; marking it as a trusted resource URL is the caller's concern.
func (h *Helper) IframeSource(ctx context.Context, res *Resource) (string, error) {
	main, ok := res.MainFile()
	if !ok {
		return "", noContentError(res.URL, xerrors.Caller(xErrorsFrameCaller))
	}

	dir, err := h.cache.PackageDirURL(ctx, h.site.ID(), res.URL)
	if err == nil {
		// Literal concatenation: the directory URL carries its own
		// trailing separator when one is needed.
		return dir + main.RelativePath(), nil
	}
	h.log.Debug().Err(err).Str("url", res.URL).Msg("no cached package dir, trying remote fallback")

	if h.network.Online() && main.FileURL != "" {
		return h.site.RewriteURL(main.FileURL), nil
	}
	return "", noSourceError(res.URL, xerrors.Caller(xErrorsFrameCaller))
}

// OpenFile downloads the resource's files if needed and hands the main file
// to the platform's native viewer, reporting the view afterwards.
//
// A blocking loading indicator is shown before any I/O starts and dismissed
// on every exit path. A failure of the download/open step is absorbed into
// a user notification keyed by ErrMsgResourceLoad and OpenFile still
// returns nil: callers cannot distinguish "opened" from "failed but
// notified" by the result alone. View logging and the completion check run
// detached after a successful open, in that order, and their failures are
// never surfaced.
func (h *Helper) OpenFile(ctx context.Context, res *Resource, courseID int64) error {
	dismiss := h.notifier.ShowLoading(ctx)
	defer dismiss()

	if err := h.opener.OpenFiles(ctx, h.packageKey(res, courseID), res.Contents); err != nil {
		h.log.Debug().Err(err).Int64("resource", res.ID).Msg("open failed, notifying user")
		h.notifier.ShowError(ctx, ErrMsgResourceLoad)
		return nil
	}

	go h.reportViewed(context.WithoutCancel(ctx), res, courseID)
	return nil
}

// reportViewed logs the view event and then asks for a completion-status
// evaluation. A failed view log skips the completion check.
func (h *Helper) reportViewed(ctx context.Context, res *Resource, courseID int64) {
	if err := h.completion.LogView(ctx, res.ID); err != nil {
		h.log.Debug().Err(err).Int64("resource", res.ID).Msg("view log failed")
		return
	}
	if err := h.completion.CheckCompletion(ctx, courseID, res.ID, res.Completion); err != nil {
		h.log.Debug().Err(err).Int64("resource", res.ID).Msg("completion check failed")
	}
}
