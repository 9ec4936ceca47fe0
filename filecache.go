package resource

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/adrg/xdg"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"
	"golang.org/x/xerrors"
)

// HTTPUserAgent is the default HTTP User-Agent header for cache downloads
const HTTPUserAgent = "github.com/coursekit/resource"

// HTTPTimeout is the default HTTP timeout for cache downloads
const HTTPTimeout = time.Second * 90

type httpClientProvider interface {
	HTTPClient(ctx context.Context) *http.Client
}

// OpenFunc hands a local file to the platform's native viewer.
type OpenFunc func(ctx context.Context, path string) error

// FileCache is the default CacheManager: it stores resource packages in
// per-URL directories on a local filesystem and streams missing files from
// their remote URLs. It also serves as the FileOpener and StorageProbe for
// helpers that are not given dedicated ones. Concurrent downloads of the
// same package are collapsed into one.
type FileCache struct {
	fs                afero.Fs
	root              string
	siteID            string
	clientProvider    httpClientProvider
	provideClientFunc func(ctx context.Context) *http.Client
	open              OpenFunc
	group             singleflight.Group
	log               zerolog.Logger
}

// NewFileCache creates a file cache. Options are matched by type: an
// afero.Fs replaces the OS filesystem, a string replaces the default root
// under the user cache directory, a Site binds the cache to that session,
// an OpenFunc replaces the native viewer launcher, and an http.Client
// provider (interface or func form) replaces the default client.
func NewFileCache(options ...any) *FileCache {
	c := &FileCache{
		fs:     afero.NewOsFs(),
		root:   filepath.Join(xdg.CacheHome, "coursekit", "filepool"),
		siteID: "default",
		open:   launchNativeViewer,
		log:    zerolog.Nop(),
	}
	c.initOptions(options...)
	return c
}

func (c *FileCache) initOptions(options ...any) {
	for _, option := range options {
		if fs, ok := option.(afero.Fs); ok {
			c.fs = fs
		}
		if root, ok := option.(string); ok {
			c.root = root
		}
		if site, ok := option.(Site); ok {
			c.siteID = site.ID()
		}
		if provider, ok := option.(httpClientProvider); ok {
			c.clientProvider = provider
		}
		if fn, ok := option.(func(ctx context.Context) *http.Client); ok {
			c.provideClientFunc = fn
		}
		if fn, ok := option.(OpenFunc); ok {
			c.open = fn
		}
		if logger, ok := option.(zerolog.Logger); ok {
			c.log = logger
		}
	}
}

func (c *FileCache) httpClient(ctx context.Context) *http.Client {
	if c.clientProvider != nil {
		return c.clientProvider.HTTPClient(ctx)
	}

	if c.provideClientFunc != nil {
		return c.provideClientFunc(ctx)
	}

	return &http.Client{
		Timeout: HTTPTimeout,
	}
}

func (c *FileCache) packageDir(siteID, pkgURL string) string {
	h := fnv.New64a()
	io.WriteString(h, pkgURL)
	return filepath.Join(c.root, siteID, fmt.Sprintf("%016x", h.Sum64()))
}

// DownloadPackage ensures all files of the package are present under its
// cache directory and returns the main file's local path. Files already
// present are not fetched again.
func (c *FileCache) DownloadPackage(ctx context.Context, key PackageKey, files []ContentFile) (LocalFile, error) {
	if len(files) == 0 {
		return LocalFile{}, noContentError(key.URL, xerrors.Caller(xErrorsFrameCaller))
	}

	dir := c.packageDir(c.siteID, key.URL)
	_, err, _ := c.group.Do(dir, func() (any, error) {
		return nil, c.fetchPackage(ctx, dir, files)
	})
	if err != nil {
		return LocalFile{}, err
	}

	main := files[0]
	dest := filepath.Join(dir, filepath.FromSlash(main.RelativePath()))
	info, err := c.fs.Stat(dest)
	if err != nil {
		return LocalFile{}, xerrors.Errorf("downloaded package is missing its main file: %w", err)
	}
	return LocalFile{Name: main.FileName, Path: dest, Size: info.Size()}, nil
}

func (c *FileCache) fetchPackage(ctx context.Context, dir string, files []ContentFile) error {
	for _, f := range files {
		dest := filepath.Join(dir, filepath.FromSlash(f.RelativePath()))
		if ok, _ := afero.Exists(c.fs, dest); ok {
			c.log.Debug().Str("file", f.FileName).Msg("cache hit")
			continue
		}
		if err := c.fetchFile(ctx, f, dest); err != nil {
			return err
		}
	}
	return nil
}

// fetchFile streams one remote file to its destination. It writes as it
// downloads instead of loading the whole file into memory.
func (c *FileCache) fetchFile(ctx context.Context, f ContentFile, dest string) error {
	if f.FileURL == "" {
		return xerrors.Errorf("no remote URL for file %s", f.FileName)
	}
	if err := c.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return xerrors.Errorf("unable to create package directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.FileURL, nil)
	if err != nil {
		return xerrors.Errorf("unable to create HTTP request: %w", err)
	}
	req.Header.Set("User-Agent", HTTPUserAgent)
	resp, err := c.httpClient(ctx).Do(req)
	if err != nil {
		return xerrors.Errorf("unable to execute HTTP GET request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return xerrors.Errorf("unexpected HTTP response status code %d for %s", resp.StatusCode, f.FileURL)
	}

	destFile, err := c.fs.Create(dest)
	if err != nil {
		return xerrors.Errorf("unable to create file: %w", err)
	}
	n, err := io.Copy(destFile, resp.Body)
	if closeErr := destFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		c.fs.Remove(dest)
		return xerrors.Errorf("copy error during file download: %w", err)
	}

	c.log.Debug().Str("file", f.FileName).Str("size", humanize.Bytes(uint64(n))).Msg("file downloaded")
	return nil
}

// PackageDirURL resolves the local directory holding the package cached
// from pkgURL under the given site. The returned path carries a trailing
// separator so callers can append relative paths to it directly.
func (c *FileCache) PackageDirURL(_ context.Context, siteID, pkgURL string) (string, error) {
	dir := c.packageDir(siteID, pkgURL)
	ok, err := afero.DirExists(c.fs, dir)
	if err != nil || !ok {
		return "", notCachedError(pkgURL, xerrors.Caller(xErrorsFrameCaller))
	}
	return dir + string(filepath.Separator), nil
}

// OpenFiles downloads the package if needed and hands its main file to the
// native viewer.
func (c *FileCache) OpenFiles(ctx context.Context, key PackageKey, files []ContentFile) error {
	local, err := c.DownloadPackage(ctx, key, files)
	if err != nil {
		return err
	}
	return c.open(ctx, local.Path)
}

// StorageAvailable probes the cache filesystem with a throwaway write.
func (c *FileCache) StorageAvailable() bool {
	if err := c.fs.MkdirAll(c.root, 0o755); err != nil {
		return false
	}
	probe, err := afero.TempFile(c.fs, c.root, ".probe-")
	if err != nil {
		return false
	}
	name := probe.Name()
	probe.Close()
	c.fs.Remove(name)
	return true
}

// launchNativeViewer asks the host desktop to open the file with its
// default application.
func launchNativeViewer(ctx context.Context, path string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	return exec.CommandContext(ctx, opener, path).Start()
}
