package backdrop

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gregjones/httpcache"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

// Loader starts loading an image source off-screen. Load returns a fresh
// future on every call. The future resolves once the image is decoded; a
// source that cannot be loaded leaves it unresolved.
type Loader interface {
	Load(src string) *Future[image.Image]
}

// Fetcher loads and decodes an image synchronously.
type Fetcher interface {
	Fetch(ctx context.Context, src string) (image.Image, error)
}

// LoaderFunc adapts a plain function to Loader.
type LoaderFunc func(src string) *Future[image.Image]

// Load calls f(src).
func (f LoaderFunc) Load(src string) *Future[image.Image] { return f(src) }

// AssetLoader reads images from disk or over HTTP. Decoded images are cached
// by source, and concurrent requests for the same source share one fetch.
// HTTP responses pass through an in-memory RFC 7234 cache.
type AssetLoader struct {
	// BaseDir resolves relative file paths. Empty means the working directory.
	BaseDir string
	// Timeout, when positive, bounds each background load started by Load.
	// Zero leaves loads unbounded.
	Timeout time.Duration

	client *http.Client
	group  singleflight.Group

	mu    sync.Mutex
	cache map[string]image.Image
}

// NewAssetLoader returns a loader rooted at baseDir.
func NewAssetLoader(baseDir string) *AssetLoader {
	return &AssetLoader{
		BaseDir: baseDir,
		client:  &http.Client{Transport: httpcache.NewMemoryCacheTransport()},
		cache:   make(map[string]image.Image),
	}
}

// Cached returns the decoded image for src if it has been loaded.
func (l *AssetLoader) Cached(src string) (image.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	img, ok := l.cache[src]
	return img, ok
}

// Load implements Loader. A cached image resolves the future before Load
// returns; otherwise the fetch runs on its own goroutine. Failures are logged
// at debug level and the future never resolves.
func (l *AssetLoader) Load(src string) *Future[image.Image] {
	f := NewFuture[image.Image]()
	if img, ok := l.Cached(src); ok {
		f.Resolve(img)
		return f
	}
	log := logger
	go func() {
		ctx := context.Background()
		if l.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, l.Timeout)
			defer cancel()
		}
		img, err := l.Fetch(ctx, src)
		if err != nil {
			log.Debug("image load failed", "src", src, "err", err)
			return
		}
		log.Debug("image loaded", "src", src)
		f.Resolve(img)
	}()
	return f
}

// Fetch implements Fetcher.
func (l *AssetLoader) Fetch(ctx context.Context, src string) (image.Image, error) {
	if img, ok := l.Cached(src); ok {
		return img, nil
	}
	v, err, _ := l.group.Do(src, func() (any, error) {
		img, err := l.fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[src] = img
		l.mu.Unlock()
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

func (l *AssetLoader) fetch(ctx context.Context, src string) (image.Image, error) {
	if src == "" {
		return nil, fmt.Errorf("backdrop: empty image source")
	}
	if isRemote(src) {
		return l.fetchHTTP(ctx, src)
	}
	return l.fetchFile(src)
}

func (l *AssetLoader) fetchHTTP(ctx context.Context, src string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("backdrop: request %s: %w", src, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backdrop: get %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backdrop: get %s: %s", src, resp.Status)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backdrop: decode %s: %w", src, err)
	}
	return img, nil
}

func (l *AssetLoader) fetchFile(src string) (image.Image, error) {
	path := src
	if !filepath.IsAbs(path) && l.BaseDir != "" {
		path = filepath.Join(l.BaseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("backdrop: open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("backdrop: decode %s: %w", path, err)
	}
	return img, nil
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
