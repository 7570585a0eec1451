package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/OpticalFlyer/canvasui/ui"
)

const (
	// maxImageBytes caps a single image download
	maxImageBytes = 32 << 20
	fetchTimeout  = 30 * time.Second
	userAgent     = "canvasui/1.0"
)

// Handle is an image that may still be loading. It satisfies ui.Image.
type Handle struct {
	src string

	mu     sync.RWMutex
	img    image.Image
	err    error
	loaded bool
}

var _ ui.Image = (*Handle)(nil)

// Source returns the string the handle was requested with.
func (h *Handle) Source() string { return h.src }

// Size returns the natural pixel size, (0, 0) until loaded.
func (h *Handle) Size() (int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.loaded {
		return 0, 0
	}
	b := h.img.Bounds()
	return b.Dx(), b.Dy()
}

func (h *Handle) Loaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loaded
}

// Pixels returns the decoded image, nil until loaded.
func (h *Handle) Pixels() image.Image {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.img
}

// Err returns the load failure, if any. A failed handle never becomes loaded.
func (h *Handle) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// Loader fetches images by source string and caches them. Sources starting
// with http:// or https:// are downloaded, anything else is read from disk.
type Loader struct {
	// OnLoad is called from the fetching goroutine once an image is ready.
	OnLoad func(src string)

	client *http.Client
	log    *zap.Logger

	cacheMu sync.Mutex
	cache   map[string]*Handle
	pending sync.WaitGroup
}

var _ ui.ImageSource = (*Loader)(nil)

// NewLoader creates a loader. A nil client uses a client with a timeout.
func NewLoader(client *http.Client, log *zap.Logger) *Loader {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		client: client,
		log:    log,
		cache:  make(map[string]*Handle),
	}
}

// Image returns the handle for src, starting the fetch on first request.
// It never blocks.
func (l *Loader) Image(src string) ui.Image {
	return l.Handle(src)
}

// Handle is Image with the concrete type.
func (l *Loader) Handle(src string) *Handle {
	l.cacheMu.Lock()
	defer l.cacheMu.Unlock()

	if h, found := l.cache[src]; found {
		return h
	}
	h := &Handle{src: src}
	l.cache[src] = h

	l.pending.Add(1)
	go l.fetchAndCache(h)
	return h
}

// Wait blocks until every fetch started so far finished or ctx is done.
func (l *Loader) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		l.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fetchAndCache loads a single image into its handle
func (l *Loader) fetchAndCache(h *Handle) {
	defer l.pending.Done()

	img, err := l.fetch(h.src)
	if err != nil {
		l.log.Warn("Unable to load image", zap.String("src", h.src), zap.Error(err))
		h.mu.Lock()
		h.err = err
		h.mu.Unlock()
		return
	}

	h.mu.Lock()
	h.img = img
	h.loaded = true
	h.mu.Unlock()

	b := img.Bounds()
	l.log.Debug("Image loaded", zap.String("src", h.src), zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	if l.OnLoad != nil {
		l.OnLoad(h.src)
	}
}

func (l *Loader) fetch(src string) (image.Image, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		data, err = l.download(src)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, err
	}

	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("%s is not an image (detected %q)", src, kind.MIME.Value)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image %s failed: %w", src, err)
	}
	return img, nil
}

func (l *Loader) download(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s failed: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image %s: %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s failed: %w", url, err)
	}
	return data, nil
}
