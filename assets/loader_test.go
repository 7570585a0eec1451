package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 0xff, G: 0x40, B: 0x86, A: 0xff})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func wait(t *testing.T, l *Loader) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("waiting for loader: %v", err)
	}
}

func TestLoaderHTTP(t *testing.T) {
	data := encodePNG(t, 64, 32)
	var hits atomic.Int32
	var agent atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		agent.Store(r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer server.Close()

	var mu sync.Mutex
	var loaded []string
	l := NewLoader(server.Client(), nil)
	l.OnLoad = func(src string) {
		mu.Lock()
		loaded = append(loaded, src)
		mu.Unlock()
	}

	src := server.URL + "/tile.png"
	h := l.Handle(src)
	if again := l.Handle(src); again != h {
		t.Error("second request returned a different handle")
	}
	wait(t, l)

	if !h.Loaded() {
		t.Fatalf("handle not loaded: %v", h.Err())
	}
	if w, hh := h.Size(); w != 64 || hh != 32 {
		t.Errorf("size = %dx%d; want 64x32", w, hh)
	}
	if h.Pixels() == nil {
		t.Error("pixels missing")
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hit %d times; want 1", n)
	}
	if got := agent.Load(); got != userAgent {
		t.Errorf("user agent = %v; want %q", got, userAgent)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(loaded) != 1 || loaded[0] != src {
		t.Errorf("OnLoad calls = %v", loaded)
	}
}

func TestLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	if err := os.WriteFile(path, encodePNG(t, 10, 20), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(nil, nil)
	img := l.Image(path)
	wait(t, l)

	if !img.Loaded() {
		t.Fatal("file image not loaded")
	}
	if w, h := img.Size(); w != 10 || h != 20 {
		t.Errorf("size = %dx%d; want 10x20", w, h)
	}
}

func TestLoaderFailuresStayUnloaded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/text":
			w.Write([]byte("definitely not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	called := false
	l := NewLoader(server.Client(), nil)
	l.OnLoad = func(string) { called = true }

	tests := []string{
		server.URL + "/missing.png",
		server.URL + "/text",
		filepath.Join(t.TempDir(), "nope.png"),
	}
	handles := make([]*Handle, len(tests))
	for i, src := range tests {
		handles[i] = l.Handle(src)
	}
	wait(t, l)

	for i, h := range handles {
		if h.Loaded() {
			t.Errorf("%s loaded", tests[i])
		}
		if h.Err() == nil {
			t.Errorf("%s has no error", tests[i])
		}
		if w, hh := h.Size(); w != 0 || hh != 0 {
			t.Errorf("%s size = %dx%d; want 0x0", tests[i], w, hh)
		}
	}
	if called {
		t.Error("OnLoad called for a failed image")
	}
}
