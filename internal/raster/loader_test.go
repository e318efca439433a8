package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a solid-color PNG into a temp dir and returns its path.
func writeTestPNG(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestCache_Load(t *testing.T) {
	cache := NewCache()
	path := writeTestPNG(t, 20, 10, color.RGBA{128, 128, 128, 255})

	buf, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if buf.Width != 20 || buf.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", buf.Width, buf.Height)
	}
}

func TestCache_ReturnsCachedBuffer(t *testing.T) {
	cache := NewCache()
	path := writeTestPNG(t, 8, 8, color.White)

	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Remove the file; a cache hit must not touch the disk.
	os.Remove(path)

	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if first != second {
		t.Error("Load returned a different buffer for a cached path")
	}
}

func TestCache_Evict(t *testing.T) {
	cache := NewCache()
	path := writeTestPNG(t, 8, 8, color.White)

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(path)
	os.Remove(path)

	if _, err := cache.Load(path); err == nil {
		t.Error("expected load failure after eviction of a deleted file")
	}
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache()
	path := writeTestPNG(t, 8, 8, color.White)

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Clear()
	os.Remove(path)

	if _, err := cache.Load(path); err == nil {
		t.Error("expected load failure after clearing the cache")
	}
}

func TestCache_LoadMissingFile(t *testing.T) {
	cache := NewCache()
	if _, err := cache.Load("/nonexistent/image.png"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInfo(t *testing.T) {
	cache := NewCache()
	path := writeTestPNG(t, 30, 20, color.RGBA{255, 0, 0, 255})

	info, err := LoadInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadInfo failed: %v", err)
	}

	if info.Width != 30 || info.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", info.Width, info.Height)
	}
	if info.Channels != 3 {
		t.Errorf("channels: got %d, want 3", info.Channels)
	}
	if info.Format != "png" {
		t.Errorf("format: got %q, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("file size: got %d, want > 0", info.FileSizeBytes)
	}
}
