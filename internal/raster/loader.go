package raster

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/bmp" // Register BMP format decoder
)

// Cache provides thread-safe caching of loaded Buffers to avoid redundant
// disk reads and repeated grayscale conversion.
//
// Buffers are keyed by the exact path string used to load them. Since Buffers
// are immutable, a cached Buffer can be handed to any number of concurrent
// readers.
type Cache struct {
	mu      sync.RWMutex
	buffers map[string]*Buffer
}

// NewCache creates an empty Buffer cache ready for concurrent use.
func NewCache() *Cache {
	return &Cache{buffers: make(map[string]*Buffer)}
}

// Load retrieves a Buffer from the cache or decodes it from disk.
//
// Supported formats are PNG, JPEG, GIF, and BMP. Returns an error if the file
// cannot be opened or decoded, or if the decoded image is unusable
// (ErrUnsupportedImage).
func (c *Cache) Load(path string) (*Buffer, error) {
	c.mu.RLock()
	if buf, ok := c.buffers[path]; ok {
		c.mu.RUnlock()
		return buf, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	buf, err := FromImage(img)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.buffers[path] = buf
	c.mu.Unlock()

	return buf, nil
}

// Evict removes a specific Buffer from the cache by its path.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.buffers, path)
	c.mu.Unlock()
}

// Clear removes all Buffers from the cache, freeing the associated memory.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.buffers = make(map[string]*Buffer)
	c.mu.Unlock()
}

// Info contains metadata about a loaded image file.
type Info struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Channels is 1 for grayscale sources, 3 for color.
	Channels int `json:"channels"`

	// Format is the detected image format based on file extension:
	// "png", "jpeg", "gif", "bmp", or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadInfo loads an image through the cache and returns its metadata.
func LoadInfo(cache *Cache, path string) (*Info, error) {
	buf, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".bmp":
		format = "bmp"
	}

	return &Info{
		Width:         buf.Width,
		Height:        buf.Height,
		Channels:      buf.Channels,
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
