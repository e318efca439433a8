// Package raster provides the image buffer type shared by the filter
// pipeline, along with loading, export, and display-scaling helpers.
//
// # Buffer Model
//
// A Buffer is an immutable raster: width, height, channel count (1 for
// grayscale, 3 for color), and 8-bit samples in row-major order with the
// origin at the top-left. A float64 grayscale plane is derived once at
// construction (ITU-R BT.601 luminance weights) and cached; all filters
// operate on that plane unless they are explicitly color-aware.
//
// Buffers are never mutated after construction. Filters allocate and return
// new Buffers, so concurrent readers need no locking.
//
// # Coordinate System
//
// Pixel coordinates are 0-based: X increases rightward, Y increases downward.
//
// # Loading and Export
//
// The Cache type decodes PNG, JPEG, GIF, and BMP files and memoizes decoded
// Buffers by path. Export encodes a Buffer back to disk; the encoding format
// follows the target file extension. Load and export failures are I/O errors
// owned by the caller (the presentation shell); they never reach the filter
// engine.
package raster
