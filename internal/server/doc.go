// Package server implements the MCP (Model Context Protocol) surface of the
// edge-detection pipeline.
//
// This package provides a JSON-RPC 2.0 server that plays the presentation
// shell's counterpart: it loads images into the pipeline controller, relays
// algorithm and parameter changes, and returns the recomputed edge map after
// every change.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Pipeline control:
//   - edge_load_image: Load an image and compute a first result
//   - edge_set_algorithm: Switch between sobel, laplacian, and canny
//   - edge_set_parameter: Adjust one parameter and recompute
//   - edge_default_parameters: Inspect an algorithm's defaults
//   - edge_recompute: Re-run the current configuration
//   - edge_current_result: Fetch the current edge map with provenance
//
// Output:
//   - edge_export: Write the edge map to disk
//   - edge_overlay: Tint the edge map over the source image
//   - edge_detect_lines: Hough line extraction on the edge map
//
// Utility:
//   - image_info: Image metadata without touching the pipeline
//
// # Error Handling
//
// Parameter validation failures are part of the pipeline contract, not tool
// failures: the response is a normal status payload naming the offending
// field, and the previously computed result remains retrievable. I/O and
// protocol problems are returned as JSON-RPC errors with code -32000 or the
// standard JSON-RPC codes.
package server
