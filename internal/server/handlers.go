package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/ironsheep/edge-explorer-mcp/internal/detection"
	"github.com/ironsheep/edge-explorer-mcp/internal/filter"
	"github.com/ironsheep/edge-explorer-mcp/internal/raster"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "edge_load_image").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// Parameter validation failures are not execution errors: the pipeline
// handles them by retaining its last good result, so they come back as a
// normal status payload with the offending field named.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_info":
		return s.handleImageInfo(args)
	case "edge_load_image":
		return s.handleLoadImage(args)
	case "edge_set_algorithm":
		return s.handleSetAlgorithm(args)
	case "edge_set_parameter":
		return s.handleSetParameter(args)
	case "edge_default_parameters":
		return s.handleDefaultParameters(args)
	case "edge_recompute":
		return s.handleRecompute(args)
	case "edge_current_result":
		return s.handleCurrentResult(args)
	case "edge_export":
		return s.handleExport(args)
	case "edge_overlay":
		return s.handleOverlay(args)
	case "edge_detect_lines":
		return s.handleDetectLines(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// StatusResult reports the pipeline state after a mutation. When a parameter
// edit fails validation, State is "invalid" and Error/ErrorField carry the
// field-level message while the previous result stays available.
type StatusResult struct {
	State      string        `json:"state"`
	Algorithm  string        `json:"algorithm"`
	Parameters filter.Params `json:"parameters"`
	Error      string        `json:"error,omitempty"`
	ErrorField string        `json:"error_field,omitempty"`
}

// status snapshots the controller into a StatusResult.
func (s *Server) status() *StatusResult {
	st := &StatusResult{
		State:      s.ctrl.State().String(),
		Algorithm:  s.ctrl.Algorithm().String(),
		Parameters: s.ctrl.Parameters(),
	}
	if _, err := s.ctrl.CurrentResult(); err != nil {
		st.Error = err.Error()
		var verr *filter.ValidationError
		if errors.As(err, &verr) {
			st.ErrorField = verr.Field
		}
	}
	return st
}

// pipelineOutcome folds a controller mutation error into a status payload.
// Validation failures become part of the status; anything else (unknown
// algorithm, no image, engine failure) is a real tool error.
func (s *Server) pipelineOutcome(err error) (interface{}, error) {
	var verr *filter.ValidationError
	if err != nil && !errors.As(err, &verr) {
		return nil, err
	}
	return s.status(), nil
}

// === Image Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return raster.LoadInfo(s.cache, a.Path)
}

func (s *Server) handleLoadImage(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.pipelineOutcome(s.ctrl.LoadImage(img))
}

// === Pipeline Handlers ===

type setAlgorithmArgs struct {
	Algorithm string `json:"algorithm"`
}

func (s *Server) handleSetAlgorithm(args json.RawMessage) (interface{}, error) {
	var a setAlgorithmArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	kind, err := filter.KindFromString(a.Algorithm)
	if err != nil {
		return nil, err
	}
	return s.pipelineOutcome(s.ctrl.SetAlgorithm(kind))
}

type setParameterArgs struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func (s *Server) handleSetParameter(args json.RawMessage) (interface{}, error) {
	var a setParameterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.pipelineOutcome(s.ctrl.SetParameter(a.Name, a.Value))
}

func (s *Server) handleDefaultParameters(args json.RawMessage) (interface{}, error) {
	var a setAlgorithmArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	kind, err := filter.KindFromString(a.Algorithm)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"algorithm":  kind.String(),
		"parameters": s.ctrl.DefaultParameters(kind),
	}, nil
}

func (s *Server) handleRecompute(json.RawMessage) (interface{}, error) {
	return s.pipelineOutcome(s.ctrl.Recompute())
}

// ResultPayload carries the current edge map as base64 PNG together with the
// provenance that produced it. Width and Height describe the encoded payload,
// which may be display-scaled below the edge map's native size.
type ResultPayload struct {
	StatusResult
	ResultAlgorithm  string        `json:"result_algorithm"`
	ResultParameters filter.Params `json:"result_parameters"`
	Width            int           `json:"width"`
	Height           int           `json:"height"`
	ImageBase64      string        `json:"image_base64"`
	MimeType         string        `json:"mime_type"`
}

// displayArgs are the optional display-box arguments shared by the tools that
// return an image payload. A single positive bound makes a square box.
type displayArgs struct {
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`
}

// fit scales img into the requested display box, or returns it untouched when
// no box was requested.
func (a displayArgs) fit(img image.Image) image.Image {
	if a.MaxWidth <= 0 && a.MaxHeight <= 0 {
		return img
	}
	w, h := a.MaxWidth, a.MaxHeight
	if w <= 0 {
		w = h
	}
	if h <= 0 {
		h = w
	}
	return raster.ScaleForDisplay(img, w, h)
}

func (s *Server) handleCurrentResult(args json.RawMessage) (interface{}, error) {
	var a displayArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	result, _ := s.ctrl.CurrentResult()
	if result == nil {
		return nil, errors.New("no result computed yet")
	}

	img := a.fit(result.Edges.ToImage())
	encoded, err := encodePNG(img)
	if err != nil {
		return nil, err
	}
	return &ResultPayload{
		StatusResult:     *s.status(),
		ResultAlgorithm:  result.Kind.String(),
		ResultParameters: result.Params,
		Width:            img.Bounds().Dx(),
		Height:           img.Bounds().Dy(),
		ImageBase64:      encoded,
		MimeType:         "image/png",
	}, nil
}

// === Export Handlers ===

func (s *Server) handleExport(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	result, _ := s.ctrl.CurrentResult()
	if result == nil {
		return nil, errors.New("no result to export")
	}
	if err := raster.Export(result.Edges, a.Path); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"path":      a.Path,
		"algorithm": result.Kind.String(),
		"width":     result.Edges.Width,
		"height":    result.Edges.Height,
	}, nil
}

type overlayArgs struct {
	displayArgs
	TintColor string  `json:"tint_color"`
	Strength  float64 `json:"strength"`
}

func (s *Server) handleOverlay(args json.RawMessage) (interface{}, error) {
	a := overlayArgs{TintColor: "#FF0000", Strength: 1.0}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	result, _ := s.ctrl.CurrentResult()
	if result == nil {
		return nil, errors.New("no result to overlay")
	}
	src := s.ctrl.Image()
	if src == nil {
		return nil, errors.New("no image loaded")
	}

	img, err := raster.Overlay(src, result.Edges, a.TintColor, a.Strength)
	if err != nil {
		return nil, err
	}
	img = a.fit(img)

	encoded, err := encodePNG(img)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"width":        img.Bounds().Dx(),
		"height":       img.Bounds().Dy(),
		"tint_color":   a.TintColor,
		"image_base64": encoded,
		"mime_type":    "image/png",
	}, nil
}

// === Detection Handlers ===

type detectLinesArgs struct {
	MinLength int `json:"min_length"`
}

func (s *Server) handleDetectLines(args json.RawMessage) (interface{}, error) {
	a := detectLinesArgs{MinLength: 20}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	result, _ := s.ctrl.CurrentResult()
	if result == nil {
		return nil, errors.New("no edge map to analyze")
	}
	return detection.DetectLines(result.Edges, a.MinLength)
}

// encodePNG encodes an image as base64 PNG.
func encodePNG(img image.Image) (string, error) {
	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b.Bytes()), nil
}
