package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image information
		{
			Name:        "image_info",
			Description: "Load an image file and return its dimensions, channel count, format, and file size without changing the pipeline.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file (PNG, JPEG, GIF, or BMP)",
					},
				},
				"required": []string{"path"},
			},
		},

		// Pipeline control
		{
			Name:        "edge_load_image",
			Description: "Load an image into the edge-detection pipeline. Resets parameters to the active algorithm's defaults and computes a fresh result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file (PNG, JPEG, GIF, or BMP)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "edge_set_algorithm",
			Description: "Select the edge-detection algorithm. Resets parameters to that algorithm's defaults and recomputes immediately.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"algorithm": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"sobel", "laplacian", "canny"},
						"description": "Algorithm to activate",
					},
				},
				"required": []string{"algorithm"},
			},
		},
		{
			Name:        "edge_set_parameter",
			Description: "Set one algorithm parameter by name and recompute. If the value fails validation the pipeline reports the offending field and keeps its previous result. Parameters: kernelSize (sobel/laplacian, odd 1-31), direction (sobel: 0=x, 1=y, 2=both), lowerThreshold/upperThreshold (canny, 0-255), blurKernelSize (canny, odd >=1), sigma (canny, >=0).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Parameter name",
					},
					"value": map[string]interface{}{
						"type":        "number",
						"description": "Numeric parameter value",
					},
				},
				"required": []string{"name", "value"},
			},
		},
		{
			Name:        "edge_default_parameters",
			Description: "Return the default parameter set for an algorithm without changing the pipeline.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"algorithm": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"sobel", "laplacian", "canny"},
						"description": "Algorithm to inspect",
					},
				},
				"required": []string{"algorithm"},
			},
		},
		{
			Name:        "edge_recompute",
			Description: "Re-run validation and filtering on the current inputs. Identical inputs reproduce the identical result.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "edge_current_result",
			Description: "Return the current edge map as base64 PNG together with the algorithm and parameters that produced it. After an invalid edit this still returns the last good result, with the validation error attached.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Scale the payload to fit this display width, preserving aspect ratio. Omit for native size",
					},
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Scale the payload to fit this display height, preserving aspect ratio. Omit for native size",
					},
				},
			},
		},

		// Export
		{
			Name:        "edge_export",
			Description: "Write the current edge map to disk. Format follows the file extension: .png, .jpg/.jpeg, or .bmp.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Destination file path",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "edge_overlay",
			Description: "Render the current edge map tinted over the source image and return it as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"tint_color": map[string]interface{}{
						"type":        "string",
						"description": "Edge tint as #RRGGBB. Default #FF0000",
						"default":     "#FF0000",
					},
					"strength": map[string]interface{}{
						"type":        "number",
						"description": "Blend strength toward the tint, in (0,1]. Default 1.0",
						"default":     1.0,
					},
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Scale the payload to fit this display width, preserving aspect ratio. Omit for native size",
					},
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Scale the payload to fit this display height, preserving aspect ratio. Omit for native size",
					},
				},
			},
		},

		// Analysis
		{
			Name:        "edge_detect_lines",
			Description: "Run Hough line extraction over the current edge map and return the detected segments.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"min_length": map[string]interface{}{
						"type":        "integer",
						"description": "Shortest segment to report, in pixels. Default 20",
						"default":     20,
					},
				},
			},
		},
	}
}
