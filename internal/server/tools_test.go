package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_info",
		"edge_load_image",
		"edge_set_algorithm",
		"edge_set_parameter",
		"edge_default_parameters",
		"edge_recompute",
		"edge_current_result",
		"edge_export",
		"edge_overlay",
		"edge_detect_lines",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		tool, ok := toolMap[name]
		if !ok {
			t.Errorf("missing tool: %s", name)
			continue
		}
		if tool.Description == "" {
			t.Errorf("%s: empty description", name)
		}
		if tool.InputSchema == nil {
			t.Errorf("%s: nil input schema", name)
			continue
		}
		if tool.InputSchema["type"] != "object" {
			t.Errorf("%s: schema type = %v, want object", name, tool.InputSchema["type"])
		}
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}
}

func TestGetToolDefinitions_EveryToolDispatches(t *testing.T) {
	s := New()
	for _, tool := range GetToolDefinitions() {
		// Every advertised tool must be wired into executeTool. Calls fail
		// for other reasons here (no image, missing args), but a dispatch
		// gap surfaces as "unknown tool".
		_, err := s.executeTool(tool.Name, []byte(`{}`))
		if err != nil && err.Error() == "unknown tool: "+tool.Name {
			t.Errorf("%s is advertised but not dispatched", tool.Name)
		}
	}
}
