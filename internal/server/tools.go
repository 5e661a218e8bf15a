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
		// Generation
		{
			Name:        "synth_generate",
			Description: "Generate synthetic training images by compositing random object sprites onto random backgrounds at random scale and position. Writes synthetic_1.jpg ... synthetic_N.jpg and returns a run summary.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"background_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory of background images (.jpg, .png)",
					},
					"object_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory of object sprites (.png with alpha)",
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory receiving generated images; created if missing",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of images to generate. Default 100",
						"default":     100,
					},
					"scale": map[string]interface{}{
						"type":        "object",
						"description": "Uniform sprite scale range. Default {min: 0.1, max: 0.5}",
						"properties": map[string]interface{}{
							"min": map[string]interface{}{"type": "number"},
							"max": map[string]interface{}{"type": "number"},
						},
					},
					"seed": map[string]interface{}{
						"type":        "integer",
						"description": "Random seed; 0 picks a time-based seed",
					},
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Images generated concurrently. Default 1",
						"default":     1,
					},
					"jpeg_quality": map[string]interface{}{
						"type":        "integer",
						"description": "JPEG quality 1-100. Default 95",
						"default":     95,
					},
					"placement_attempts": map[string]interface{}{
						"type":        "integer",
						"description": "Scale draws per image before an oversized sprite is skipped. Default 8",
						"default":     8,
					},
				},
				"required": []string{"background_dir", "object_dir", "output_dir"},
			},
		},
		{
			Name:        "synth_list_assets",
			Description: "List the background images and object sprites that a generation run would sample from.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"background_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory of background images",
					},
					"object_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory of object sprites",
					},
				},
				"required": []string{"background_dir", "object_dir"},
			},
		},

		// Inspection
		{
			Name:        "image_load",
			Description: "Load an asset or generated image and return its dimensions, format, alpha support and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_annotate",
			Description: "Draw detector output (bounding boxes, centroids and label-score tags) over an image and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"detections": map[string]interface{}{
						"type":        "array",
						"description": "Detections: {bounds: {x1, y1, x2, y2}, class_id, score (0-100)}",
						"items": map[string]interface{}{
							"type": "object",
						},
					},
					"labels": map[string]interface{}{
						"type":        "object",
						"description": "Class id to label. Default {\"0\": \"drone\", \"1\": \"bird\"}",
					},
					"box_color": map[string]interface{}{
						"type":        "string",
						"description": "Box and tag background color. Default #00FF00",
						"default":     "#00FF00",
					},
					"text_color": map[string]interface{}{
						"type":        "string",
						"description": "Tag text color. Default #FFFFFF",
						"default":     "#FFFFFF",
					},
					"centroid_color": map[string]interface{}{
						"type":        "string",
						"description": "Centroid dot color. Default #FF00FF",
						"default":     "#FF00FF",
					},
				},
				"required": []string{"path", "detections"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *Request) *Response {
	return result(req.ID, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
