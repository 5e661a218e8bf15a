package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/synthgen/internal/corpus"
	"github.com/ironsheep/synthgen/internal/detection"
	"github.com/ironsheep/synthgen/internal/imaging"
	"github.com/ironsheep/synthgen/internal/synth"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "synth_generate", "image_load").
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
func (s *Server) handleToolsCall(req *Request) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	out, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return result(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(out),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Generation
	case "synth_generate":
		return s.handleSynthGenerate(args)
	case "synth_list_assets":
		return s.handleSynthListAssets(args)

	// Inspection
	case "image_load":
		return s.handleImageLoad(args)
	case "image_annotate":
		return s.handleImageAnnotate(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Generation Handlers ===

// handleSynthGenerate runs a batch. Arguments use the synth.Config JSON
// fields; anything omitted keeps its default.
func (s *Server) handleSynthGenerate(args json.RawMessage) (interface{}, error) {
	cfg := synth.DefaultConfig()
	if err := json.Unmarshal(args, &cfg); err != nil {
		return nil, err
	}

	gen, err := synth.NewGenerator(cfg, nil)
	if err != nil {
		return nil, err
	}
	summary, err := gen.Run(context.Background())

	// Outputs may overwrite files a previous call cached.
	if summary != nil {
		for _, p := range summary.Outputs {
			s.cache.Evict(p)
		}
	}

	var we *synth.WriteError
	if errors.As(err, &we) {
		return nil, fmt.Errorf("%w (%d written before failure)", err, summary.Written)
	}
	if err != nil {
		return nil, err
	}
	return summary, nil
}

type synthListAssetsArgs struct {
	BackgroundDir string `json:"background_dir"`
	ObjectDir     string `json:"object_dir"`
}

type synthListAssetsResult struct {
	Backgrounds     []string `json:"backgrounds"`
	Objects         []string `json:"objects"`
	BackgroundCount int      `json:"background_count"`
	ObjectCount     int      `json:"object_count"`
}

func (s *Server) handleSynthListAssets(args json.RawMessage) (interface{}, error) {
	var a synthListAssetsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return listAssets(corpus.NewDirRegistry(a.BackgroundDir, a.ObjectDir))
}

// listAssets lists both kinds without treating an empty list as an error,
// so a caller can see which directory is empty.
func listAssets(r corpus.Registry) (*synthListAssetsResult, error) {
	bgs, err := r.Backgrounds()
	if err != nil {
		return nil, err
	}
	objs, err := r.Objects()
	if err != nil {
		return nil, err
	}
	return &synthListAssetsResult{
		Backgrounds:     bgs,
		Objects:         objs,
		BackgroundCount: len(bgs),
		ObjectCount:     len(objs),
	}, nil
}

// === Inspection Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageAnnotateArgs struct {
	Path          string                `json:"path"`
	Detections    []detection.Detection `json:"detections"`
	Labels        map[int]string        `json:"labels"`
	BoxColor      string                `json:"box_color"`
	TextColor     string                `json:"text_color"`
	CentroidColor string                `json:"centroid_color"`
}

func (s *Server) handleImageAnnotate(args json.RawMessage) (interface{}, error) {
	a := imageAnnotateArgs{
		BoxColor:      detection.DefaultBoxHex,
		TextColor:     detection.DefaultTextHex,
		CentroidColor: detection.DefaultCentroidHex,
	}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	for i, d := range a.Detections {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("detection %d: %w", i, err)
		}
	}

	palette, err := detection.ParsePalette(a.BoxColor, a.TextColor, a.CentroidColor)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNGBase64(detection.Annotate(img, a.Detections, a.Labels, palette))
}
