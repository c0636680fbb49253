package cloud

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/nuage/kit"
)

type generateReq struct {
	Text     string `json:"text"`
	MaxWords int    `json:"max_words,omitempty"`
	Colormap string `json:"colormap,omitempty"`
}

// RegisterMCP registers the cloud generation tool on an MCP server.
func (g *Generator) RegisterMCP(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "cloud_generate",
		Description: "Generate a word cloud from text: weighted word list plus a base64 PNG.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text":      map[string]any{"type": "string", "description": "Normalized input text"},
				"max_words": map[string]any{"type": "integer", "description": "Word cap, 1-1000 (default 200)"},
				"colormap":  map[string]any{"type": "string", "description": "Color scheme name"},
			},
			"required": []string{"text"},
		},
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*generateReq)
		c, err := g.Generate(ctx, r.Text, Options{MaxWords: r.MaxWords, Colormap: r.Colormap})
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"words": c.Words,
			"png":   base64.StdEncoding.EncodeToString(c.PNG),
		}, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r generateReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
