// Package mcp exposes the image generation gateway as an MCP (Model Context
// Protocol) server. Each catalog provider becomes one tool whose arguments
// mirror the gateway's raw input fields; calls run through the same
// validation and dispatch path the HTTP surface uses.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spetersoncode/imago/build"
	"github.com/spetersoncode/imago/catalog"
	"github.com/spetersoncode/imago/client"
)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// NewServer creates an MCP server with one generate tool per catalog
// provider, dispatching through c.
func NewServer(c *client.Client, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "imago-mcp-server",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	for _, p := range catalog.Providers() {
		tool := mcp.NewToolWithRawSchema(
			"generate_"+p.ID,
			fmt.Sprintf("Generate images with %s. Models: %s", p.Name, modelList(p)),
			toolSchema(p),
		)
		s.AddTool(tool, generateHandler(c, p.ID))
	}

	return s
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
// This is the standard transport for MCP servers invoked as subprocesses.
func ServeStdio(c *client.Client, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(c, opts...))
}

// generateHandler runs one tool call through validation and dispatch. Tool
// failures become MCP error results, not protocol errors.
func generateHandler(c *client.Client, providerID string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal arguments: %v", err)), nil
		}

		var fields build.Fields
		if err := json.Unmarshal(args, &fields); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		request, err := build.Build(providerID, fields)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := c.Dispatch(ctx, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

func modelList(p catalog.Provider) string {
	ids := make([]string, len(p.Models))
	for i, m := range p.Models {
		ids[i] = m.ID
	}
	data, _ := json.Marshal(ids)
	return string(data)
}

// toolSchema builds the JSON schema for one provider's tool, listing only
// the fields that provider's validator accepts.
func toolSchema(p catalog.Provider) json.RawMessage {
	props := map[string]any{
		"prompt": map[string]any{"type": "string", "description": "Text prompt describing the image"},
		"model":  map[string]any{"type": "string", "description": "Model id from this provider's catalog"},
	}

	switch p.ID {
	case "xai":
		props["n"] = map[string]any{"type": "integer", "description": "Number of images (1-10)"}
		props["response_format"] = map[string]any{"type": "string", "enum": []string{"url", "b64_json"}}
	case "pollinations":
		props["seed"] = map[string]any{"type": "integer"}
		props["width"] = map[string]any{"type": "integer"}
		props["height"] = map[string]any{"type": "integer"}
		props["nologo"] = map[string]any{"type": "boolean"}
		props["private"] = map[string]any{"type": "boolean"}
		props["enhance"] = map[string]any{"type": "boolean"}
	case "together":
		props["n"] = map[string]any{"type": "integer", "description": "Number of images (1-4)"}
		props["width"] = map[string]any{"type": "integer"}
		props["height"] = map[string]any{"type": "integer"}
		props["steps"] = map[string]any{"type": "integer"}
		props["response_format"] = map[string]any{"type": "string", "enum": []string{"url", "base64"}}
	case "runware":
		props["n"] = map[string]any{"type": "integer", "description": "Number of images (1-10)"}
		props["width"] = map[string]any{"type": "integer", "description": "Multiple of 64 in [64, 2048]"}
		props["height"] = map[string]any{"type": "integer", "description": "Multiple of 64 in [64, 2048]"}
		props["steps"] = map[string]any{"type": "integer"}
		props["cfg_scale"] = map[string]any{"type": "number"}
		props["seed"] = map[string]any{"type": "integer"}
		props["negative_prompt"] = map[string]any{"type": "string"}
		props["output_type"] = map[string]any{"type": "string", "enum": []string{"URL", "base64Data", "dataURI"}}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []string{"prompt", "model"},
	}
	data, _ := json.Marshal(schema)
	return data
}
