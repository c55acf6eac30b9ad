package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gtonic/apibridge/pkg/rest"
	"github.com/gtonic/apibridge/pkg/tool"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/cors"
)

// Run serves the provider's tools over MCP. With an empty addr the
// server speaks stdio; otherwise it listens for SSE clients on addr.
func Run(ctx context.Context, provider tool.Provider, addr string) error {
	tools, err := provider.Tools(ctx)

	if err != nil {
		return err
	}

	s := server.NewMCPServer(
		"apibridge",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	for _, t := range tools {
		schema, _ := json.Marshal(t.Schema)

		tool := mcp.Tool{
			Name:           t.Name,
			Description:    t.Description,
			RawInputSchema: schema,
		}

		s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := convertArgs(request.Params.Arguments)

			if err != nil {
				return nil, err
			}

			result, err := t.Execute(ctx, args)

			if err != nil {
				var fault *rest.Error

				if errors.As(err, &fault) {
					return mcp.NewToolResultError(fault.Error()), nil
				}

				return nil, err
			}

			var content string

			switch v := result.(type) {
			case string:
				content = v
			default:
				data, _ := json.Marshal(v)
				content = string(data)
			}

			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent(content),
				},
			}, nil
		})
	}

	if addr == "" {
		return server.ServeStdio(s)
	}

	sse := server.NewSSEServer(s,
		server.WithBaseURL(fmt.Sprintf("http://%s", addr)),
	)

	mux := http.NewServeMux()

	mux.Handle("/sse", sse)
	mux.Handle("/message", sse)

	return http.ListenAndServe(addr, cors.AllowAll().Handler(mux))
}

func convertArgs(val any) (map[string]any, error) {
	data, err := json.Marshal(val)

	if err != nil {
		return nil, err
	}

	var args map[string]any

	if err := json.Unmarshal(data, &args); err == nil {
		if args == nil {
			args = map[string]any{}
		}

		return args, nil
	}

	return map[string]any{
		"input": val,
	}, nil
}
