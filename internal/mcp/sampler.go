package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aterrell/shortcuts-mcp/internal/stats"
)

// samplerFromContext returns a stats.Sampler backed by the calling
// session's sampling capability, or nil when the session cannot sample.
// A nil sampler makes the statistics engine fall back to the existing
// snapshot, which is exactly the capability-unavailable behavior.
func samplerFromContext(ctx context.Context) stats.Sampler {
	srv := server.ServerFromContext(ctx)
	if srv == nil {
		return nil
	}
	session := server.ClientSessionFromContext(ctx)
	if _, ok := session.(server.SessionWithSampling); !ok {
		return nil
	}
	return &serverSampler{srv: srv}
}

// serverSampler adapts the MCP server's sampling request API to the
// statistics engine's Sampler interface.
type serverSampler struct {
	srv *server.MCPServer
}

// GenerateText sends one deterministic sampling request and returns the
// text of the response. Non-text content is rejected; only text responses
// are considered for statistics parsing. No timeout is imposed here; a hang
// in the client surfaces as the transport's own failure.
func (s *serverSampler) GenerateText(ctx context.Context, systemPrompt, prompt string, maxTokens int) (string, error) {
	request := mcp.CreateMessageRequest{
		CreateMessageParams: mcp.CreateMessageParams{
			Messages: []mcp.SamplingMessage{
				{
					Role:    mcp.RoleUser,
					Content: mcp.TextContent{Type: "text", Text: prompt},
				},
			},
			SystemPrompt: systemPrompt,
			MaxTokens:    maxTokens,
			Temperature:  0,
		},
	}

	result, err := s.srv.RequestSampling(ctx, request)
	if err != nil {
		return "", err
	}

	switch content := result.Content.(type) {
	case mcp.TextContent:
		return content.Text, nil
	case *mcp.TextContent:
		return content.Text, nil
	default:
		return "", fmt.Errorf("sampling returned non-text content (%T)", result.Content)
	}
}
