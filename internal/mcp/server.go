package mcp

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aterrell/shortcuts-mcp/internal/config"
	"github.com/aterrell/shortcuts-mcp/internal/ops"
	"github.com/aterrell/shortcuts-mcp/internal/skills"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"shortcuts_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"shortcuts_run": {
		def:     runToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRun },
	},
	"shortcuts_view": {
		def:     viewToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleView },
	},
	"shortcuts_annotate": {
		def:     annotateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAnnotate },
	},
	"shortcuts_stats": {
		def:     statsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStats },
	},
	"shortcuts_profile_get": {
		def:     profileGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleProfileGet },
	},
	"shortcuts_profile_update": {
		def:     profileUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleProfileUpdate },
	},
	"system_state": {
		def:     systemStateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSystemState },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with shortcuts tools and skill
// resources registered. Tools listed in cfg.DisabledTools are excluded.
func NewServer(env *ops.Env, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"shortcuts-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
	)
	s.EnableSampling()

	h := NewHandlers(env)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}
	for _, name := range ValidateDisabledTools(cfg.DisabledTools) {
		log.Printf("warning: unknown disabled tool %q", name)
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	registerSkillResources(s)

	return s
}

// registerSkillResources exposes the embedded skill documents as readable
// resources.
func registerSkillResources(s *server.MCPServer) {
	docs, err := skills.All()
	if err != nil {
		log.Printf("warning: skill documents unavailable: %v", err)
		return
	}

	for _, doc := range docs {
		doc := doc
		resource := mcp.NewResource(
			doc.URI(),
			doc.Title,
			mcp.WithResourceDescription(doc.Summary),
			mcp.WithMIMEType("text/markdown"),
		)
		s.AddResource(resource, func(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      doc.URI(),
					MIMEType: "text/markdown",
					Text:     doc.Text,
				},
			}, nil
		})
	}
}

// Run starts the MCP server using stdio transport.
func Run(env *ops.Env, cfg *config.Config, version string) error {
	s := NewServer(env, cfg, version)
	return server.ServeStdio(s)
}
