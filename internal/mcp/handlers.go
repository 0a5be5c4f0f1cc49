package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aterrell/shortcuts-mcp/internal/errors"
	"github.com/aterrell/shortcuts-mcp/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	env *ops.Env
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(env *ops.Env) *Handlers {
	return &Handlers{env: env}
}

// Request types for each tool

// RunRequest represents the arguments for shortcuts_run.
type RunRequest struct {
	Name    string `json:"name"`
	Input   string `json:"input,omitempty"`
	Purpose string `json:"purpose,omitempty"`
}

// ViewRequest represents the arguments for shortcuts_view.
type ViewRequest struct {
	Name string `json:"name"`
}

// AnnotateRequest represents the arguments for shortcuts_annotate.
type AnnotateRequest struct {
	Shortcut string `json:"shortcut"`
	Purpose  string `json:"purpose"`
}

// ProfileUpdateRequest represents the arguments for shortcuts_profile_update.
type ProfileUpdateRequest struct {
	Update map[string]any `json:"update"`
}

// Handler implementations

// HandleList handles the shortcuts_list tool call.
func (h *Handlers) HandleList(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.GetCatalog(ctx, h.env)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleRun handles the shortcuts_run tool call.
func (h *Handlers) HandleRun(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RunRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Run(ctx, h.env, ops.RunInput{
		Name:    input.Name,
		Input:   input.Input,
		Purpose: input.Purpose,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleView handles the shortcuts_view tool call.
func (h *Handlers) HandleView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ViewRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.View(ctx, h.env, input.Name)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleAnnotate handles the shortcuts_annotate tool call.
func (h *Handlers) HandleAnnotate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AnnotateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.RecordPurpose(ctx, h.env, ops.AnnotateInput{
		Shortcut: input.Shortcut,
		Purpose:  input.Purpose,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleStats handles the shortcuts_stats tool call. The sampler is wired
// off the calling session: sessions without sampling support get the
// passthrough behavior.
func (h *Handlers) HandleStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Statistics(ctx, h.env, samplerFromContext(ctx))
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleProfileGet handles the shortcuts_profile_get tool call.
func (h *Handlers) HandleProfileGet(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.GetProfile(h.env)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleProfileUpdate handles the shortcuts_profile_update tool call.
func (h *Handlers) HandleProfileUpdate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProfileUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SaveProfile(h.env, input.Update)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSystemState handles the system_state tool call.
func (h *Handlers) HandleSystemState(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.GetSystemState(h.env))
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if sErr, ok := err.(*errors.ShortcutError); ok {
		errorObj := map[string]any{
			"code":    sErr.Code,
			"message": sErr.Message,
			"status":  sErr.Status,
		}
		// Internal errors may carry file paths or raw exec output in
		// their details; keep those out of the wire payload.
		if sErr.Code != errors.ErrInternal && sErr.Details != nil {
			errorObj["details"] = sErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
