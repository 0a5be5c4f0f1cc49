package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listToolDef = mcp.NewTool("shortcuts_list",
	mcp.WithDescription("List the user's shortcuts with identifiers and recorded purposes. "+
		"Served from a daily-refreshed cache."),
)

var runToolDef = mcp.NewTool("shortcuts_run",
	mcp.WithDescription("Run a shortcut by name and return its output. "+
		"Every attempt is recorded in the usage telemetry."),
	mcp.WithString("name", mcp.Required(),
		mcp.Description("Shortcut name; matched case-insensitively against the catalog")),
	mcp.WithString("input",
		mcp.Description("Optional text payload passed to the shortcut as input")),
	mcp.WithString("purpose",
		mcp.Description("Optional one-line reason for this run, stored as a purpose annotation")),
)

var viewToolDef = mcp.NewTool("shortcuts_view",
	mcp.WithDescription("Open a shortcut in the Shortcuts editor, for automations "+
		"that need interactive UI."),
	mcp.WithString("name", mcp.Required(),
		mcp.Description("Shortcut name; matched case-insensitively against the catalog")),
)

var annotateToolDef = mcp.NewTool("shortcuts_annotate",
	mcp.WithDescription("Record why a shortcut is used. Purposes accumulate per shortcut "+
		"(deduplicated, most recent eight kept)."),
	mcp.WithString("shortcut", mcp.Required(),
		mcp.Description("Shortcut name")),
	mcp.WithString("purpose", mcp.Required(),
		mcp.Description("Short free-text reason the shortcut was invoked")),
)

var statsToolDef = mcp.NewTool("shortcuts_stats",
	mcp.WithDescription("Usage statistics for the user's shortcuts. Serves a cached snapshot "+
		"up to a day old; recomputes via client-side sampling when enough telemetry exists."),
)

var profileGetToolDef = mcp.NewTool("shortcuts_profile_get",
	mcp.WithDescription("Read the user profile: preferences, context, and per-shortcut "+
		"purpose annotations."),
)

var profileUpdateToolDef = mcp.NewTool("shortcuts_profile_update",
	mcp.WithDescription("Deep-merge a partial update into the user profile. "+
		"Only send the keys being changed; siblings are preserved."),
	mcp.WithObject("update", mcp.Required(),
		mcp.Description("Partial profile document to merge")),
)

var systemStateToolDef = mcp.NewTool("system_state",
	mcp.WithDescription("Current time, date, weekday, and timezone of the host."),
)
