// Package mcp implements the Model Context Protocol server, exposing xmlkit
// operations to LLMs. AI assistants can transform and validate documents,
// read the guides and inspect past runs through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/xmlkit/extension"
	"github.com/jpl-au/xmlkit/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
func Serve(extCtx extension.Context) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s := NewServer(extCtx)

	slog.Info("xmlkit MCP server ready", "version", version.Short(), "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server with every built-in and extension tool
// registered.
func NewServer(extCtx extension.Context) *server.MCPServer {
	h := &handlers{ext: extCtx}

	s := server.NewMCPServer(
		"xmlkit",
		version.Short(),
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, extCtx)
	return s
}

// handlers provides MCP request handlers with access to the toolkit.
type handlers struct {
	ext extension.Context
}

// registerResources adds URI-based access to the guides.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"xmlkit://guide/{topic}",
			"Guide",
			mcp.WithTemplateDescription("Read an xmlkit guide page by topic"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readGuide,
	)
}

// registerTools exposes xmlkit operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Transform to file
	s.AddTool(
		mcp.NewTool("xml_transform",
			mcp.WithDescription("Transform an XML file with an XSLT stylesheet, writing the result to a file. On failure the output file holds an error report."),
			mcp.WithString("xml", mcp.Required(), mcp.Description("XML file path")),
			mcp.WithString("xsl", mcp.Required(), mcp.Description("XSLT stylesheet path")),
			mcp.WithString("output", mcp.Required(), mcp.Description("Output file path")),
			mcp.WithObject("params", mcp.Description("Stylesheet parameters as name/value strings")),
		),
		h.transform,
	)

	// Transform to text
	s.AddTool(
		mcp.NewTool("xml_transform_text",
			mcp.WithDescription("Transform XML content (or a file) with an XSLT stylesheet and return the result as text. Returns empty text if the transform failed."),
			mcp.WithString("xml", mcp.Required(), mcp.Description("XML content, or a file path")),
			mcp.WithString("xsl", mcp.Required(), mcp.Description("XSLT stylesheet path")),
		),
		h.transformText,
	)

	// Validate
	s.AddTool(
		mcp.NewTool("xml_validate",
			mcp.WithDescription("Validate an XML file against its DTD and write the checker's report. The file is restored afterwards even if its DOCTYPE was replaced or removed."),
			mcp.WithString("xml", mcp.Required(), mcp.Description("XML file path")),
			mcp.WithString("output", mcp.Required(), mcp.Description("Report file path")),
			mcp.WithString("doctype", mcp.Description("Replacement DOCTYPE declaration for this run")),
			mcp.WithBoolean("remove_doctype", mcp.Description("Remove the DOCTYPE and only check well-formedness")),
		),
		h.validateDoc,
	)

	// Config Get
	s.AddTool(
		mcp.NewTool("xml_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (tools.java, tools.jar_dir, runner.mode, ...) or empty for all")),
		),
		h.configGet,
	)

	// Config Set
	s.AddTool(
		mcp.NewTool("xml_config_set",
			mcp.WithDescription("Set a configuration value. Takes effect when the server restarts."),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set (empty restores the default)")),
		),
		h.configSet,
	)

	// Guide
	s.AddTool(
		mcp.NewTool("xml_guide",
			mcp.WithDescription("Get help/guide content for xmlkit commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'validate', 'doctype') or empty for index")),
		),
		h.getGuide,
	)

	// Audit log
	s.AddTool(
		mcp.NewTool("xml_log",
			mcp.WithDescription("List recent transform and validation runs"),
			mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default 20)")),
		),
		h.recentRuns,
	)
}

// registerExtensionTools adds the tools extensions contribute, binding each
// handler to the shared extension context.
func registerExtensionTools(s *server.MCPServer, extCtx extension.Context) {
	for _, t := range extension.Tools() {
		handler := t.Handler
		s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handler(ctx, extCtx, req)
		})
	}
}
