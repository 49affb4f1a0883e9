// tools_xml.go implements the MCP tools that run the external tools.
//
// Separated from server.go because these handlers carry the argument
// checks: every path and parameter is validated before a process is
// started, since an LLM will happily pass a stylesheet parameter named "-o".
//
// Design: A failed run is not a tool error. The client gets ok=false and the
// report text, the same file a CLI user would find at the output path.

package mcp

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/jpl-au/xmlkit/internal/doctype"
	"github.com/jpl-au/xmlkit/internal/log"
	"github.com/jpl-au/xmlkit/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// transform handles xml_transform tool calls.
func (h *handlers) transform(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	xml, xsl, output, err := requirePaths(req, "xml", "xsl", "output")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	params := getParams(req, "params")
	if err := params.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ok, err := h.ext.Toolkit().Transform(ctx, xml, xsl, output, params)

	log.Event("mcp:xml_transform", "transform").
		Path(xml).
		Output(output).
		Detail("stylesheet", xsl).
		Valid(ok).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]any{"ok": ok, "output": output}
	if !ok {
		result["report"] = readReport(output)
	}
	return jsonResult(result)
}

// transformText handles xml_transform_text tool calls.
func (h *handlers) transformText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	xml, err := req.RequireString("xml")
	if err != nil {
		return mcp.NewToolResultError("xml is required"), nil //nolint:nilerr
	}
	if strings.Contains(xml, "<") {
		err = validate.Content(xml, 0)
	} else {
		err = validate.Path(xml)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	xsl, err := req.RequireString("xsl")
	if err != nil {
		return mcp.NewToolResultError("xsl is required"), nil //nolint:nilerr
	}
	if err := validate.Path(xsl); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := h.ext.Toolkit().TransformContent(ctx, xml, xsl)

	b := log.Event("mcp:xml_transform_text", "transform").
		Detail("stylesheet", xsl).
		Valid(text != "")
	if !strings.Contains(xml, "<") {
		b = b.Path(xml)
	}
	b.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"ok": text != "", "text": text})
}

// validateDoc handles xml_validate tool calls.
func (h *handlers) validateDoc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	xml, output, _, err := requirePaths(req, "xml", "output")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	override, err := overrideFrom(getString(req, "doctype", ""), getBool(req, "remove_doctype", false))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ok, err := h.ext.Toolkit().Validate(ctx, xml, output, override)

	log.Event("mcp:xml_validate", "validate").
		Path(xml).
		Output(output).
		Detail("doctype", override.String()).
		Valid(ok).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"valid":  ok,
		"output": output,
		"report": readReport(output),
	})
}

// overrideFrom turns the doctype arguments into an override. Giving both a
// declaration and remove is ambiguous and rejected.
func overrideFrom(decl string, remove bool) (doctype.Override, error) {
	switch {
	case remove && decl != "":
		return doctype.Keep(), errors.New("doctype and remove_doctype are mutually exclusive")
	case remove:
		return doctype.Remove(), nil
	case decl != "":
		if err := validate.Doctype(decl); err != nil {
			return doctype.Keep(), err
		}
		return doctype.Replace(decl), nil
	default:
		return doctype.Keep(), nil
	}
}

// requirePaths extracts and validates up to three required path arguments.
func requirePaths(req mcp.CallToolRequest, names ...string) (a, b, c string, err error) {
	var vals [3]string
	for i, name := range names {
		v, err := req.RequireString(name)
		if err != nil {
			return "", "", "", errors.New(name + " is required")
		}
		if err := validate.Path(v); err != nil {
			return "", "", "", err
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}

// readReport returns the text left at path, or "" if it can't be read.
func readReport(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
