// resources.go implements MCP resource handlers for guide access.
//
// MCP resources provide read-only access via URI schemes, letting LLM
// clients load a guide page into context without a tool call.
//
// Design: Resource URIs follow the pattern xmlkit://guide/{topic}. An empty
// topic returns the main guide, mirroring "xmlkit guide".

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/xmlkit/guide"
	"github.com/mark3labs/mcp-go/mcp"
)

// ErrInvalidURI indicates a malformed resource URI, helping clients
// debug URI construction issues.
var ErrInvalidURI = errors.New("invalid URI")

// readGuide handles xmlkit://guide/{topic} resource requests.
func (h *handlers) readGuide(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	topic, err := parseGuideURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	content, err := guide.Get(topic)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     content,
		},
	}, nil
}

// parseGuideURI extracts the topic from xmlkit://guide/{topic}.
func parseGuideURI(uri string) (string, error) {
	const prefix = "xmlkit://guide/"
	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	topic := strings.TrimPrefix(uri, prefix)
	if strings.Contains(topic, "/") {
		return "", fmt.Errorf("%w: nested topic %q", ErrInvalidURI, topic)
	}
	return topic, nil
}
