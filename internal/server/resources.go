package server

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/metrics"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	describePrefix = "rdf://describe/"
	turtleMIME     = "text/turtle"
)

// setupResources registers the resource templates
func (s *MCPServer) setupResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "brick_definition",
		Title:       "Brick Definition",
		URITemplate: describePrefix + "{term}",
		MIMEType:    turtleMIME,
		Description: "Turtle definition of a Brick class or property, including nested blank nodes.",
	}, s.handleDescribe)
}

// termFromURI extracts the term of an rdf://describe/{term} URI
func termFromURI(uri string) (string, error) {
	raw, ok := strings.CutPrefix(uri, describePrefix)
	if !ok || raw == "" {
		return "", fmt.Errorf("invalid describe URI %q", uri)
	}
	return url.PathUnescape(raw)
}

func (s *MCPServer) handleDescribe(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.ReadResourceParams,
) (*mcp.ReadResourceResult, error) {
	done := metrics.TimeTool("describe_resource")
	var success bool
	defer func() { done(success) }()
	term, err := termFromURI(params.URI)
	if err != nil {
		return nil, err
	}
	def, err := s.store.DefinitionOf(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("describe %s failed: %w", term, err)
	}
	if def == "" {
		return nil, mcp.ResourceNotFoundError(params.URI)
	}
	success = true
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      params.URI,
			MIMEType: turtleMIME,
			Text:     def,
		}},
	}, nil
}
