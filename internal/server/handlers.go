package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/apptype"
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/buildinfo"
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/metrics"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func textContent(text string) []mcp.Content {
	return []mcp.Content{&mcp.TextContent{Text: text}}
}

// handleExpandAbbreviation handles the expand_abbreviation tool call
func (s *MCPServer) handleExpandAbbreviation(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.ExpandAbbreviationArgs],
) (*mcp.CallToolResultFor[apptype.ExpandAbbreviationResult], error) {
	done := metrics.TimeTool("expand_abbreviation")
	var success bool
	defer func() { done(success) }()
	labels, err := s.resolver.ExpandAbbreviation(params.Arguments.Abbreviation)
	if err != nil {
		return nil, fmt.Errorf("expand_abbreviation failed: %w", err)
	}
	success = true
	return &mcp.CallToolResultFor[apptype.ExpandAbbreviationResult]{
		Content:           textContent(strings.Join(labels, "\n")),
		StructuredContent: apptype.ExpandAbbreviationResult{Labels: labels},
	}, nil
}

// handleGetTerms lists class names from the vocabulary snapshot
func (s *MCPServer) handleGetTerms(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.ListArgs],
) (*mcp.CallToolResultFor[apptype.TermsResult], error) {
	done := metrics.TimeTool("get_terms")
	defer func() { done(true) }()
	terms := s.resolver.Snapshot().Classes()
	return &mcp.CallToolResultFor[apptype.TermsResult]{
		Content:           textContent(fmt.Sprintf("%d classes", len(terms))),
		StructuredContent: apptype.TermsResult{Terms: terms},
	}, nil
}

// handleGetProperties lists property names from the vocabulary snapshot
func (s *MCPServer) handleGetProperties(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.ListArgs],
) (*mcp.CallToolResultFor[apptype.TermsResult], error) {
	done := metrics.TimeTool("get_properties")
	defer func() { done(true) }()
	terms := s.resolver.Snapshot().Properties()
	return &mcp.CallToolResultFor[apptype.TermsResult]{
		Content:           textContent(fmt.Sprintf("%d properties", len(terms))),
		StructuredContent: apptype.TermsResult{Terms: terms},
	}, nil
}

// handleGetSubclasses handles the get_subclasses tool call
func (s *MCPServer) handleGetSubclasses(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.GetSubclassesArgs],
) (*mcp.CallToolResultFor[apptype.TermsResult], error) {
	done := metrics.TimeTool("get_subclasses")
	var success bool
	defer func() { done(success) }()
	parent := params.Arguments.ParentClass
	terms, err := s.store.SubclassesOf(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("get_subclasses failed: %w", err)
	}
	success = true
	return &mcp.CallToolResultFor[apptype.TermsResult]{
		Content:           textContent(fmt.Sprintf("%d subclasses of %s", len(terms), parent)),
		StructuredContent: apptype.TermsResult{Terms: terms},
	}, nil
}

// handleGetBrickTags handles the get_brick_tags tool call
func (s *MCPServer) handleGetBrickTags(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.GetBrickTagsArgs],
) (*mcp.CallToolResultFor[apptype.TagsResult], error) {
	done := metrics.TimeTool("get_brick_tags")
	var success bool
	defer func() { done(success) }()
	tags, err := s.store.TagsOf(ctx, params.Arguments.Term)
	if err != nil {
		return nil, fmt.Errorf("get_brick_tags failed: %w", err)
	}
	success = true
	return &mcp.CallToolResultFor[apptype.TagsResult]{
		Content:           textContent(strings.Join(tags, ", ")),
		StructuredContent: apptype.TagsResult{Tags: tags},
	}, nil
}

// handleGetAllBrickTags lists tag names from the vocabulary snapshot
func (s *MCPServer) handleGetAllBrickTags(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.ListArgs],
) (*mcp.CallToolResultFor[apptype.TagsResult], error) {
	done := metrics.TimeTool("get_all_brick_tags")
	defer func() { done(true) }()
	tags := s.resolver.Snapshot().Tags()
	return &mcp.CallToolResultFor[apptype.TagsResult]{
		Content:           textContent(fmt.Sprintf("%d tags", len(tags))),
		StructuredContent: apptype.TagsResult{Tags: tags},
	}, nil
}

// handleValidateTerm handles the validate_brick_term tool call
func (s *MCPServer) handleValidateTerm(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.ValidateTermArgs],
) (*mcp.CallToolResultFor[apptype.ValidationResult], error) {
	done := metrics.TimeTool("validate_brick_term")
	var success bool
	defer func() { done(success) }()
	args := params.Arguments
	res, err := s.resolver.ValidateTerm(args.Term, apptype.Kind(args.ConceptType))
	if err != nil {
		return nil, fmt.Errorf("validate_brick_term failed: %w", err)
	}
	success = true
	var text string
	if res.Valid {
		text = fmt.Sprintf("%s is a valid Brick %s", res.Term, res.Type)
	} else {
		names := make([]string, len(res.Suggestions))
		for i, sg := range res.Suggestions {
			names[i] = sg.Term
		}
		text = fmt.Sprintf("%s is not a Brick term. Did you mean: %s", res.Term, strings.Join(names, ", "))
	}
	return &mcp.CallToolResultFor[apptype.ValidationResult]{
		Content:           textContent(text),
		StructuredContent: res,
	}, nil
}

// handleValidateTag handles the validate_brick_tag tool call
func (s *MCPServer) handleValidateTag(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.ValidateTagArgs],
) (*mcp.CallToolResultFor[apptype.TagValidationResult], error) {
	done := metrics.TimeTool("validate_brick_tag")
	var success bool
	defer func() { done(success) }()
	res, err := s.resolver.ValidateTag(params.Arguments.Tag)
	if err != nil {
		return nil, fmt.Errorf("validate_brick_tag failed: %w", err)
	}
	success = true
	text := fmt.Sprintf("%s is a valid Brick tag", res.Tag)
	if !res.Valid {
		text = fmt.Sprintf("%s is not a Brick tag. Did you mean: %s", res.Tag, strings.Join(res.Suggestions, ", "))
	}
	return &mcp.CallToolResultFor[apptype.TagValidationResult]{
		Content:           textContent(text),
		StructuredContent: res,
	}, nil
}

// handleGetPossibleProperties handles the get_possible_properties tool call
func (s *MCPServer) handleGetPossibleProperties(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.ClassArgs],
) (*mcp.CallToolResultFor[apptype.PossiblePropertiesResult], error) {
	done := metrics.TimeTool("get_possible_properties")
	var success bool
	defer func() { done(success) }()
	class := params.Arguments.Class
	pairs, err := s.store.PossibleProperties(ctx, class)
	if err != nil {
		return nil, fmt.Errorf("get_possible_properties failed: %w", err)
	}
	success = true
	return &mcp.CallToolResultFor[apptype.PossiblePropertiesResult]{
		Content:           textContent(fmt.Sprintf("%d properties applicable to %s", len(pairs), class)),
		StructuredContent: apptype.PossiblePropertiesResult{Pairs: pairs},
	}, nil
}

// handleGetDefinition returns the Turtle definition of a class as text
func (s *MCPServer) handleGetDefinition(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.ClassArgs],
) (*mcp.CallToolResultFor[any], error) {
	done := metrics.TimeTool("get_definition_brick")
	var success bool
	defer func() { done(success) }()
	def, err := s.store.DefinitionOf(ctx, params.Arguments.Class)
	if err != nil {
		return nil, fmt.Errorf("get_definition_brick failed: %w", err)
	}
	success = true
	return &mcp.CallToolResultFor[any]{
		Content: textContent(def),
	}, nil
}

// handleHealth returns basic server health information
func (s *MCPServer) handleHealth(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.HealthArgs],
) (*mcp.CallToolResultFor[apptype.HealthResult], error) {
	done := metrics.TimeTool("health_check")
	defer func() { done(true) }()
	// observe current pool gauges
	inUse, idle := s.store.PoolStats()
	metrics.Default().ObservePoolStats(inUse, idle)
	snap := s.resolver.Snapshot()
	res := apptype.HealthResult{
		Name:       serverName,
		Version:    buildinfo.Version,
		Revision:   buildinfo.Revision,
		BuildDate:  buildinfo.BuildDate,
		Source:     s.store.Source(),
		Scorer:     s.resolver.Scorer().Name(),
		Classes:    snap.Size(apptype.KindClass),
		Properties: snap.Size(apptype.KindProperty),
		Tags:       snap.Size(apptype.KindTag),
		Labels:     len(snap.Labels()),
	}
	return &mcp.CallToolResultFor[apptype.HealthResult]{
		Content:           textContent("ok"),
		StructuredContent: res,
	}, nil
}
