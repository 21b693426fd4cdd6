package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/apptype"
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/ontology"
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/vocabulary"
)

const fixture = "../ontology/testdata/brick_sample.ttl"

var dbSeq atomic.Int64

func newTestServer(t *testing.T) *MCPServer {
	t.Helper()
	config := ontology.NewConfig()
	config.URL = fmt.Sprintf("file:server-test-%d?mode=memory&cache=shared", dbSeq.Add(1))
	config.Source = fixture
	config.Reload = false

	ctx := context.Background()
	store, err := ontology.Open(ctx, config)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	snap, err := vocabulary.Build(ctx, store)
	require.NoError(t, err)
	return NewMCPServer(store, vocabulary.NewResolver(snap))
}

// connect wires a client to s over in-memory transports
func connect(t *testing.T, s *MCPServer) (*mcp.ClientSession, func()) {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := s.Connect(ctx, serverTransport)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport)
	require.NoError(t, err)

	return cs, func() {
		_ = cs.Close()
		_ = ss.Wait()
	}
}

func callTool(t *testing.T, cs *mcp.ClientSession, name string, args any) *mcp.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return res
}

func decode[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, res.IsError, "tool returned error: %v", res.Content)
	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestListTools(t *testing.T) {
	cs, closeFn := connect(t, newTestServer(t))
	defer closeFn()

	tools, err := cs.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"expand_abbreviation",
		"get_terms",
		"get_properties",
		"get_subclasses",
		"get_brick_tags",
		"get_all_brick_tags",
		"validate_brick_term",
		"validate_brick_tag",
		"get_possible_properties",
		"get_definition_brick",
		"health_check",
	}, names)
}

func TestValidateBrickTerm(t *testing.T) {
	cs, closeFn := connect(t, newTestServer(t))
	defer closeFn()

	res := decode[apptype.ValidationResult](t, callTool(t, cs, "validate_brick_term", map[string]any{"term": "Air_Handling_Unit"}))
	assert.True(t, res.Valid)
	assert.Equal(t, apptype.KindClass, res.Type)
	assert.Empty(t, res.Suggestions)

	res = decode[apptype.ValidationResult](t, callTool(t, cs, "validate_brick_term", map[string]any{"term": "hasPoin"}))
	assert.False(t, res.Valid)
	assert.Equal(t, apptype.KindUnknown, res.Type)
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, apptype.Suggestion{Term: "hasPoint", Type: apptype.KindProperty}, res.Suggestions[0])
	assert.LessOrEqual(t, len(res.Suggestions), vocabulary.DefaultLimit)

	res = decode[apptype.ValidationResult](t, callTool(t, cs, "validate_brick_term", map[string]any{
		"term":         "hasPoint",
		"concept_type": "class",
	}))
	assert.False(t, res.Valid)
	for _, sg := range res.Suggestions {
		assert.Equal(t, apptype.KindClass, sg.Type)
	}
}

func TestValidateBrickTag(t *testing.T) {
	cs, closeFn := connect(t, newTestServer(t))
	defer closeFn()

	res := decode[apptype.TagValidationResult](t, callTool(t, cs, "validate_brick_tag", map[string]any{"tag": "Air"}))
	assert.True(t, res.Valid)

	res = decode[apptype.TagValidationResult](t, callTool(t, cs, "validate_brick_tag", map[string]any{"tag": "air"}))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Suggestions, "Air")
}

func TestVocabularyListings(t *testing.T) {
	cs, closeFn := connect(t, newTestServer(t))
	defer closeFn()

	terms := decode[apptype.TermsResult](t, callTool(t, cs, "get_terms", map[string]any{}))
	assert.Contains(t, terms.Terms, "Air_Handling_Unit")
	assert.NotContains(t, terms.Terms, "AHU")

	props := decode[apptype.TermsResult](t, callTool(t, cs, "get_properties", map[string]any{}))
	assert.Equal(t, []string{"feeds", "hasLocation", "hasPart", "hasPoint", "value"}, props.Terms)

	tags := decode[apptype.TagsResult](t, callTool(t, cs, "get_all_brick_tags", map[string]any{}))
	assert.Contains(t, tags.Tags, "Zone")

	tags = decode[apptype.TagsResult](t, callTool(t, cs, "get_brick_tags", map[string]any{"term": "Air_Handling_Unit"}))
	assert.Equal(t, []string{"Air", "Equipment", "Handling", "Unit"}, tags.Tags)

	subs := decode[apptype.TermsResult](t, callTool(t, cs, "get_subclasses", map[string]any{"parent_class": "Equipment"}))
	assert.Equal(t, []string{"Air_Handling_Unit", "HVAC_Equipment"}, subs.Terms)
}

func TestEmptyArgumentIsToolError(t *testing.T) {
	cs, closeFn := connect(t, newTestServer(t))
	defer closeFn()

	res := callTool(t, cs, "get_subclasses", map[string]any{"parent_class": ""})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "cannot be empty")
}

func TestExpandAbbreviation(t *testing.T) {
	cs, closeFn := connect(t, newTestServer(t))
	defer closeFn()

	res := decode[apptype.ExpandAbbreviationResult](t, callTool(t, cs, "expand_abbreviation", map[string]any{"abbreviation": "Air Handling Unit"}))
	require.NotEmpty(t, res.Labels)
	assert.Equal(t, "Air Handling Unit", res.Labels[0])
	assert.LessOrEqual(t, len(res.Labels), vocabulary.DefaultLimit)
}

func TestPossiblePropertiesAndDefinition(t *testing.T) {
	cs, closeFn := connect(t, newTestServer(t))
	defer closeFn()

	pairs := decode[apptype.PossiblePropertiesResult](t, callTool(t, cs, "get_possible_properties", map[string]any{"class_": "Air_Handling_Unit"}))
	assert.Len(t, pairs.Pairs, 3)

	res := callTool(t, cs, "get_definition_brick", map[string]any{"class_": "Air_Handling_Unit"})
	require.False(t, res.IsError)
	assert.Contains(t, text(t, res), "brick:Air_Handling_Unit")
}

func TestDescribeResource(t *testing.T) {
	cs, closeFn := connect(t, newTestServer(t))
	defer closeFn()

	ctx := context.Background()
	templates, err := cs.ListResourceTemplates(ctx, &mcp.ListResourceTemplatesParams{})
	require.NoError(t, err)
	require.Len(t, templates.ResourceTemplates, 1)
	assert.Equal(t, "rdf://describe/{term}", templates.ResourceTemplates[0].URITemplate)

	res, err := cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: "rdf://describe/Air_Handling_Unit"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "text/turtle", res.Contents[0].MIMEType)
	assert.Contains(t, res.Contents[0].Text, "brick:Air_Handling_Unit")

	_, err = cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: "rdf://describe/Does_Not_Exist"})
	require.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	cs, closeFn := connect(t, newTestServer(t))
	defer closeFn()

	res := decode[apptype.HealthResult](t, callTool(t, cs, "health_check", map[string]any{}))
	assert.Equal(t, serverName, res.Name)
	assert.Equal(t, fixture, res.Source)
	assert.Equal(t, vocabulary.DefaultScorer, res.Scorer)
	assert.Equal(t, 7, res.Classes)
	assert.Equal(t, 5, res.Properties)
	assert.Equal(t, 9, res.Tags)
	assert.Equal(t, 7, res.Labels)
}

func TestSessionShutdownDoesNotLeak(t *testing.T) {
	s := newTestServer(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cs, closeFn := connect(t, s)
	_ = decode[apptype.TermsResult](t, callTool(t, cs, "get_terms", map[string]any{}))
	closeFn()
}

func TestTermFromURI(t *testing.T) {
	term, err := termFromURI("rdf://describe/Air_Handling_Unit")
	require.NoError(t, err)
	assert.Equal(t, "Air_Handling_Unit", term)

	term, err = termFromURI("rdf://describe/Zone%20Air")
	require.NoError(t, err)
	assert.Equal(t, "Zone Air", term)

	_, err = termFromURI("rdf://describe/")
	require.Error(t, err)
	_, err = termFromURI("file:///etc/passwd")
	require.Error(t, err)
}
