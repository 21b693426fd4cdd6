package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/apptype"
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/buildinfo"
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/metrics"
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/ontology"
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/vocabulary"
	"github.com/modelcontextprotocol/go-sdk/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "mcp-brick-libsql-go"

// MCPServer handles MCP protocol communication
type MCPServer struct {
	server   *mcp.Server
	store    *ontology.Store
	resolver *vocabulary.Resolver
}

// NewMCPServer creates a new MCP server over an ontology store and the
// resolver built from its vocabulary snapshot
func NewMCPServer(store *ontology.Store, resolver *vocabulary.Resolver) *MCPServer {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: buildinfo.Version,
	}, nil)

	mcpServer := &MCPServer{
		server:   server,
		store:    store,
		resolver: resolver,
	}

	// initialize metrics from env (no-op if disabled)
	metrics.InitFromEnv()
	mcpServer.observeVocabulary()
	mcpServer.setupToolHandlers()
	mcpServer.setupResources()
	return mcpServer
}

func mustSchema[T any](name string) *jsonschema.Schema {
	schema, err := jsonschema.For[T]()
	if err != nil {
		panic(fmt.Sprintf("failed to create schema for %s: %v", name, err))
	}
	return schema
}

// setupToolHandlers registers all MCP tools
func (s *MCPServer) setupToolHandlers() {
	readOnly := func(title string) *mcp.ToolAnnotations {
		return &mcp.ToolAnnotations{Title: title, ReadOnlyHint: true}
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Annotations:  readOnly("Expand Abbreviation"),
		Name:         "expand_abbreviation",
		Title:        "Expand Abbreviation",
		Description:  "Expand an abbreviation or partial name (e.g. AHU) into the closest Brick class labels.",
		InputSchema:  mustSchema[apptype.ExpandAbbreviationArgs]("ExpandAbbreviationArgs"),
		OutputSchema: mustSchema[apptype.ExpandAbbreviationResult]("ExpandAbbreviationResult"),
	}, s.handleExpandAbbreviation)

	mcp.AddTool(s.server, &mcp.Tool{
		Annotations:  readOnly("Get Terms"),
		Name:         "get_terms",
		Title:        "Get Terms",
		Description:  "List the local names of all Brick classes.",
		InputSchema:  mustSchema[apptype.ListArgs]("ListArgs (terms)"),
		OutputSchema: mustSchema[apptype.TermsResult]("TermsResult (terms)"),
	}, s.handleGetTerms)

	mcp.AddTool(s.server, &mcp.Tool{
		Annotations:  readOnly("Get Properties"),
		Name:         "get_properties",
		Title:        "Get Properties",
		Description:  "List the local names of all Brick object and datatype properties.",
		InputSchema:  mustSchema[apptype.ListArgs]("ListArgs (properties)"),
		OutputSchema: mustSchema[apptype.TermsResult]("TermsResult (properties)"),
	}, s.handleGetProperties)

	mcp.AddTool(s.server, &mcp.Tool{
		Annotations:  readOnly("Get Subclasses"),
		Name:         "get_subclasses",
		Title:        "Get Subclasses",
		Description:  "List all transitive subclasses of a Brick class, excluding deprecated classes.",
		InputSchema:  mustSchema[apptype.GetSubclassesArgs]("GetSubclassesArgs"),
		OutputSchema: mustSchema[apptype.TermsResult]("TermsResult (subclasses)"),
	}, s.handleGetSubclasses)

	mcp.AddTool(s.server, &mcp.Tool{
		Annotations:  readOnly("Get Brick Tags"),
		Name:         "get_brick_tags",
		Title:        "Get Brick Tags",
		Description:  "List the tags associated with a Brick class.",
		InputSchema:  mustSchema[apptype.GetBrickTagsArgs]("GetBrickTagsArgs"),
		OutputSchema: mustSchema[apptype.TagsResult]("TagsResult (term)"),
	}, s.handleGetBrickTags)

	mcp.AddTool(s.server, &mcp.Tool{
		Annotations:  readOnly("Get All Brick Tags"),
		Name:         "get_all_brick_tags",
		Title:        "Get All Brick Tags",
		Description:  "List every tag defined by the loaded Brick ontology.",
		InputSchema:  mustSchema[apptype.ListArgs]("ListArgs (tags)"),
		OutputSchema: mustSchema[apptype.TagsResult]("TagsResult (all)"),
	}, s.handleGetAllBrickTags)

	mcp.AddTool(s.server, &mcp.Tool{
		Annotations:  readOnly("Validate Brick Term"),
		Name:         "validate_brick_term",
		Title:        "Validate Brick Term",
		Description:  "Check whether a term is a Brick class or property. Invalid terms come with up to 5 ranked suggestions.",
		InputSchema:  mustSchema[apptype.ValidateTermArgs]("ValidateTermArgs"),
		OutputSchema: mustSchema[apptype.ValidationResult]("ValidationResult"),
	}, s.handleValidateTerm)

	mcp.AddTool(s.server, &mcp.Tool{
		Annotations:  readOnly("Validate Brick Tag"),
		Name:         "validate_brick_tag",
		Title:        "Validate Brick Tag",
		Description:  "Check whether a tag exists in Brick. Invalid tags come with up to 5 ranked suggestions.",
		InputSchema:  mustSchema[apptype.ValidateTagArgs]("ValidateTagArgs"),
		OutputSchema: mustSchema[apptype.TagValidationResult]("TagValidationResult"),
	}, s.handleValidateTag)

	mcp.AddTool(s.server, &mcp.Tool{
		Annotations:  readOnly("Get Possible Properties"),
		Name:         "get_possible_properties",
		Title:        "Get Possible Properties",
		Description:  "List the SHACL property paths and expected types applicable to a Brick class or its alias.",
		InputSchema:  mustSchema[apptype.ClassArgs]("ClassArgs (properties)"),
		OutputSchema: mustSchema[apptype.PossiblePropertiesResult]("PossiblePropertiesResult"),
	}, s.handleGetPossibleProperties)

	// Plain text result, no output schema.
	mcp.AddTool(s.server, &mcp.Tool{
		Annotations: readOnly("Get Brick Definition"),
		Name:        "get_definition_brick",
		Title:       "Get Brick Definition",
		Description: "Return the Turtle definition of a Brick class, including nested blank nodes.",
		InputSchema: mustSchema[apptype.ClassArgs]("ClassArgs (definition)"),
	}, s.handleGetDefinition)

	mcp.AddTool(s.server, &mcp.Tool{
		Annotations:  readOnly("Health Check"),
		Name:         "health_check",
		Title:        "Health Check",
		Description:  "Report build information and vocabulary sizes.",
		InputSchema:  mustSchema[apptype.HealthArgs]("HealthArgs"),
		OutputSchema: mustSchema[apptype.HealthResult]("HealthResult"),
	}, s.handleHealth)
}

// observeVocabulary publishes snapshot sizes as gauges
func (s *MCPServer) observeVocabulary() {
	snap := s.resolver.Snapshot()
	rec := metrics.Default()
	rec.SetVocabularySize(string(apptype.KindClass), snap.Size(apptype.KindClass))
	rec.SetVocabularySize(string(apptype.KindProperty), snap.Size(apptype.KindProperty))
	rec.SetVocabularySize(string(apptype.KindTag), snap.Size(apptype.KindTag))
	rec.SetVocabularySize("label", len(snap.Labels()))
}

// reportPoolStats samples connection pool gauges until ctx is done
func (s *MCPServer) reportPoolStats(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				inUse, idle := s.store.PoolStats()
				metrics.Default().ObservePoolStats(inUse, idle)
			}
		}
	}()
}

// Connect serves a single session over the given transport. The session
// ends when the peer disconnects or the session is closed.
func (s *MCPServer) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t)
}

// Run starts the MCP server with stdio transport
func (s *MCPServer) Run(ctx context.Context) error {
	s.reportPoolStats(ctx)
	transport := mcp.NewStdioTransport()
	return s.server.Run(ctx, transport)
}

// RunSSE starts the MCP server over SSE at the given address and endpoint
func (s *MCPServer) RunSSE(ctx context.Context, addr string, endpoint string) error {
	handler := mcp.NewSSEHandler(func(r *http.Request) *mcp.Server { return s.server })
	log.Printf("SSE MCP server listening on %s%s", addr, endpoint)
	return s.serveHTTP(ctx, addr, endpoint, handler)
}

// RunHTTP starts the MCP server over streamable HTTP at the given address and endpoint
func (s *MCPServer) RunHTTP(ctx context.Context, addr string, endpoint string) error {
	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server { return s.server }, nil)
	log.Printf("Streamable HTTP MCP server listening on %s%s", addr, endpoint)
	return s.serveHTTP(ctx, addr, endpoint, handler)
}

func (s *MCPServer) serveHTTP(ctx context.Context, addr, endpoint string, handler http.Handler) error {
	s.reportPoolStats(ctx)
	mux := http.NewServeMux()
	mux.Handle(endpoint, handler)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 0)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
