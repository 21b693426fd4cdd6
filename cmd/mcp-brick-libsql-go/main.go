package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/metrics"
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/ontology"
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/server"
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/vocabulary"
)

var (
	libsqlURL    = flag.String("libsql-url", "", "libSQL database URL (default: file:./brick.db)")
	authToken    = flag.String("auth-token", "", "Authentication token for remote databases")
	ontologySrc  = flag.String("ontology", "", "Path or URL of the Brick ontology (default: Brick 1.4 Turtle)")
	reload       = flag.Bool("reload", false, "Parse the ontology again even if it is already stored")
	scorerName   = flag.String("scorer", "", "Similarity metric for suggestions: "+strings.Join(vocabulary.ScorerNames(), ", "))
	transport    = flag.String("transport", "stdio", "Transport to use: stdio, sse or http")
	addr         = flag.String("addr", ":8080", "Address to listen on when using SSE or HTTP transport")
	sseEndpoint  = flag.String("sse-endpoint", "/sse", "SSE endpoint path when using SSE transport")
	httpEndpoint = flag.String("http-endpoint", "/mcp", "Endpoint path when using streamable HTTP transport")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, closing server...")
		cancel()
	}()

	// Initialize store configuration
	config := ontology.NewConfig()

	// Initialize metrics (noop if disabled)
	metrics.InitFromEnv()

	// Override with command line flags if provided
	if *libsqlURL != "" {
		config.URL = *libsqlURL
	}
	if *authToken != "" {
		config.AuthToken = *authToken
	}
	if *ontologySrc != "" {
		config.Source = *ontologySrc
	}
	if *reload {
		config.Reload = true
	}
	name := *scorerName
	if name == "" {
		name = os.Getenv("SIMILARITY_SCORER")
	}
	scorer, err := vocabulary.NewScorer(name)
	if err != nil {
		log.Fatalf("Invalid scorer: %v", err)
	}

	// Open the store and load the ontology
	store, err := ontology.Open(ctx, config)
	if err != nil {
		log.Fatalf("Failed to open ontology store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	snap, err := vocabulary.Build(ctx, store)
	if err != nil {
		store.Close()
		log.Fatalf("Failed to build vocabulary: %v", err)
	}
	log.Printf("Vocabulary ready: %d classes, %d properties, %d tags, %d labels (scorer %s)",
		len(snap.Classes()), len(snap.Properties()), len(snap.Tags()), len(snap.Labels()), scorer.Name())

	// Create MCP server
	mcpServer := server.NewMCPServer(store, vocabulary.NewResolver(snap, vocabulary.WithScorer(scorer)))

	// Run the server with selected transport
	log.Println("Starting MCP Brick LibSQL server...")
	switch *transport {
	case "stdio":
		go func() {
			if err := mcpServer.Run(ctx); err != nil {
				log.Printf("Server error: %v", err)
			}
			cancel()
		}()
	case "sse":
		go func() {
			if err := mcpServer.RunSSE(ctx, *addr, *sseEndpoint); err != nil {
				log.Printf("SSE server error: %v", err)
				cancel()
			}
		}()
	case "http":
		go func() {
			if err := mcpServer.RunHTTP(ctx, *addr, *httpEndpoint); err != nil {
				log.Printf("HTTP server error: %v", err)
				cancel()
			}
		}()
	default:
		store.Close()
		log.Fatalf("unknown transport: %s (expected: stdio, sse or http)", *transport)
	}

	<-ctx.Done()

	log.Println("Server stopped")
}
