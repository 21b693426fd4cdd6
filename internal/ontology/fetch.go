package ontology

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/knakk/rdf"
)

// FormatFor picks the RDF serialization from a source's file extension.
// Unknown extensions are treated as Turtle.
func FormatFor(source string) rdf.Format {
	p := source
	if u, err := url.Parse(source); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".nt":
		return rdf.NTriples
	case ".rdf", ".owl", ".xml":
		return rdf.RDFXML
	default:
		return rdf.Turtle
	}
}

// openSource returns a reader over the ontology document at source, which
// is either an http(s) URL or a local path (optionally file:// prefixed).
func openSource(ctx context.Context, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request for %s: %w", source, err)
		}
		req.Header.Set("Accept", "text/turtle, application/n-triples;q=0.9, application/rdf+xml;q=0.8")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", source, resp.Status)
		}
		return resp.Body, nil
	}

	f, err := os.Open(strings.TrimPrefix(source, "file://"))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", source, err)
	}
	return f, nil
}
