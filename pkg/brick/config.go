package brick

import (
	"time"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/ontology"
)

// Config exposes a stable wrapper for store and resolver configuration in
// package mode. Most fields map directly to internal/ontology.Config.
type Config struct {
	URL          string
	AuthToken    string
	Source       string
	Reload       bool
	FetchTimeout time.Duration
	Namespace    string
	TagNamespace string

	MaxOpenConns   int
	MaxIdleConns   int
	ConnMaxIdleSec int
	ConnMaxLifeSec int

	// Scorer names the similarity metric; empty selects the default
	Scorer string
}

// DefaultConfig returns a Config populated from the environment
func DefaultConfig() *Config {
	c := ontology.NewConfig()
	return &Config{
		URL:            c.URL,
		AuthToken:      c.AuthToken,
		Source:         c.Source,
		Reload:         c.Reload,
		FetchTimeout:   c.FetchTimeout,
		Namespace:      c.Namespace,
		TagNamespace:   c.TagNamespace,
		MaxOpenConns:   c.MaxOpenConns,
		MaxIdleConns:   c.MaxIdleConns,
		ConnMaxIdleSec: c.ConnMaxIdleSec,
		ConnMaxLifeSec: c.ConnMaxLifeSec,
	}
}

func (c *Config) toInternal() *ontology.Config {
	return &ontology.Config{
		URL:            c.URL,
		AuthToken:      c.AuthToken,
		Source:         c.Source,
		Reload:         c.Reload,
		FetchTimeout:   c.FetchTimeout,
		Namespace:      c.Namespace,
		TagNamespace:   c.TagNamespace,
		MaxOpenConns:   c.MaxOpenConns,
		MaxIdleConns:   c.MaxIdleConns,
		ConnMaxIdleSec: c.ConnMaxIdleSec,
		ConnMaxLifeSec: c.ConnMaxLifeSec,
	}
}
