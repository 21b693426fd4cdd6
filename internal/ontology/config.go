package ontology

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSource is the Brick release loaded when nothing else is configured
const DefaultSource = "https://brickschema.org/schema/1.4/Brick.ttl"

// Config holds the ontology store configuration
type Config struct {
	URL       string
	AuthToken string

	// Source is a local path or http(s) URL of the ontology document
	Source string
	// Reload forces the source to be parsed again even if it was loaded before
	Reload       bool
	FetchTimeout time.Duration

	Namespace    string
	TagNamespace string

	// Connection pool tuning (optional)
	MaxOpenConns   int
	MaxIdleConns   int
	ConnMaxIdleSec int
	ConnMaxLifeSec int
}

// NewConfig creates a new Config from environment variables
func NewConfig() *Config {
	url := os.Getenv("LIBSQL_URL")
	if url == "" {
		url = "file:./brick.db"
	}

	source := os.Getenv("BRICK_ONTOLOGY")
	if source == "" {
		source = DefaultSource
	}

	ns := os.Getenv("BRICK_NAMESPACE")
	if ns == "" {
		ns = BrickNS
	}
	tagNS := os.Getenv("BRICK_TAG_NAMESPACE")
	if tagNS == "" {
		tagNS = TagNS
	}

	timeout := 60 * time.Second
	if v := os.Getenv("BRICK_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}

	reload := strings.EqualFold(os.Getenv("BRICK_RELOAD"), "true") || os.Getenv("BRICK_RELOAD") == "1"

	return &Config{
		URL:            url,
		AuthToken:      os.Getenv("LIBSQL_AUTH_TOKEN"),
		Source:         source,
		Reload:         reload,
		FetchTimeout:   timeout,
		Namespace:      ns,
		TagNamespace:   tagNS,
		MaxOpenConns:   envInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:   envInt("DB_MAX_IDLE_CONNS"),
		ConnMaxIdleSec: envInt("DB_CONN_MAX_IDLE_SEC"),
		ConnMaxLifeSec: envInt("DB_CONN_MAX_LIFETIME_SEC"),
	}
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
