package buildinfo

// Set at build time via -ldflags "-X github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/buildinfo.Version=..."
var (
	Version   = "dev"
	Revision  = "unknown"
	BuildDate = "unknown"
)
