package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Document cache settings.
	CacheEnabled bool
	CacheMaxSize int
	CacheTTL     time.Duration

	// Input limits.
	MaxInlineSize   int64
	FetchTimeout    time.Duration
	AllowPrivateIPs bool

	// Result paging.
	DefaultLimit int
	MaxLimit     int

	// Engine defaults applied when a tool call leaves the setting out.
	Strict            bool
	PreferredServer   string
	ServerDescription string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from APINORM_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:      envBool("APINORM_MCP_CACHE_ENABLED", true),
		CacheMaxSize:      envInt("APINORM_MCP_CACHE_MAX_SIZE", 16),
		CacheTTL:          envDuration("APINORM_MCP_CACHE_TTL", 15*time.Minute),
		MaxInlineSize:     int64(envInt("APINORM_MCP_MAX_INLINE_SIZE", 10*1024*1024)),
		FetchTimeout:      envDuration("APINORM_MCP_FETCH_TIMEOUT", 30*time.Second),
		AllowPrivateIPs:   envBool("APINORM_MCP_ALLOW_PRIVATE_IPS", false),
		DefaultLimit:      envInt("APINORM_MCP_LIMIT", 100),
		MaxLimit:          envInt("APINORM_MCP_MAX_LIMIT", 1000),
		Strict:            envBool("APINORM_MCP_STRICT", false),
		PreferredServer:   strings.TrimSpace(os.Getenv("APINORM_MCP_PREFERRED_SERVER")),
		ServerDescription: strings.TrimSpace(os.Getenv("APINORM_MCP_SERVER_DESCRIPTION")),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
