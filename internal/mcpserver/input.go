package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/erraggy/apinorm"
	"github.com/erraggy/apinorm/internal/httputil"
	"github.com/erraggy/apinorm/internal/options"
	"github.com/erraggy/apinorm/node"
)

// documentInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a Postman export or OpenAPI file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch the document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// cacheEntry holds a decoded document with its expiry.
type cacheEntry struct {
	doc       *node.Node
	expiresAt time.Time
}

// documentCache keeps recently decoded documents for the session. File and
// inline inputs are keyed by a SHA-256 of their bytes, URL inputs by the URL.
// Callers always receive a private clone, since every tool mutates its input.
type documentCache struct {
	entries *lru.Cache[string, cacheEntry]
	ttl     time.Duration
}

func newDocumentCache(size int, ttl time.Duration) *documentCache {
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		// size is validated positive by loadConfig
		panic(err)
	}
	return &documentCache{entries: entries, ttl: ttl}
}

var docCache = newDocumentCache(cfg.CacheMaxSize, cfg.CacheTTL)

// get returns a clone of the cached document, dropping expired entries.
func (c *documentCache) get(key string) (*node.Node, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.entries.Remove(key)
		return nil, false
	}
	return e.doc.Clone(), true
}

func (c *documentCache) put(key string, doc *node.Node) {
	c.entries.Add(key, cacheEntry{doc: doc.Clone(), expiresAt: time.Now().Add(c.ttl)})
}

func (c *documentCache) size() int {
	return c.entries.Len()
}

// reset clears all cached entries. Used in tests.
func (c *documentCache) reset() {
	c.entries.Purge()
}

func contentKey(data []byte) string {
	h := sha256.Sum256(data)
	return "content:" + hex.EncodeToString(h[:])
}

// resolve decodes the document from whichever input was provided, using the
// cache when enabled.
func (in documentInput) resolve(ctx context.Context) (*node.Node, error) {
	if err := options.RequireOne(
		options.Source{Name: "file", Set: in.File != ""},
		options.Source{Name: "url", Set: in.URL != ""},
		options.Source{Name: "content", Set: in.Content != ""},
	); err != nil {
		return nil, err
	}
	if in.Content != "" && int64(len(in.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set APINORM_MCP_MAX_INLINE_SIZE to increase",
			len(in.Content), cfg.MaxInlineSize)
	}

	if in.URL != "" {
		key := "url:" + in.URL
		if doc, ok := cacheGet(key); ok {
			return doc, nil
		}
		data, err := fetchURL(ctx, in.URL)
		if err != nil {
			return nil, err
		}
		return decodeAndCache(key, data)
	}

	var data []byte
	if in.File != "" {
		b, err := os.ReadFile(in.File) //nolint:gosec // G304 - the MCP client names the file
		if err != nil {
			return nil, fmt.Errorf("reading file: %w", err)
		}
		data = b
	} else {
		data = []byte(in.Content)
	}
	key := contentKey(data)
	if doc, ok := cacheGet(key); ok {
		return doc, nil
	}
	return decodeAndCache(key, data)
}

func cacheGet(key string) (*node.Node, bool) {
	if !cfg.CacheEnabled {
		return nil, false
	}
	return docCache.get(key)
}

func decodeAndCache(key string, data []byte) (*node.Node, error) {
	doc, err := node.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if cfg.CacheEnabled {
		docCache.put(key, doc)
	}
	return doc, nil
}

// fetchURL downloads a document, refusing private addresses unless
// APINORM_MCP_ALLOW_PRIVATE_IPS is set.
func fetchURL(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", apinorm.UserAgent())

	resp, err := newHTTPClient().Do(req) //nolint:gosec // G704 - URL is checked by the safe client
	if err != nil {
		return nil, fmt.Errorf("fetching URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if !httputil.IsSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("fetching URL: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxInlineSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(data)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("response exceeds maximum %d bytes", cfg.MaxInlineSize)
	}
	return data, nil
}
