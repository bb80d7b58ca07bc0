package postman

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/erraggy/apinorm"
	"github.com/erraggy/apinorm/internal/httputil"
	"github.com/erraggy/apinorm/logging"
	"github.com/erraggy/apinorm/node"
	"github.com/erraggy/apinorm/oaserrors"
	"github.com/erraggy/apinorm/validator"
)

const (
	// DefaultBaseURL is the Postman API root.
	DefaultBaseURL = "https://api.getpostman.com"

	// DefaultTimeout bounds each request made with the default HTTP client.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResponseSize caps the bytes read from one response (64 MiB).
	DefaultMaxResponseSize int64 = 64 << 20
)

// Client is a minimal Postman API client.
type Client struct {
	// BaseURL is the API root, without a trailing slash
	BaseURL string
	// APIKey is sent as the X-API-Key header
	APIKey string
	// HTTPClient performs the requests
	HTTPClient *http.Client
	// UserAgent is sent with every request (default: apinorm.UserAgent())
	UserAgent string
	// MaxResponseSize caps the bytes read from one response
	MaxResponseSize int64
	// Logger receives request-level debug records
	Logger logging.Logger
}

// Option configures a Client.
type Option func(*Client) error

// NewClient creates a Client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, &oaserrors.ConfigError{Option: "api key", Message: "must not be empty"}
	}
	c := &Client{
		BaseURL:         DefaultBaseURL,
		APIKey:          apiKey,
		HTTPClient:      &http.Client{Timeout: DefaultTimeout},
		UserAgent:       apinorm.UserAgent(),
		MaxResponseSize: DefaultMaxResponseSize,
		Logger:          logging.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("postman: %w", err)
		}
	}
	return c, nil
}

// WithBaseURL overrides the API root, e.g. for a mock server.
func WithBaseURL(base string) Option {
	return func(c *Client) error {
		u, err := url.Parse(strings.TrimSpace(base))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return &oaserrors.ConfigError{Option: "base url", Value: base, Message: "must be an absolute URL", Cause: err}
		}
		c.BaseURL = strings.TrimRight(u.String(), "/")
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for requests.
// Timeouts and TLS settings are taken from the provided client as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return &oaserrors.ConfigError{Option: "http client", Message: "must not be nil"}
		}
		c.HTTPClient = hc
		return nil
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua != "" {
			c.UserAgent = ua
		}
		return nil
	}
}

// WithMaxResponseSize sets the response size cap in bytes.
func WithMaxResponseSize(n int64) Option {
	return func(c *Client) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "max response size", Value: n, Message: "must be positive"}
		}
		c.MaxResponseSize = n
		return nil
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) error {
		c.Logger = logging.OrNop(l)
		return nil
	}
}

// FetchOpenAPI downloads the OpenAPI document Postman generates for a
// collection. The endpoint answers with an envelope whose "output" field is
// the document serialized as a JSON string.
func (c *Client) FetchOpenAPI(ctx context.Context, collectionID string) (*node.Node, error) {
	collectionID = strings.TrimSpace(collectionID)
	if collectionID == "" {
		return nil, &oaserrors.ConfigError{Option: "collection id", Message: "must not be empty"}
	}
	endpoint := c.BaseURL + "/collections/" + url.PathEscape(collectionID) + "/transformations"

	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &oaserrors.AcquisitionError{Source: endpoint, Message: "request failed", Cause: err}
	}
	if !httputil.IsSuccess(status) {
		return nil, &oaserrors.AcquisitionError{Source: endpoint, StatusCode: status, Message: apiErrorMessage(body)}
	}

	envelope, err := node.DecodeJSON(body)
	if err != nil {
		return nil, &oaserrors.AcquisitionError{Source: endpoint, StatusCode: status, Message: "response is not JSON", Cause: err}
	}
	output, ok := envelope.Get("output")
	if !ok {
		return nil, &oaserrors.AcquisitionError{Source: endpoint, StatusCode: status, Message: "response has no output field"}
	}
	text, ok := output.StringValue()
	if !ok {
		return nil, &oaserrors.AcquisitionError{Source: endpoint, StatusCode: status, Message: "output field is " + output.Kind().String() + ", not a string"}
	}
	doc, err := node.DecodeJSON([]byte(text))
	if err != nil {
		return nil, &oaserrors.AcquisitionError{Source: endpoint, StatusCode: status, Message: "output field is not valid JSON", Cause: err}
	}
	c.Logger.Debug("fetched openapi document", "collection", collectionID, "bytes", len(text))
	return doc, nil
}

// PublishResult identifies the entity Postman created.
type PublishResult struct {
	ID   string `json:"id"`
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// Publish uploads a collection or environment to a workspace.
func (c *Client) Publish(ctx context.Context, kind validator.DocumentKind, doc *node.Node, workspaceID string) (*PublishResult, error) {
	var field string
	switch kind {
	case validator.KindCollection:
		field = "collection"
	case validator.KindEnvironment:
		field = "environment"
	default:
		return nil, &oaserrors.ConfigError{Option: "kind", Value: kind.String(), Message: "only collections and environments can be published"}
	}
	workspaceID = strings.TrimSpace(workspaceID)
	if workspaceID == "" {
		return nil, &oaserrors.ConfigError{Option: "workspace id", Message: "must not be empty"}
	}
	if !doc.IsObject() {
		return nil, &oaserrors.MalformedDocumentError{Message: "document to publish must be an object"}
	}

	endpoint := c.BaseURL + "/" + field + "s"
	name := documentName(doc, kind)

	payload, err := node.NewObject().
		Set("workspace", node.String(workspaceID)).
		Set(field, doc).
		MarshalJSON()
	if err != nil {
		return nil, &oaserrors.PublishError{Target: endpoint, Name: name, Message: "encoding payload", Cause: err}
	}

	body, status, err := c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return nil, &oaserrors.PublishError{Target: endpoint, Name: name, Message: "request failed", Cause: err}
	}
	if !httputil.IsSuccess(status) {
		return nil, &oaserrors.PublishError{Target: endpoint, Name: name, StatusCode: status, Message: apiErrorMessage(body)}
	}

	var created map[string]PublishResult
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, &oaserrors.PublishError{Target: endpoint, Name: name, StatusCode: status, Message: "unexpected response", Cause: err}
	}
	res := created[field]
	c.Logger.Debug("published document", "kind", kind.String(), "name", name, "uid", res.UID)
	return &res, nil
}

// FetchSchema downloads a JSON Schema document, such as the Postman
// collection schema named by validator.CollectionSchemaURL.
func (c *Client) FetchSchema(ctx context.Context, schemaURL string) ([]byte, error) {
	body, status, err := c.do(ctx, http.MethodGet, schemaURL, nil)
	if err != nil {
		return nil, &oaserrors.AcquisitionError{Source: schemaURL, Message: "request failed", Cause: err}
	}
	if !httputil.IsSuccess(status) {
		return nil, &oaserrors.AcquisitionError{Source: schemaURL, StatusCode: status, Message: http.StatusText(status)}
	}
	return body, nil
}

// FetchSchema downloads a JSON Schema document without API credentials.
func FetchSchema(ctx context.Context, schemaURL string) ([]byte, error) {
	c := &Client{
		HTTPClient:      &http.Client{Timeout: DefaultTimeout},
		UserAgent:       apinorm.UserAgent(),
		MaxResponseSize: DefaultMaxResponseSize,
		Logger:          logging.NopLogger{},
	}
	return c.FetchSchema(ctx, schemaURL)
}

// do sends one request and returns the (size-capped) body and status.
// Only API requests carry the key; other hosts never see it.
func (c *Client) do(ctx context.Context, method, target string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", httputil.MediaTypeJSON)
	if payload != nil {
		req.Header.Set("Content-Type", httputil.MediaTypeJSON)
	}
	if strings.HasPrefix(target, c.BaseURL+"/") {
		req.Header.Set("X-API-Key", c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req) //nolint:gosec // G704 - target is the configured API root or a schema URL
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	c.Logger.Debug("postman request", "method", method, "url", target, "status", resp.StatusCode)

	limit := c.MaxResponseSize
	if limit <= 0 {
		limit = DefaultMaxResponseSize
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, resp.StatusCode, &oaserrors.ResourceLimitError{ResourceType: "response_size", Limit: limit, Message: target}
	}
	return body, resp.StatusCode, nil
}

// apiError is the error envelope returned by the Postman API.
type apiError struct {
	Error struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

const maxErrorSnippet = 200

// apiErrorMessage extracts a readable message from an error response.
func apiErrorMessage(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && (e.Error.Name != "" || e.Error.Message != "") {
		switch {
		case e.Error.Name == "":
			return e.Error.Message
		case e.Error.Message == "":
			return e.Error.Name
		default:
			return e.Error.Name + ": " + e.Error.Message
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorSnippet {
		text = text[:maxErrorSnippet] + "..."
	}
	if text == "" {
		return "empty response"
	}
	return text
}

func documentName(doc *node.Node, kind validator.DocumentKind) string {
	holder := doc
	if kind == validator.KindCollection {
		holder = doc.Lookup("info")
	}
	name, _ := holder.Lookup("name").StringValue()
	return name
}
