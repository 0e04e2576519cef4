package reclaim

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
)

// Client is an HTTP client for the Reclaim task API.
//
// A Client caches the time-scheme list after the first successful fetch and
// never refreshes it; construct a new Client to see server-side changes.
// A Client is meant for one goroutine at a time.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *log.Logger
	aliases   []SchemeAlias

	schemes       []TimeScheme
	schemesLoaded bool
}

// NewClient creates a new Reclaim API client.
//
// Required options:
//   - WithToken: the API token
//
// Optional options:
//   - WithBaseURL: API root (default: https://api.app.reclaim.ai/api)
//   - WithTimeout: HTTP client timeout (default: 30s)
//   - WithHTTPClient: base transport
//   - WithLogger: destination for warnings (default: stderr)
//   - WithSchemeAlias: extra time-scheme aliases
//
// Example:
//
//	client, err := reclaim.NewClient(reclaim.WithToken(os.Getenv("RECLAIM_API_KEY")))
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if strings.TrimSpace(cfg.token) == "" {
		return nil, newAuthenticationError("API token is required: use WithToken option")
	}
	if cfg.baseURL == "" {
		return nil, newInvalidRecordError("base URL cannot be empty")
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.New(os.Stderr, "reclaim: ", 0)
	}

	base := cfg.transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.baseURL, "/"),
		userAgent: cfg.userAgent,
		logger:    logger,
		aliases:   cfg.aliases,
		http: &http.Client{
			Timeout: cfg.timeout,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.token, TokenType: "Bearer"}),
				Base:   base,
			},
		},
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResolveTimeScheme maps a scheme name, alias or ID to a scheme ID.
// UUID-shaped input is returned as is without contacting the server.
// The boolean is false when nothing matched.
func (c *Client) ResolveTimeScheme(ctx context.Context, nameOrID string) (string, bool) {
	if isUUID(nameOrID) {
		return nameOrID, true
	}
	return matchTimeScheme(nameOrID, c.schemesForResolution(ctx), c.aliases)
}

// resolveTimeSchemeID is ResolveTimeScheme with the failure turned into a
// validation error.
func (c *Client) resolveTimeSchemeID(ctx context.Context, nameOrID string) (string, error) {
	id, ok := c.ResolveTimeScheme(ctx, nameOrID)
	if !ok {
		return "", newUnknownTimeSchemeError(nameOrID)
	}
	return id, nil
}
