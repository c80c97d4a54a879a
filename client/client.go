// Package client is the dispatch router: it holds per-provider credentials,
// lazily constructs adapters, and routes each validated request to the one
// adapter that understands it. The route is a closed type switch over the
// request union, so wiring a new provider is a compile-time extension,
// not a string comparison.
package client

import (
	"context"
	"net/http"
	"sync"

	"github.com/spetersoncode/imago"
	"github.com/spetersoncode/imago/provider/google"
	"github.com/spetersoncode/imago/provider/pollinations"
	"github.com/spetersoncode/imago/provider/runware"
	"github.com/spetersoncode/imago/provider/together"
	"github.com/spetersoncode/imago/provider/xai"
)

// APIKeys holds credentials per provider. Pollinations is keyless. A missing
// key only fails dispatches to that provider; the other providers keep
// working.
type APIKeys struct {
	XAI      string
	Google   string
	Together string
	Runware  string
}

// Config holds configuration for creating a dispatch client.
type Config struct {
	// APIKeys contains authentication keys for each provider.
	APIKeys APIKeys

	// HTTPClient is used by the adapters that speak raw HTTP. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client
}

// Client routes validated requests to provider adapters. Adapters are
// initialized on first use and reused across dispatches; dispatches share no
// other state and may run concurrently.
type Client struct {
	cfg Config

	mu           sync.Mutex
	xai          *xai.Client
	pollinations *pollinations.Client
	together     *together.Client
	runware      *runware.Client
	google       *google.Client
}

// New creates a dispatch client from cfg. Missing credentials are not an
// error here; they surface as configuration errors when the corresponding
// provider is dispatched to.
func New(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Dispatch routes req to its provider's adapter and returns the normalized
// result. A request lifecycle is strictly linear: a failed dispatch is
// terminal and the caller must rebuild the request to try again.
func (c *Client) Dispatch(ctx context.Context, req imago.Request) (*imago.Result, error) {
	switch r := req.(type) {
	case *imago.XAIRequest:
		a, err := c.xaiAdapter()
		if err != nil {
			return nil, err
		}
		return a.Generate(ctx, r)
	case *imago.PollinationsRequest:
		return c.pollinationsAdapter().Generate(ctx, r)
	case *imago.TogetherRequest:
		a, err := c.togetherAdapter()
		if err != nil {
			return nil, err
		}
		return a.Generate(ctx, r)
	case *imago.RunwareRequest:
		a, err := c.runwareAdapter()
		if err != nil {
			return nil, err
		}
		return a.Generate(ctx, r)
	case *imago.GoogleRequest:
		a, err := c.googleAdapter(ctx)
		if err != nil {
			return nil, err
		}
		return a.Generate(ctx, r)
	}
	// Unreachable while the request union and this switch agree; kept as
	// the single chokepoint for a variant with no wired adapter.
	return nil, &imago.ConfigurationError{Provider: req.ProviderID(), Setting: "adapter"}
}

func (c *Client) xaiAdapter() (*xai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.xai == nil {
		if c.cfg.APIKeys.XAI == "" {
			return nil, &imago.ConfigurationError{Provider: "xai", Setting: "API key"}
		}
		c.xai = xai.New(c.cfg.APIKeys.XAI)
	}
	return c.xai, nil
}

func (c *Client) pollinationsAdapter() *pollinations.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pollinations == nil {
		var opts []pollinations.ClientOption
		if c.cfg.HTTPClient != nil {
			opts = append(opts, pollinations.WithHTTPClient(c.cfg.HTTPClient))
		}
		c.pollinations = pollinations.New(opts...)
	}
	return c.pollinations
}

func (c *Client) togetherAdapter() (*together.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.together == nil {
		if c.cfg.APIKeys.Together == "" {
			return nil, &imago.ConfigurationError{Provider: "together", Setting: "API key"}
		}
		var opts []together.ClientOption
		if c.cfg.HTTPClient != nil {
			opts = append(opts, together.WithHTTPClient(c.cfg.HTTPClient))
		}
		c.together = together.New(c.cfg.APIKeys.Together, opts...)
	}
	return c.together, nil
}

func (c *Client) runwareAdapter() (*runware.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.runware == nil {
		if c.cfg.APIKeys.Runware == "" {
			return nil, &imago.ConfigurationError{Provider: "runware", Setting: "API key"}
		}
		var opts []runware.ClientOption
		if c.cfg.HTTPClient != nil {
			opts = append(opts, runware.WithHTTPClient(c.cfg.HTTPClient))
		}
		c.runware = runware.New(c.cfg.APIKeys.Runware, opts...)
	}
	return c.runware, nil
}

func (c *Client) googleAdapter(ctx context.Context) (*google.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.google == nil {
		if c.cfg.APIKeys.Google == "" {
			return nil, &imago.ConfigurationError{Provider: "google", Setting: "API key"}
		}
		g, err := google.New(ctx, c.cfg.APIKeys.Google)
		if err != nil {
			return nil, err
		}
		c.google = g
	}
	return c.google, nil
}
