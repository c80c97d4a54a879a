// Package pollinations generates images through the Pollinations URL API.
// Pollinations is keyless: the request is a single GET whose response body
// is the image itself, which the adapter base64-encodes and pairs with the
// declared Content-Type.
package pollinations

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spetersoncode/imago"
)

// DefaultBaseURL is the Pollinations image endpoint.
const DefaultBaseURL = "https://pollinations.ai"

const providerID = "pollinations"

// errorBodyLimit caps how much of an upstream error body is carried into
// the error message.
const errorBodyLimit = 2048

// Client fetches images from Pollinations.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures the Pollinations client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Pollinations client. No credentials are required.
func New(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate fetches one image and normalizes it to inline base64 data.
func (c *Client) Generate(ctx context.Context, req *imago.PollinationsRequest) (*imago.Result, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(req), nil)
	if err != nil {
		return nil, &imago.UpstreamError{Provider: providerID, Message: err.Error(), Cause: err}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &imago.UpstreamError{Provider: providerID, Message: err.Error(), Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return nil, &imago.UpstreamError{
			Provider: providerID,
			Status:   resp.StatusCode,
			Message:  msg,
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &imago.UpstreamError{Provider: providerID, Message: err.Error(), Cause: err}
	}
	if len(data) == 0 {
		return nil, &imago.FormatError{Provider: providerID, Reason: "empty image body"}
	}

	mimeType := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	return &imago.Result{
		Images: []imago.GeneratedImage{{
			Base64:   base64.StdEncoding.EncodeToString(data),
			MIMEType: mimeType,
		}},
	}, nil
}

// requestURL encodes the prompt into the path and the remaining parameters
// into the query string. An absent seed stays absent.
func (c *Client) requestURL(req *imago.PollinationsRequest) string {
	params := url.Values{}
	params.Set("model", req.Model)
	params.Set("width", strconv.Itoa(req.Width))
	params.Set("height", strconv.Itoa(req.Height))
	params.Set("nologo", strconv.FormatBool(req.NoLogo))
	params.Set("private", strconv.FormatBool(req.Private))
	params.Set("enhance", strconv.FormatBool(req.Enhance))
	if req.Seed != nil {
		params.Set("seed", strconv.FormatInt(*req.Seed, 10))
	}
	return fmt.Sprintf("%s/p/%s?%s", c.baseURL, url.PathEscape(req.Prompt), params.Encode())
}
