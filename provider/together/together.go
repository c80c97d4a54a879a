// Package together generates images through the Together images endpoint.
// There is no official Go SDK, so the adapter speaks the JSON API directly.
package together

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/spetersoncode/imago"
)

// DefaultBaseURL is the Together API endpoint.
const DefaultBaseURL = "https://api.together.xyz"

const providerID = "together"

// Client speaks the Together images API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures the Together client.
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

// New creates a Together client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// generateRequest is the wire shape of POST /v1/images/generations.
type generateRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Steps          int    `json:"steps"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

type generateResponse struct {
	ID   string `json:"id"`
	Data []struct {
		Index   int    `json:"index"`
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate runs one image generation call and normalizes the response.
func (c *Client) Generate(ctx context.Context, req *imago.TogetherRequest) (*imago.Result, error) {
	if c.apiKey == "" {
		return nil, &imago.ConfigurationError{Provider: providerID, Setting: "API key"}
	}

	payload, err := json.Marshal(generateRequest{
		Model:          req.Model,
		Prompt:         req.Prompt,
		Width:          req.Width,
		Height:         req.Height,
		Steps:          req.Steps,
		N:              req.N,
		ResponseFormat: string(req.Format),
	})
	if err != nil {
		return nil, &imago.UpstreamError{Provider: providerID, Message: err.Error(), Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/images/generations", bytes.NewReader(payload))
	if err != nil {
		return nil, &imago.UpstreamError{Provider: providerID, Message: err.Error(), Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &imago.UpstreamError{Provider: providerID, Message: err.Error(), Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &imago.UpstreamError{Provider: providerID, Status: resp.StatusCode, Message: err.Error(), Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, upstreamError(resp.StatusCode, body)
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &imago.FormatError{Provider: providerID, Reason: "response is not valid JSON"}
	}
	if len(out.Data) == 0 {
		return nil, &imago.FormatError{Provider: providerID, Reason: "no image data in response"}
	}

	images := make([]imago.GeneratedImage, len(out.Data))
	for i, d := range out.Data {
		if d.URL == "" && d.B64JSON == "" {
			return nil, &imago.FormatError{Provider: providerID, Reason: "image entry carries neither url nor b64_json"}
		}
		images[i] = imago.GeneratedImage{
			URL:    d.URL,
			Base64: d.B64JSON,
		}
	}

	return &imago.Result{Images: images}, nil
}

// upstreamError prefers the structured message nested in the error body and
// falls back to the raw body text.
func upstreamError(status int, body []byte) error {
	var e errorResponse
	msg := ""
	var details any
	if json.Unmarshal(body, &e) == nil && e.Error.Message != "" {
		msg = e.Error.Message
		details = e.Error
	} else {
		msg = http.StatusText(status)
		if len(body) > 0 {
			details = string(body)
		}
	}
	return &imago.UpstreamError{
		Provider:   providerID,
		Status:     status,
		Message:    msg,
		RawDetails: details,
	}
}
