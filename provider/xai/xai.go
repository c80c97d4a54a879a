// Package xai generates images through the xAI API, which is
// OpenAI-compatible and served through the OpenAI SDK with a custom base URL.
package xai

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spetersoncode/imago"
)

// DefaultBaseURL is the xAI API endpoint.
const DefaultBaseURL = "https://api.x.ai/v1"

const providerID = "xai"

// Client wraps the OpenAI SDK pointed at the xAI API.
type Client struct {
	api     openai.Client
	apiKey  string
	baseURL string
}

// ClientOption configures the xAI client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// New creates an xAI client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.api = openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(c.baseURL),
	)
	return c
}

// Generate runs one image generation call and normalizes the response.
func (c *Client) Generate(ctx context.Context, req *imago.XAIRequest) (*imago.Result, error) {
	if c.apiKey == "" {
		return nil, &imago.ConfigurationError{Provider: providerID, Setting: "API key"}
	}

	params := openai.ImageGenerateParams{
		Model:          openai.ImageModel(req.Model),
		Prompt:         req.Prompt,
		N:              openai.Int(int64(req.N)),
		ResponseFormat: openai.ImageGenerateParamsResponseFormat(req.Format),
	}

	resp, err := c.api.Images.Generate(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	if len(resp.Data) == 0 {
		return nil, &imago.FormatError{Provider: providerID, Reason: "no image data in response"}
	}

	images := make([]imago.GeneratedImage, len(resp.Data))
	for i, img := range resp.Data {
		if img.URL == "" && img.B64JSON == "" {
			return nil, &imago.FormatError{Provider: providerID, Reason: "image entry carries neither url nor b64_json"}
		}
		images[i] = imago.GeneratedImage{
			URL:    img.URL,
			Base64: img.B64JSON,
		}
	}

	return &imago.Result{Images: images}, nil
}

// wrapError maps an OpenAI SDK error to the discriminated error set,
// preferring the structured message nested in the upstream error body.
func wrapError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return &imago.UpstreamError{
			Provider: providerID,
			Message:  err.Error(),
			Cause:    err,
		}
	}

	msg := apiErr.Message
	if msg == "" {
		msg = err.Error()
	}
	status := apiErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &imago.UpstreamError{
		Provider: providerID,
		Status:   status,
		Message:  msg,
		Cause:    err,
	}
}
