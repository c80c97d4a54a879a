// Package google generates images through Gemini multimodal generation.
// Gemini interleaves narrative text and inline image data in one response;
// the adapter separates them, keeping text fragments out of the image list.
package google

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/spetersoncode/imago"
	"google.golang.org/genai"
)

const providerID = "google"

// Client wraps the Google GenAI SDK.
type Client struct {
	client *genai.Client
}

// New creates a Google GenAI client with the given API key.
func New(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, &imago.ConfigurationError{Provider: providerID, Setting: "API key"}
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Client{client: client}, nil
}

// Generate runs one multimodal generation call and normalizes the response.
func (c *Client) Generate(ctx context.Context, req *imago.GoogleRequest) (*imago.Result, error) {
	temperature := float32(1)
	topP := float32(0.95)
	topK := float32(40)

	config := &genai.GenerateContentConfig{
		Temperature:        &temperature,
		TopP:               &topP,
		TopK:               &topK,
		MaxOutputTokens:    8192,
		ResponseModalities: []string{"IMAGE", "TEXT"},
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, wrapError(err)
	}

	return normalize(resp)
}

// normalize separates a Gemini response into image parts and accompanying
// text. A response with no interpretable parts, or with parts but no image
// data, is a format failure even under an upstream success status.
func normalize(resp *genai.GenerateContentResponse) (*imago.Result, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &imago.FormatError{Provider: providerID, Reason: "no parts in response"}
	}

	var images []imago.GeneratedImage
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch {
		case part.Text != "":
			if text.Len() > 0 {
				text.WriteString("\n")
			}
			text.WriteString(part.Text)
		case part.InlineData != nil && len(part.InlineData.Data) > 0:
			images = append(images, imago.GeneratedImage{
				Base64:   base64.StdEncoding.EncodeToString(part.InlineData.Data),
				MIMEType: part.InlineData.MIMEType,
			})
		}
	}

	if len(images) == 0 {
		return nil, &imago.FormatError{Provider: providerID, Reason: "no image data in response"}
	}

	return &imago.Result{Images: images, Text: text.String()}, nil
}

// wrapError maps a Google GenAI error to the discriminated error set,
// preserving the upstream status code when the SDK exposes one.
func wrapError(err error) error {
	var apiErr genai.APIError
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
	return &imago.UpstreamError{
		Provider: providerID,
		Status:   apiErr.Code,
		Message:  msg,
		Cause:    err,
	}
}
