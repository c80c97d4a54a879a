// Package runware generates images through the Runware task API. Requests
// are posted as a one-element task array identified by a fresh task UUID;
// responses carry per-image delivery fields (URL, base64, or data URI)
// alongside task metadata that is surfaced as provider metadata.
package runware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/spetersoncode/imago"
)

// DefaultBaseURL is the Runware REST endpoint.
const DefaultBaseURL = "https://api.runware.ai/v1"

const providerID = "runware"

const taskTypeInference = "imageInference"

// Client speaks the Runware task API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures the Runware client.
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

// New creates a Runware client with the given API key.
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

// task is the wire shape of one inference task. Optional fields are omitted
// entirely when unset; Runware treats an explicit zero differently from an
// absent field.
type task struct {
	TaskType       string       `json:"taskType"`
	TaskUUID       string       `json:"taskUUID"`
	PositivePrompt string       `json:"positivePrompt"`
	Model          string       `json:"model"`
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	Steps          int          `json:"steps"`
	CFGScale       float64      `json:"CFGScale"`
	NumberResults  int          `json:"numberResults"`
	OutputType     string       `json:"outputType"`
	Seed           *int64       `json:"seed,omitempty"`
	NegativePrompt string       `json:"negativePrompt,omitempty"`
	Lora           []imago.Lora `json:"lora,omitempty"`
}

type taskResult struct {
	TaskType        string `json:"taskType"`
	TaskUUID        string `json:"taskUUID"`
	ImageUUID       string `json:"imageUUID"`
	ImageURL        string `json:"imageURL"`
	ImageBase64Data string `json:"imageBase64Data"`
	ImageDataURI    string `json:"imageDataURI"`
	Seed            int64  `json:"seed"`
}

type taskError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	TaskUUID string `json:"taskUUID"`
}

type apiResponse struct {
	Data   []taskResult `json:"data"`
	Errors []taskError  `json:"errors"`
}

// Generate posts one inference task and normalizes the delivered images.
func (c *Client) Generate(ctx context.Context, req *imago.RunwareRequest) (*imago.Result, error) {
	if c.apiKey == "" {
		return nil, &imago.ConfigurationError{Provider: providerID, Setting: "API key"}
	}

	taskUUID := uuid.NewString()
	payload, err := json.Marshal([]task{{
		TaskType:       taskTypeInference,
		TaskUUID:       taskUUID,
		PositivePrompt: req.Prompt,
		Model:          req.Model,
		Width:          req.Width,
		Height:         req.Height,
		Steps:          req.Steps,
		CFGScale:       req.CFGScale,
		NumberResults:  req.N,
		OutputType:     string(req.Output),
		Seed:           req.Seed,
		NegativePrompt: req.NegativePrompt,
		Lora:           req.Lora,
	}})
	if err != nil {
		return nil, &imago.UpstreamError{Provider: providerID, Message: err.Error(), Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
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

	var out apiResponse
	decodable := json.Unmarshal(body, &out) == nil

	// Task failures arrive in an errors array, sometimes under a 200.
	if decodable && len(out.Errors) > 0 {
		return nil, &imago.UpstreamError{
			Provider:   providerID,
			Status:     resp.StatusCode,
			Message:    out.Errors[0].Message,
			RawDetails: out.Errors,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var details any
		if len(body) > 0 {
			details = string(body)
		}
		return nil, &imago.UpstreamError{
			Provider:   providerID,
			Status:     resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			RawDetails: details,
		}
	}
	if !decodable {
		return nil, &imago.FormatError{Provider: providerID, Reason: "response is not valid JSON"}
	}
	if len(out.Data) == 0 {
		return nil, &imago.FormatError{Provider: providerID, Reason: "no images generated"}
	}

	images := make([]imago.GeneratedImage, 0, len(out.Data))
	imageUUIDs := make([]string, 0, len(out.Data))
	for _, d := range out.Data {
		img, err := normalizeImage(d)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
		if d.ImageUUID != "" {
			imageUUIDs = append(imageUUIDs, d.ImageUUID)
		}
	}

	meta := map[string]any{"taskUUID": taskUUID}
	if len(imageUUIDs) > 0 {
		meta["imageUUIDs"] = imageUUIDs
	}

	return &imago.Result{Images: images, Meta: meta}, nil
}

// normalizeImage maps one delivered image onto the URL-or-base64 contract.
func normalizeImage(d taskResult) (imago.GeneratedImage, error) {
	switch {
	case d.ImageURL != "":
		return imago.GeneratedImage{URL: d.ImageURL}, nil
	case d.ImageBase64Data != "":
		return imago.GeneratedImage{Base64: d.ImageBase64Data}, nil
	case d.ImageDataURI != "":
		mimeType, data, ok := splitDataURI(d.ImageDataURI)
		if !ok {
			return imago.GeneratedImage{}, &imago.FormatError{Provider: providerID, Reason: "malformed data URI"}
		}
		return imago.GeneratedImage{Base64: data, MIMEType: mimeType}, nil
	}
	return imago.GeneratedImage{}, &imago.FormatError{Provider: providerID, Reason: "image entry carries no delivery field"}
}

// splitDataURI splits "data:image/png;base64,AAAA" into its MIME type and
// base64 payload.
func splitDataURI(s string) (mimeType, data string, ok bool) {
	rest, found := strings.CutPrefix(s, "data:")
	if !found {
		return "", "", false
	}
	header, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", "", false
	}
	mimeType, _, _ = strings.Cut(header, ";")
	return mimeType, payload, true
}
