package imago

// Request is a validated, provider-specific generation request. It is a
// closed union: the only implementations live in this package, one per
// provider, and the only way to obtain one is through the build package.
// An unvalidated request must never reach an adapter.
type Request interface {
	// ProviderID returns the catalog id of the provider this request
	// targets.
	ProviderID() string

	isRequest()
}

// ResponseFormat selects how an upstream returns image payloads.
type ResponseFormat string

const (
	// FormatURL asks the upstream for remote image URLs.
	FormatURL ResponseFormat = "url"
	// FormatB64JSON asks OpenAI-compatible upstreams for inline base64.
	FormatB64JSON ResponseFormat = "b64_json"
	// FormatBase64 asks Together for inline base64.
	FormatBase64 ResponseFormat = "base64"
)

// OutputType selects the Runware image delivery mechanism.
type OutputType string

const (
	OutputURL        OutputType = "URL"
	OutputBase64Data OutputType = "base64Data"
	OutputDataURI    OutputType = "dataURI"
)

// Lora is an auxiliary model weight applied to a Runware generation.
type Lora struct {
	Model  string  `json:"model"`
	Weight float64 `json:"weight"`
}

// XAIRequest targets the xAI image API (OpenAI-compatible).
type XAIRequest struct {
	Prompt string
	Model  string
	N      int // 1..10
	Format ResponseFormat
}

// PollinationsRequest targets the Pollinations image URL API.
type PollinationsRequest struct {
	Prompt  string
	Model   string
	Seed    *int64 // omitted from the outgoing request when nil
	Width   int
	Height  int
	NoLogo  bool
	Private bool
	Enhance bool
}

// TogetherRequest targets the Together images endpoint.
type TogetherRequest struct {
	Prompt string
	Model  string
	Width  int
	Height int
	Steps  int
	N      int // 1..4
	Format ResponseFormat
}

// RunwareRequest targets the Runware task API.
type RunwareRequest struct {
	Prompt         string
	Model          string
	Width          int
	Height         int
	Steps          int
	CFGScale       float64
	N              int    // 1..10
	Seed           *int64 // omitted when nil
	NegativePrompt string // omitted when empty
	Output         OutputType
	Lora           []Lora // omitted when empty
}

// GoogleRequest targets Gemini multimodal generation. Gemini takes no
// numeric image parameters; only the prompt and model reach upstream.
type GoogleRequest struct {
	Prompt string
	Model  string
}

func (r *XAIRequest) ProviderID() string          { return "xai" }
func (r *PollinationsRequest) ProviderID() string { return "pollinations" }
func (r *TogetherRequest) ProviderID() string     { return "together" }
func (r *RunwareRequest) ProviderID() string      { return "runware" }
func (r *GoogleRequest) ProviderID() string       { return "google" }

func (r *XAIRequest) isRequest()          {}
func (r *PollinationsRequest) isRequest() {}
func (r *TogetherRequest) isRequest()     {}
func (r *RunwareRequest) isRequest()      {}
func (r *GoogleRequest) isRequest()       {}
