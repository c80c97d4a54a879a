package imago

// GeneratedImage is one normalized image. Exactly one of URL or Base64 is
// populated, regardless of which provider produced it.
type GeneratedImage struct {
	// URL points at a remote image (passed through from the upstream
	// unmodified).
	URL string `json:"url,omitempty"`
	// Base64 holds inline base64-encoded image bytes.
	Base64 string `json:"base64,omitempty"`
	// MIMEType is the declared type of inline data, when the upstream
	// declared one. Empty for upstreams that return bare base64.
	MIMEType string `json:"mimeType,omitempty"`
}

// Result is the normalized outcome of one successful generation. Adapters
// never return a Result with zero images; an empty upstream response is a
// FormatError instead.
type Result struct {
	Images []GeneratedImage `json:"images"`
	// Text carries narrative fragments some upstreams interleave with
	// image data.
	Text string `json:"text,omitempty"`
	// Meta holds opaque provider-specific metadata, such as Runware task
	// identifiers.
	Meta map[string]any `json:"providerMeta,omitempty"`
}
