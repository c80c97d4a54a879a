// Package build validates raw user input against a provider's parameter
// rules and constructs the provider-specific request variant. It is the only
// constructor of imago.Request values: if Build returns an error, no request
// exists, and nothing downstream can see partially validated input.
//
// Rules are evaluated in a fixed order and the first violation wins:
// provider and model resolve in the catalog, the prompt is non-empty after
// trimming, then the provider's numeric fields parse and lie within its
// bounds. Out-of-range values are hard failures; the builder never clamps.
// Absent numeric fields take the provider's documented defaults, except the
// seed, which is omitted from the outgoing request when the caller supplied
// none.
package build

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spetersoncode/imago"
	"github.com/spetersoncode/imago/catalog"
)

// Fields is raw, possibly stringly-typed user input. Numeric fields use
// json.Number so both JSON numbers and form-style numeric strings decode
// into it; an empty Number means the caller supplied nothing.
type Fields struct {
	Prompt         string       `json:"prompt"`
	Model          string       `json:"model"`
	N              int          `json:"n,omitempty"`
	Format         string       `json:"response_format,omitempty"`
	Seed           json.Number  `json:"seed,omitempty"`
	Width          json.Number  `json:"width,omitempty"`
	Height         json.Number  `json:"height,omitempty"`
	Steps          json.Number  `json:"steps,omitempty"`
	CFGScale       json.Number  `json:"cfg_scale,omitempty"`
	NegativePrompt string       `json:"negative_prompt,omitempty"`
	Output         string       `json:"output_type,omitempty"`
	Lora           []imago.Lora `json:"lora,omitempty"`
	NoLogo         bool         `json:"nologo,omitempty"`
	Private        bool         `json:"private,omitempty"`
	Enhance        bool         `json:"enhance,omitempty"`
}

// Parameter bounds per provider. The builder rejects values outside these
// windows rather than clamping them.
const (
	xaiMaxN      = 10
	togetherMaxN = 4
	runwareMaxN  = 10

	togetherMaxSteps = 50
	runwareMaxSteps  = 100

	runwareDimStride = 64
	runwareDimMin    = 64
	runwareDimMax    = 2048

	runwareMaxCFG = 50
)

// Build validates raw against providerID's rules and returns the
// provider-specific request variant. Any violation yields an
// *imago.ValidationError naming the offending field; no network activity
// occurs here under any circumstance.
func Build(providerID string, raw Fields) (imago.Request, error) {
	if _, ok := catalog.Find(providerID); !ok {
		return nil, &imago.ValidationError{Field: "provider", Reason: fmt.Sprintf("unknown provider %q", providerID)}
	}
	if _, ok := catalog.FindModel(providerID, raw.Model); !ok {
		return nil, &imago.ValidationError{Field: "model", Reason: fmt.Sprintf("model %q does not belong to provider %q", raw.Model, providerID)}
	}

	prompt := strings.TrimSpace(raw.Prompt)
	if prompt == "" {
		return nil, &imago.ValidationError{Field: "prompt", Reason: "must not be empty"}
	}

	switch providerID {
	case "xai":
		return buildXAI(prompt, raw)
	case "pollinations":
		return buildPollinations(prompt, raw)
	case "together":
		return buildTogether(prompt, raw)
	case "runware":
		return buildRunware(prompt, raw)
	case "google":
		return &imago.GoogleRequest{Prompt: prompt, Model: raw.Model}, nil
	}
	// Unreachable while the catalog and this switch agree.
	return nil, &imago.ValidationError{Field: "provider", Reason: fmt.Sprintf("unknown provider %q", providerID)}
}

func buildXAI(prompt string, raw Fields) (imago.Request, error) {
	n, err := countIn(raw.N, 1, xaiMaxN)
	if err != nil {
		return nil, err
	}
	format, err := responseFormat(raw.Format, imago.FormatB64JSON, imago.FormatURL, imago.FormatB64JSON)
	if err != nil {
		return nil, err
	}
	return &imago.XAIRequest{
		Prompt: prompt,
		Model:  raw.Model,
		N:      n,
		Format: format,
	}, nil
}

func buildPollinations(prompt string, raw Fields) (imago.Request, error) {
	width, err := dimension("width", raw.Width, 1024)
	if err != nil {
		return nil, err
	}
	height, err := dimension("height", raw.Height, 1024)
	if err != nil {
		return nil, err
	}
	seed, err := optionalSeed(raw.Seed)
	if err != nil {
		return nil, err
	}
	return &imago.PollinationsRequest{
		Prompt:  prompt,
		Model:   raw.Model,
		Seed:    seed,
		Width:   width,
		Height:  height,
		NoLogo:  raw.NoLogo,
		Private: raw.Private,
		Enhance: raw.Enhance,
	}, nil
}

func buildTogether(prompt string, raw Fields) (imago.Request, error) {
	n, err := countIn(raw.N, 1, togetherMaxN)
	if err != nil {
		return nil, err
	}
	width, err := dimension("width", raw.Width, 1024)
	if err != nil {
		return nil, err
	}
	height, err := dimension("height", raw.Height, 768)
	if err != nil {
		return nil, err
	}
	steps, err := intIn("steps", raw.Steps, 4, 1, togetherMaxSteps)
	if err != nil {
		return nil, err
	}
	format, err := responseFormat(raw.Format, imago.FormatBase64, imago.FormatURL, imago.FormatBase64)
	if err != nil {
		return nil, err
	}
	return &imago.TogetherRequest{
		Prompt: prompt,
		Model:  raw.Model,
		Width:  width,
		Height: height,
		Steps:  steps,
		N:      n,
		Format: format,
	}, nil
}

func buildRunware(prompt string, raw Fields) (imago.Request, error) {
	n, err := countIn(raw.N, 1, runwareMaxN)
	if err != nil {
		return nil, err
	}
	width, err := strideDimension("width", raw.Width, 1024)
	if err != nil {
		return nil, err
	}
	height, err := strideDimension("height", raw.Height, 1024)
	if err != nil {
		return nil, err
	}
	steps, err := intIn("steps", raw.Steps, 40, 1, runwareMaxSteps)
	if err != nil {
		return nil, err
	}
	cfg, err := cfgScale(raw.CFGScale, 7)
	if err != nil {
		return nil, err
	}
	seed, err := optionalSeed(raw.Seed)
	if err != nil {
		return nil, err
	}
	output, err := outputType(raw.Output)
	if err != nil {
		return nil, err
	}
	for i, l := range raw.Lora {
		if strings.TrimSpace(l.Model) == "" {
			return nil, &imago.ValidationError{Field: fmt.Sprintf("lora[%d].model", i), Reason: "must not be empty"}
		}
		if l.Weight <= 0 {
			return nil, &imago.ValidationError{Field: fmt.Sprintf("lora[%d].weight", i), Reason: "must be positive"}
		}
	}
	req := &imago.RunwareRequest{
		Prompt:         prompt,
		Model:          raw.Model,
		Width:          width,
		Height:         height,
		Steps:          steps,
		CFGScale:       cfg,
		N:              n,
		Seed:           seed,
		NegativePrompt: strings.TrimSpace(raw.NegativePrompt),
		Output:         output,
	}
	if len(raw.Lora) > 0 {
		req.Lora = append([]imago.Lora(nil), raw.Lora...)
	}
	return req, nil
}

// countIn validates the count-of-images field. Zero means the caller
// supplied nothing and takes min.
func countIn(n, min, max int) (int, error) {
	if n == 0 {
		return min, nil
	}
	if n < min || n > max {
		return 0, &imago.ValidationError{Field: "n", Reason: fmt.Sprintf("must be between %d and %d", min, max)}
	}
	return n, nil
}

// intIn parses an integer field and checks it against [min, max]. An absent
// value takes def.
func intIn(field string, num json.Number, def, min, max int) (int, error) {
	if num == "" {
		return def, nil
	}
	v, err := strconv.Atoi(num.String())
	if err != nil {
		return 0, &imago.ValidationError{Field: field, Reason: "must be an integer"}
	}
	if v < min || v > max {
		return 0, &imago.ValidationError{Field: field, Reason: fmt.Sprintf("must be between %d and %d", min, max)}
	}
	return v, nil
}

// dimension parses a width/height field that only needs to be positive.
func dimension(field string, num json.Number, def int) (int, error) {
	if num == "" {
		return def, nil
	}
	v, err := strconv.Atoi(num.String())
	if err != nil {
		return 0, &imago.ValidationError{Field: field, Reason: "must be an integer"}
	}
	if v <= 0 {
		return 0, &imago.ValidationError{Field: field, Reason: "must be positive"}
	}
	return v, nil
}

// strideDimension parses a width/height field that must be a multiple of the
// Runware stride within its dimension window.
func strideDimension(field string, num json.Number, def int) (int, error) {
	v, err := intIn(field, num, def, runwareDimMin, runwareDimMax)
	if err != nil {
		return 0, err
	}
	if v%runwareDimStride != 0 {
		return 0, &imago.ValidationError{Field: field, Reason: fmt.Sprintf("must be a multiple of %d", runwareDimStride)}
	}
	return v, nil
}

// cfgScale parses the guidance scale as a positive float within the Runware
// window.
func cfgScale(num json.Number, def float64) (float64, error) {
	if num == "" {
		return def, nil
	}
	v, err := num.Float64()
	if err != nil {
		return 0, &imago.ValidationError{Field: "cfg_scale", Reason: "must be a number"}
	}
	if v <= 0 || v > runwareMaxCFG {
		return 0, &imago.ValidationError{Field: "cfg_scale", Reason: fmt.Sprintf("must be greater than 0 and at most %d", runwareMaxCFG)}
	}
	return v, nil
}

// optionalSeed parses the seed when present. There is no server-side seed
// default: an absent seed stays absent so the upstream sees no seed field
// at all.
func optionalSeed(num json.Number) (*int64, error) {
	if num == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(num.String(), 10, 64)
	if err != nil {
		return nil, &imago.ValidationError{Field: "seed", Reason: "must be an integer"}
	}
	return &v, nil
}

func responseFormat(s string, def imago.ResponseFormat, allowed ...imago.ResponseFormat) (imago.ResponseFormat, error) {
	if s == "" {
		return def, nil
	}
	for _, f := range allowed {
		if imago.ResponseFormat(s) == f {
			return f, nil
		}
	}
	return "", &imago.ValidationError{Field: "response_format", Reason: fmt.Sprintf("must be one of %v", allowed)}
}

func outputType(s string) (imago.OutputType, error) {
	switch imago.OutputType(s) {
	case "":
		return imago.OutputURL, nil
	case imago.OutputURL, imago.OutputBase64Data, imago.OutputDataURI:
		return imago.OutputType(s), nil
	}
	return "", &imago.ValidationError{Field: "output_type", Reason: `must be one of ["URL" "base64Data" "dataURI"]`}
}
