// Package catalog is the static registry of selectable providers and their
// models. It is the single source of truth for what the build package will
// accept: unknown provider or model ids are rejected before any other work.
//
// The provider set is fixed at process start and immutable; lookups are pure
// and perform no I/O.
package catalog

// Model identifies one model within a provider. The id is opaque and passed
// to the upstream API unmodified.
type Model struct {
	ID   string
	Name string
}

// Provider is one selectable image-generation service.
type Provider struct {
	ID     string
	Name   string
	Models []Model
}

var providers = []Provider{
	{
		ID:   "pollinations",
		Name: "Pollinations",
		Models: []Model{
			{ID: "flux", Name: "flux"},
			{ID: "turbo", Name: "turbo"},
			{ID: "kontext", Name: "kontext"},
			{ID: "gptimage", Name: "gptimage"},
		},
	},
	{
		ID:   "runware",
		Name: "Runware",
		Models: []Model{
			{ID: "runware:100@1", Name: "FLUX.1 Schnell"},
			{ID: "runware:101@1", Name: "FLUX.1 Dev"},
			{ID: "bfl:2@1", Name: "FLUX.1.1 Pro"},
			{ID: "bfl:2@2", Name: "FLUX.1.1 Pro Ultra"},
			{ID: "runware:106@1", Name: "FLUX.1 Kontext Dev"},
			{ID: "bfl:3@1", Name: "FLUX.1 Kontext Pro"},
			{ID: "bfl:4@1", Name: "FLUX.1 Kontext Max"},
		},
	},
	{
		ID:   "together",
		Name: "Together",
		Models: []Model{
			{ID: "black-forest-labs/FLUX.1-schnell-Free", Name: "FLUX.1-schnell-Free"},
			{ID: "black-forest-labs/FLUX.1-schnell", Name: "FLUX.1-schnell"},
		},
	},
	{
		ID:   "google",
		Name: "Google",
		Models: []Model{
			{ID: "gemini-2.0-flash-exp", Name: "gemini-2.0-flash"},
		},
	},
	{
		ID:   "xai",
		Name: "xAI",
		Models: []Model{
			{ID: "grok-2-image", Name: "grok-2-image"},
		},
	},
}

// Providers returns all registered providers in display order. The returned
// slice is a copy; callers cannot mutate the registry.
func Providers() []Provider {
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}

// Find returns the provider with the given id.
func Find(id string) (Provider, bool) {
	for _, p := range providers {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}

// FindModel returns the model with modelID belonging to providerID. It
// reports false when either the provider or the model is unknown.
func FindModel(providerID, modelID string) (Model, bool) {
	p, ok := Find(providerID)
	if !ok {
		return Model{}, false
	}
	for _, m := range p.Models {
		if m.ID == modelID {
			return m, true
		}
	}
	return Model{}, false
}
