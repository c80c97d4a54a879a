package imago

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "n", Reason: "must be between 1 and 10"}

	assert.Equal(t, "invalid n: must be between 1 and 10", err.Error())
	assert.Equal(t, KindValidation, err.Kind())
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
}

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Provider: "runware", Setting: "API key"}

	assert.Equal(t, "runware: API key is not configured", err.Error())
	assert.Equal(t, KindConfiguration, err.Kind())
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestUpstreamError(t *testing.T) {
	t.Run("formats provider and message", func(t *testing.T) {
		err := &UpstreamError{Provider: "xai", Status: 429, Message: "quota exceeded"}
		assert.Equal(t, "xai: quota exceeded", err.Error())
		assert.Equal(t, 429, err.HTTPStatus())
	})

	t.Run("defaults to 500 when status is unknown", func(t *testing.T) {
		err := &UpstreamError{Provider: "together", Message: "connection refused"}
		assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
	})

	t.Run("unwraps its cause", func(t *testing.T) {
		cause := errors.New("dial tcp: timeout")
		err := &UpstreamError{Provider: "together", Message: "transport failure", Cause: cause}
		assert.ErrorIs(t, err, cause)
	})
}

func TestFormatError(t *testing.T) {
	err := &FormatError{Provider: "google", Reason: "no image data in response"}

	assert.Equal(t, "google: unexpected response: no image data in response", err.Error())
	assert.Equal(t, KindFormat, err.Kind())
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"validation", &ValidationError{Field: "prompt"}, KindValidation},
		{"configuration", &ConfigurationError{Provider: "xai"}, KindConfiguration},
		{"upstream", &UpstreamError{Provider: "xai"}, KindUpstream},
		{"format", &FormatError{Provider: "xai"}, KindFormat},
		{"wrapped", fmt.Errorf("dispatch: %w", &FormatError{Provider: "xai"}), KindFormat},
		{"plain error", errors.New("boom"), ErrorKind("")},
		{"nil", nil, ErrorKind("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	t.Run("maps each kind to its transport status", func(t *testing.T) {
		assert.Equal(t, 400, HTTPStatus(&ValidationError{Field: "n"}))
		assert.Equal(t, 500, HTTPStatus(&ConfigurationError{Provider: "xai"}))
		assert.Equal(t, 429, HTTPStatus(&UpstreamError{Provider: "xai", Status: 429}))
		assert.Equal(t, 500, HTTPStatus(&FormatError{Provider: "xai"}))
	})

	t.Run("unclassified errors map to 500", func(t *testing.T) {
		assert.Equal(t, 500, HTTPStatus(errors.New("boom")))
	})

	t.Run("sees through wrapping", func(t *testing.T) {
		err := fmt.Errorf("dispatch: %w", &UpstreamError{Provider: "xai", Status: 503})
		assert.Equal(t, 503, HTTPStatus(err))
	})
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsValidation(&ValidationError{Field: "n"}))
	assert.True(t, IsConfiguration(&ConfigurationError{Provider: "xai"}))
	assert.True(t, IsUpstream(&UpstreamError{Provider: "xai"}))
	assert.True(t, IsFormat(&FormatError{Provider: "xai"}))

	assert.False(t, IsValidation(&FormatError{Provider: "xai"}))
	assert.False(t, IsUpstream(errors.New("boom")))
}
