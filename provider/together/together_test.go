package together

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/imago"
)

func testRequest() *imago.TogetherRequest {
	return &imago.TogetherRequest{
		Prompt: "a red fox",
		Model:  "black-forest-labs/FLUX.1-schnell-Free",
		Width:  1024,
		Height: 768,
		Steps:  4,
		N:      1,
		Format: imago.FormatBase64,
	}
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a red fox", body["prompt"])
		assert.Equal(t, "black-forest-labs/FLUX.1-schnell-Free", body["model"])
		assert.Equal(t, float64(1024), body["width"])
		assert.Equal(t, float64(768), body["height"])
		assert.Equal(t, float64(4), body["steps"])
		assert.Equal(t, float64(1), body["n"])
		assert.Equal(t, "base64", body["response_format"])

		json.NewEncoder(w).Encode(map[string]any{
			"id": "gen-123",
			"data": []map[string]any{
				{"index": 0, "b64_json": "AAAA"},
			},
		})
	}))
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL))
	result, err := c.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	require.Len(t, result.Images, 1)
	assert.Equal(t, "AAAA", result.Images[0].Base64)
	assert.Empty(t, result.Images[0].URL)
}

func TestGenerateURLFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 0, "url": "https://cdn.example.com/a.png"},
				{"index": 1, "url": "https://cdn.example.com/b.png"},
			},
		})
	}))
	defer srv.Close()

	req := testRequest()
	req.N = 2
	req.Format = imago.FormatURL

	c := New("test-key", WithBaseURL(srv.URL))
	result, err := c.Generate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Images, 2)
	assert.Equal(t, "https://cdn.example.com/a.png", result.Images[0].URL)
	assert.Equal(t, "https://cdn.example.com/b.png", result.Images[1].URL)
}

func TestGenerateUpstreamError(t *testing.T) {
	t.Run("structured error body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "quota exceeded", "type": "rate_limit"},
			})
		}))
		defer srv.Close()

		c := New("test-key", WithBaseURL(srv.URL))
		_, err := c.Generate(context.Background(), testRequest())

		var upstream *imago.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, "together", upstream.Provider)
		assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
		assert.Equal(t, "quota exceeded", upstream.Message)
		assert.Equal(t, http.StatusTooManyRequests, imago.HTTPStatus(err))
	})

	t.Run("unstructured error body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream blew up"))
		}))
		defer srv.Close()

		c := New("test-key", WithBaseURL(srv.URL))
		_, err := c.Generate(context.Background(), testRequest())

		var upstream *imago.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, http.StatusBadGateway, upstream.Status)
		assert.Equal(t, http.StatusText(http.StatusBadGateway), upstream.Message)
		assert.Equal(t, "upstream blew up", upstream.RawDetails)
	})
}

func TestGenerateFormatErrors(t *testing.T) {
	t.Run("empty data array", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
		}))
		defer srv.Close()

		c := New("test-key", WithBaseURL(srv.URL))
		_, err := c.Generate(context.Background(), testRequest())
		assert.True(t, imago.IsFormat(err))
	})

	t.Run("entry with neither url nor b64_json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{{"index": 0}},
			})
		}))
		defer srv.Close()

		c := New("test-key", WithBaseURL(srv.URL))
		_, err := c.Generate(context.Background(), testRequest())
		assert.True(t, imago.IsFormat(err))
	})

	t.Run("non-JSON success body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer srv.Close()

		c := New("test-key", WithBaseURL(srv.URL))
		_, err := c.Generate(context.Background(), testRequest())
		assert.True(t, imago.IsFormat(err))
	})
}

func TestGenerateMissingKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New("", WithBaseURL(srv.URL))
	_, err := c.Generate(context.Background(), testRequest())

	var cfg *imago.ConfigurationError
	require.ErrorAs(t, err, &cfg)
	assert.Equal(t, "together", cfg.Provider)
	assert.Zero(t, calls, "no request should be sent without a key")
}
