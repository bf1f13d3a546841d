//go:build !integration

package infra_genai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/humanbelnik/cinegraph/internal/config"
	"github.com/humanbelnik/cinegraph/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type GenAIClientUnitSuite struct {
	suite.Suite
}

func newClient(url string, dimension int) *Client {
	return New(config.GenAI{
		BaseURL:    url,
		APIKey:     "secret",
		ChatModel:  "chat-model",
		EmbedModel: "embed-model",
		Dimension:  dimension,
		Timeout:    5 * time.Second,
	})
}

func (suite *GenAIClientUnitSuite) TestGenerate(t provider.T) {
	t.Parallel()

	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Watch Dune."}}]}`))
	}))
	defer srv.Close()

	text, err := newClient(srv.URL, 0).Generate(context.Background(), "hello", model.GenerateOptions{Temperature: 0.7, MaxTokens: 200})

	require.NoError(t, err)
	assert.Equal(t, "Watch Dune.", text)
	assert.Equal(t, "chat-model", got.Model)
	assert.Equal(t, 200, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Content)
}

func (suite *GenAIClientUnitSuite) TestGenerateErrors(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		status    int
		body      string
		errorType error
	}{
		{
			name:      "Should wrap non 2xx status as upstream error",
			status:    http.StatusBadGateway,
			body:      `{"error":"boom"}`,
			errorType: ErrUpstream,
		},
		{
			name:      "Should reject empty choices",
			status:    http.StatusOK,
			body:      `{"choices":[]}`,
			errorType: ErrEmptyResponse,
		},
		{
			name:      "Should reject malformed body",
			status:    http.StatusOK,
			body:      `not json`,
			errorType: ErrUpstream,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := newClient(srv.URL, 0).Generate(context.Background(), "hi", model.GenerateOptions{})

			assert.ErrorIs(t, err, tc.errorType)
		})
	}
}

func (suite *GenAIClientUnitSuite) TestEmbed(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		dimension   int
		body        string
		expectLen   int
		expectError error
	}{
		{
			name:      "Should return embedding of configured dimension",
			dimension: 3,
			body:      `{"data":[{"embedding":[0.1,0.2,0.3]}]}`,
			expectLen: 3,
		},
		{
			name:        "Should reject embedding of wrong dimension",
			dimension:   4,
			body:        `{"data":[{"embedding":[0.1,0.2,0.3]}]}`,
			expectError: ErrDimensionMismatch,
		},
		{
			name:        "Should reject empty data",
			dimension:   3,
			body:        `{"data":[]}`,
			expectError: ErrEmptyResponse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/embeddings", r.URL.Path)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			e, err := newClient(srv.URL, tc.dimension).Embed(context.Background(), "space opera")

			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, e, tc.expectLen)
		})
	}
}

func TestGenAIClientUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(GenAIClientUnitSuite))
}
