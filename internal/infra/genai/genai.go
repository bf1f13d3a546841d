// Package infra_genai talks to an OpenAI-compatible generative AI endpoint
// for chat completions and text embeddings.
package infra_genai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/humanbelnik/cinegraph/internal/config"
	"github.com/humanbelnik/cinegraph/internal/metrics"
	"github.com/humanbelnik/cinegraph/internal/model"
	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	ErrUpstream          = errors.New("generative ai request failed")
	ErrEmptyResponse     = errors.New("generative ai returned no content")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

const (
	kindChat  = "chat"
	kindEmbed = "embed"

	maxErrorBody = 512
)

type Client struct {
	baseURL    string
	apiKey     string
	chatModel  string
	embedModel string
	dimension  int

	http    *http.Client
	chatCB  *gobreaker.CircuitBreaker[[]byte]
	embedCB *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
}

type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(cfg config.GenAI, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		chatModel:  cfg.ChatModel,
		embedModel: cfg.EmbedModel,
		dimension:  cfg.Dimension,
		http:       &http.Client{Timeout: cfg.Timeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.chatCB = c.newBreaker("genai-chat")
	c.embedCB = c.newBreaker("genai-embed")
	return c
}

func (c *Client) newBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Info("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      float64       `json:"temperature"`
	MaxTokens        int           `json:"max_tokens"`
	TopP             float64       `json:"top_p"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	PresencePenalty  float64       `json:"presence_penalty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (c *Client) Generate(ctx context.Context, prompt string, opts model.GenerateOptions) (string, error) {
	start := time.Now()
	text, err := c.generate(ctx, prompt, opts)
	metrics.RecordGenAI(kindChat, time.Since(start), err)
	return text, err
}

func (c *Client) generate(ctx context.Context, prompt string, opts model.GenerateOptions) (string, error) {
	body, err := c.post(ctx, c.chatCB, "/chat/completions", chatRequest{
		Model:       c.chatModel,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		TopP:        0.75,
	})
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: decode chat response: %w", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) Embed(ctx context.Context, text string) (model.Embedding, error) {
	start := time.Now()
	e, err := c.embed(ctx, text)
	metrics.RecordGenAI(kindEmbed, time.Since(start), err)
	return e, err
}

func (c *Client) embed(ctx context.Context, text string) (model.Embedding, error) {
	body, err := c.post(ctx, c.embedCB, "/embeddings", embedRequest{
		Model: c.embedModel,
		Input: []string{text},
	})
	if err != nil {
		return nil, err
	}

	var resp embedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode embedding response: %w", ErrUpstream, err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, ErrEmptyResponse
	}

	e := model.Embedding(resp.Data[0].Embedding)
	if c.dimension > 0 && len(e) != c.dimension {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(e), c.dimension)
	}
	return e, nil
}

func (c *Client) post(ctx context.Context, cb *gobreaker.CircuitBreaker[[]byte], path string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	body, err := cb.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode/100 != 2 {
			if len(data) > maxErrorBody {
				data = data[:maxErrorBody]
			}
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return data, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn("generative ai request rejected by circuit breaker",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstream, path, err)
	}
	return body, nil
}
