package usecase_chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/humanbelnik/cinegraph/internal/model"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrFailedToGenerate = errors.New("failed to generate response")
)

const (
	watchedContext = 5
	cardsContext   = 3

	temperature = 0.7
	maxTokens   = 200
)

//go:generate mockery --name=GraphContext --output=./mocks/chat/graph --filename=graph.go
type GraphContext interface {
	WatchedTitles(ctx context.Context, ID model.CustomerID, limit int) ([]string, model.Method, error)
	Recommend(ctx context.Context, ID model.CustomerID, limit int) (model.Recommendations, error)
}

//go:generate mockery --name=History --output=./mocks/chat/history --filename=history.go
type History interface {
	RecentTitles(ctx context.Context, ID model.CustomerID, limit int) ([]string, error)
}

//go:generate mockery --name=Generator --output=./mocks/chat/generator --filename=generator.go
type Generator interface {
	Generate(ctx context.Context, prompt string, opts model.GenerateOptions) (string, error)
}

type Usecase struct {
	graph     GraphContext
	history   History
	generator Generator
	logger    *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(graph GraphContext, history History, generator Generator, opts ...Option) *Usecase {
	u := &Usecase{
		graph:     graph,
		history:   history,
		generator: generator,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

const chatPrompt = `You are a movie assistant. Be BRIEF and NATURAL.

USER CONTEXT (from the customer-movie property graph):
%s

QUESTION: %s

INSTRUCTIONS:
- If there are recommendations, mention that you used the property graph and how it helped
- 2-3 sentences at most
- Be conversational

ANSWER:`

const smartPrompt = `You are a movie assistant. Be BRIEF.

CONTEXT:
%s

QUESTION: %s

Answer in at most 3 sentences.`

func customerOf(req model.ChatRequest) (model.CustomerID, bool) {
	if req.CustomerID == nil || *req.CustomerID == 0 {
		return 0, false
	}
	return *req.CustomerID, true
}

func contextText(lines []string) string {
	if len(lines) == 0 {
		return model.NoHistory
	}
	return strings.Join(lines, "\n")
}

// Chat answers with the customer's history and graph recommendations as
// prompt context. Context lookups are best effort.
func (u *Usecase) Chat(ctx context.Context, req model.ChatRequest) (model.ChatAnswer, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return model.ChatAnswer{}, fmt.Errorf("%w: message required", ErrInvalidInput)
	}

	var (
		lines  []string
		cards  = []model.Recommendation{}
		method = model.MethodPropertyGraph
	)

	if ID, ok := customerOf(req); ok {
		titles, watchedMethod, err := u.graph.WatchedTitles(ctx, ID, watchedContext)
		if err != nil {
			u.logger.Warn("chat context: watched titles", slog.Int64("customer_id", ID), slog.String("error", err.Error()))
		} else {
			method = watchedMethod
			if len(titles) > 0 {
				lines = append(lines, "You watched: "+strings.Join(titles, ", "))
			}
		}

		recs, err := u.graph.Recommend(ctx, ID, cardsContext)
		if err != nil {
			u.logger.Warn("chat context: recommendations", slog.Int64("customer_id", ID), slog.String("error", err.Error()))
		} else {
			method = recs.Method
			if len(recs.Items) > 0 {
				cards = recs.Items
				names := make([]string, len(recs.Items))
				for i, r := range recs.Items {
					names[i] = r.Title
				}
				lines = append(lines, "Property graph recommendations: "+strings.Join(names, ", "))
			}
		}
	}

	response, err := u.generator.Generate(ctx, fmt.Sprintf(chatPrompt, contextText(lines), message),
		model.GenerateOptions{Temperature: temperature, MaxTokens: maxTokens})
	if err != nil {
		return model.ChatAnswer{}, fmt.Errorf("%w: %w", ErrFailedToGenerate, err)
	}

	return model.ChatAnswer{
		Message:    message,
		Response:   response,
		MovieCards: cards,
		GraphUsed:  len(lines) > 0,
		Method:     method,
	}, nil
}

// Smart answers with the customer's recent titles only.
func (u *Usecase) Smart(ctx context.Context, req model.ChatRequest) (model.SmartAnswer, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return model.SmartAnswer{}, fmt.Errorf("%w: message required", ErrInvalidInput)
	}

	lines := []string{}
	if ID, ok := customerOf(req); ok {
		titles, err := u.history.RecentTitles(ctx, ID, watchedContext)
		if err != nil {
			u.logger.Warn("smart chat context", slog.Int64("customer_id", ID), slog.String("error", err.Error()))
		} else if len(titles) > 0 {
			lines = append(lines, "Watched movies: "+strings.Join(titles, ", "))
		}
	}

	response, err := u.generator.Generate(ctx, fmt.Sprintf(smartPrompt, contextText(lines), message),
		model.GenerateOptions{Temperature: temperature, MaxTokens: maxTokens})
	if err != nil {
		return model.SmartAnswer{}, fmt.Errorf("%w: %w", ErrFailedToGenerate, err)
	}

	return model.SmartAnswer{
		Message:       message,
		Response:      response,
		GraphInsights: lines,
		ContextUsed:   len(lines) > 0,
	}, nil
}
