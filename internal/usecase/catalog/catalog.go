package usecase_catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/humanbelnik/cinegraph/internal/metrics"
	"github.com/humanbelnik/cinegraph/internal/model"
	"github.com/humanbelnik/cinegraph/internal/service/fallback"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrFailedToLoadPage = errors.New("failed to load movies")
	ErrFailedToCount    = errors.New("failed to count movies")
	ErrFailedToEmbed    = errors.New("failed to get embedding")
	ErrFailedToSearch   = errors.New("failed to search movies")
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultTopK  = 5
	MaxTopK      = 50

	snippetLength = 200
)

//go:generate mockery --name=MovieRepository --output=./mocks/catalog/repository --filename=repository.go
type MovieRepository interface {
	PageWithMedia(ctx context.Context, q model.PageQuery) ([]model.Movie, error)
	Page(ctx context.Context, q model.PageQuery) ([]model.Movie, error)
	Count(ctx context.Context, search string) (int, error)
	SearchText(ctx context.Context, text string, k int) ([]model.ScoredMovie, error)
}

//go:generate mockery --name=VectorIndex --output=./mocks/catalog/index --filename=index.go
type VectorIndex interface {
	Nearest(ctx context.Context, e model.Embedding, k int) ([]model.ScoredMovie, error)
}

//go:generate mockery --name=Embedder --output=./mocks/catalog/embedder --filename=embedder.go
type Embedder interface {
	Embed(ctx context.Context, text string) (model.Embedding, error)
}

type PosterResolver interface {
	Resolve(ctx context.Context, raw string) string
}

type Usecase struct {
	movies   MovieRepository
	index    VectorIndex
	embedder Embedder
	posters  PosterResolver

	dimension      int
	randomFallback bool
	logger         *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func WithPosterResolver(r PosterResolver) Option {
	return func(u *Usecase) {
		u.posters = r
	}
}

// WithRandomFallback makes vector search substitute a random query vector
// of the given dimension when the embedder fails.
func WithRandomFallback(dimension int) Option {
	return func(u *Usecase) {
		u.randomFallback = true
		u.dimension = dimension
	}
}

type passthrough struct{}

func (passthrough) Resolve(_ context.Context, raw string) string { return raw }

func New(
	movies MovieRepository,
	index VectorIndex,
	embedder Embedder,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		movies:   movies,
		index:    index,
		embedder: embedder,
		posters:  passthrough{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ClampPage bounds limit to [1, MaxLimit] and offset to >= 0.
func ClampPage(limit, offset int) (int, int) {
	return min(max(limit, 1), MaxLimit), max(offset, 0)
}

func (u *Usecase) List(ctx context.Context, q model.PageQuery) (model.Page, error) {
	q.Limit, q.Offset = ClampPage(q.Limit, q.Offset)
	q.Search = strings.TrimSpace(q.Search)

	movies, method, err := fallback.Run(ctx, u.logger, "catalog.page",
		fallback.Of(model.MethodMediaJoin, func(ctx context.Context) ([]model.Movie, error) {
			return u.movies.PageWithMedia(ctx, q)
		}),
		fallback.Of(model.MethodPlain, func(ctx context.Context) ([]model.Movie, error) {
			return u.movies.Page(ctx, q)
		}),
	)
	if err != nil {
		return model.Page{}, fmt.Errorf("%w: %w", ErrFailedToLoadPage, err)
	}

	total, err := u.movies.Count(ctx, q.Search)
	if err != nil {
		return model.Page{}, fmt.Errorf("%w: %w", ErrFailedToCount, err)
	}

	for i := range movies {
		movies[i].PosterURL = u.resolve(ctx, movies[i].PosterURL)
	}

	return model.Page{
		Movies:    movies,
		Total:     total,
		WithMedia: method == model.MethodMediaJoin,
	}, nil
}

func (u *Usecase) VectorSearch(ctx context.Context, query string, topK int) (model.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.SearchResult{}, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	topK = min(topK, MaxTopK)

	e, err := u.embed(ctx, query)
	if err != nil {
		return model.SearchResult{}, err
	}

	hits, method, err := fallback.Run(ctx, u.logger, "catalog.vector_search",
		fallback.Of(model.MethodVector, func(ctx context.Context) ([]model.ScoredMovie, error) {
			return u.index.Nearest(ctx, e, topK)
		}),
		fallback.Of(model.MethodTextFallback, func(ctx context.Context) ([]model.ScoredMovie, error) {
			return u.movies.SearchText(ctx, query, topK)
		}),
	)
	if err != nil {
		return model.SearchResult{}, fmt.Errorf("%w: %w", ErrFailedToSearch, err)
	}

	for i := range hits {
		hits[i].Snippet = model.Truncate(hits[i].Summary, snippetLength)
		hits[i].PosterURL = u.resolve(ctx, hits[i].PosterURL)
	}

	return model.SearchResult{Query: query, Method: method, Hits: hits}, nil
}

func (u *Usecase) embed(ctx context.Context, text string) (model.Embedding, error) {
	e, err := u.embedder.Embed(ctx, text)
	if err == nil {
		return e, nil
	}
	if !u.randomFallback || ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToEmbed, err)
	}

	u.logger.Warn("embedding failed, using random query vector",
		slog.Int("dimension", u.dimension),
		slog.String("error", err.Error()),
	)
	metrics.EmbeddingFallbacks.Inc()
	return RandomEmbedding(u.dimension), nil
}

func RandomEmbedding(dimension int) model.Embedding {
	e := make(model.Embedding, dimension)
	for i := range e {
		e[i] = rand.Float32()
	}
	return e
}

func (u *Usecase) resolve(ctx context.Context, raw *string) *string {
	if raw == nil {
		return nil
	}
	v := u.posters.Resolve(ctx, *raw)
	return &v
}
