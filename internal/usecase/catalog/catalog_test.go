//go:build !integration

package usecase_catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/humanbelnik/cinegraph/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	embedder_mocks "github.com/humanbelnik/cinegraph/internal/usecase/catalog/mocks/catalog/embedder"
	index_mocks "github.com/humanbelnik/cinegraph/internal/usecase/catalog/mocks/catalog/index"
	repo_mocks "github.com/humanbelnik/cinegraph/internal/usecase/catalog/mocks/catalog/repository"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type UsecaseCatalogUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase    *Usecase
	repository *repo_mocks.MovieRepository
	index      *index_mocks.VectorIndex
	embedder   *embedder_mocks.Embedder
	ctx        context.Context
}

const testDimension = 8

func initResources(t provider.T, opts ...Option) *resources {
	repository := repo_mocks.NewMovieRepository(t)
	index := index_mocks.NewVectorIndex(t)
	embedder := embedder_mocks.NewEmbedder(t)

	return &resources{
		usecase:    New(repository, index, embedder, opts...),
		repository: repository,
		index:      index,
		embedder:   embedder,
		ctx:        context.Background(),
	}
}

type MovieBuilder struct {
	m model.Movie
}

func NewMovieBuilder() *MovieBuilder {
	return &MovieBuilder{
		m: model.Movie{
			ID:      5,
			Title:   "How to Train Your Dragon",
			Genres:  model.Genres{"Animation": 1},
			Summary: "A young viking befriends a dragon.",
			Rating:  8.1,
			Year:    2010,
		},
	}
}

func (b *MovieBuilder) WithID(id model.MovieID) *MovieBuilder {
	b.m.ID = id
	return b
}

func (b *MovieBuilder) WithPoster(url string) *MovieBuilder {
	b.m.PosterURL = &url
	return b
}

func (b *MovieBuilder) Build() model.Movie {
	return b.m
}

func (suite *UsecaseCatalogUnitSuite) TestList(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		query           model.PageQuery
		setupMocks      func(r *resources)
		expectError     bool
		errorType       error
		expectTotal     int
		expectWithMedia bool
		expectLen       int
	}{
		{
			name:  "Should clamp limit above maximum and negative offset",
			query: model.PageQuery{Limit: 500, Offset: -3, Search: "  dragon "},
			setupMocks: func(r *resources) {
				q := model.PageQuery{Limit: MaxLimit, Offset: 0, Search: "dragon"}
				r.repository.On("PageWithMedia", mock.Anything, q).
					Return([]model.Movie{NewMovieBuilder().WithPoster("https://img/5.jpg").Build()}, nil).Once()
				r.repository.On("Count", mock.Anything, "dragon").Return(7, nil).Once()
			},
			expectTotal:     7,
			expectWithMedia: true,
			expectLen:       1,
		},
		{
			name:  "Should clamp zero limit to one",
			query: model.PageQuery{Limit: 0, Offset: 10},
			setupMocks: func(r *resources) {
				q := model.PageQuery{Limit: 1, Offset: 10}
				r.repository.On("PageWithMedia", mock.Anything, q).Return([]model.Movie{}, nil).Once()
				r.repository.On("Count", mock.Anything, "").Return(40, nil).Once()
			},
			expectTotal:     40,
			expectWithMedia: true,
		},
		{
			name:  "Should retry without media when media join fails",
			query: model.PageQuery{Limit: DefaultLimit},
			setupMocks: func(r *resources) {
				q := model.PageQuery{Limit: DefaultLimit}
				r.repository.On("PageWithMedia", mock.Anything, q).
					Return(nil, errors.New(`relation "media_assets" does not exist`)).Once()
				r.repository.On("Page", mock.Anything, q).
					Return([]model.Movie{NewMovieBuilder().Build(), NewMovieBuilder().WithID(9).Build()}, nil).Once()
				r.repository.On("Count", mock.Anything, "").Return(2, nil).Once()
			},
			expectTotal:     2,
			expectWithMedia: false,
			expectLen:       2,
		},
		{
			name:  "Should fail when both page queries fail",
			query: model.PageQuery{Limit: DefaultLimit},
			setupMocks: func(r *resources) {
				r.repository.On("PageWithMedia", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()
				r.repository.On("Page", mock.Anything, mock.Anything).Return(nil, errors.New("down")).Once()
			},
			expectError: true,
			errorType:   ErrFailedToLoadPage,
		},
		{
			name:  "Should fail when count fails",
			query: model.PageQuery{Limit: DefaultLimit},
			setupMocks: func(r *resources) {
				r.repository.On("PageWithMedia", mock.Anything, mock.Anything).Return([]model.Movie{}, nil).Once()
				r.repository.On("Count", mock.Anything, "").Return(0, errors.New("down")).Once()
			},
			expectError: true,
			errorType:   ErrFailedToCount,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			page, err := r.usecase.List(r.ctx, tc.query)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.errorType)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectTotal, page.Total)
			assert.Equal(t, tc.expectWithMedia, page.WithMedia)
			assert.Len(t, page.Movies, tc.expectLen)
		})
	}
}

func (suite *UsecaseCatalogUnitSuite) TestVectorSearch(t provider.T) {
	t.Parallel()

	embedding := model.Embedding{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}
	longSummary := strings.Repeat("a", 250)

	testCases := []struct {
		name         string
		query        string
		topK         int
		opts         []Option
		setupMocks   func(r *resources)
		expectError  bool
		errorType    error
		expectMethod model.Method
		check        func(t provider.T, res model.SearchResult)
	}{
		{
			name:        "Should reject blank query",
			query:       "   ",
			setupMocks:  func(r *resources) {},
			expectError: true,
			errorType:   ErrInvalidInput,
		},
		{
			name:  "Should rank by vector index",
			query: "space opera",
			topK:  0,
			setupMocks: func(r *resources) {
				r.embedder.On("Embed", mock.Anything, "space opera").Return(embedding, nil).Once()
				r.index.On("Nearest", mock.Anything, embedding, DefaultTopK).
					Return([]model.ScoredMovie{{ID: 1, Title: "Dune", Summary: longSummary, Score: 0.82}}, nil).Once()
			},
			expectMethod: model.MethodVector,
			check: func(t provider.T, res model.SearchResult) {
				if assert.Len(t, res.Hits, 1) {
					assert.Equal(t, 0.82, res.Hits[0].Score)
					assert.Equal(t, strings.Repeat("a", 200)+"...", res.Hits[0].Snippet)
				}
			},
		},
		{
			name:  "Should cap top k",
			query: "heist",
			topK:  500,
			setupMocks: func(r *resources) {
				r.embedder.On("Embed", mock.Anything, "heist").Return(embedding, nil).Once()
				r.index.On("Nearest", mock.Anything, embedding, MaxTopK).Return([]model.ScoredMovie{}, nil).Once()
			},
			expectMethod: model.MethodVector,
		},
		{
			name:  "Should fall back to substring match when vector query fails",
			query: "dragon",
			topK:  3,
			setupMocks: func(r *resources) {
				r.embedder.On("Embed", mock.Anything, "dragon").Return(embedding, nil).Once()
				r.index.On("Nearest", mock.Anything, embedding, 3).Return(nil, errors.New("operator does not exist")).Once()
				r.repository.On("SearchText", mock.Anything, "dragon", 3).Return([]model.ScoredMovie{
					{ID: 5, Title: "Dragon", Score: 0.5},
					{ID: 7, Title: "Dragonheart", Score: 0.5},
				}, nil).Once()
			},
			expectMethod: model.MethodTextFallback,
			check: func(t provider.T, res model.SearchResult) {
				assert.Len(t, res.Hits, 2)
				for _, h := range res.Hits {
					assert.Equal(t, 0.5, h.Score)
				}
			},
		},
		{
			name:  "Should substitute random vector when embedding fails",
			query: "noir",
			opts:  []Option{WithRandomFallback(testDimension)},
			setupMocks: func(r *resources) {
				r.embedder.On("Embed", mock.Anything, "noir").Return(nil, errors.New("quota exceeded")).Once()
				r.index.On("Nearest", mock.Anything, mock.MatchedBy(func(e model.Embedding) bool {
					return len(e) == testDimension
				}), DefaultTopK).Return([]model.ScoredMovie{{ID: 3, Score: 0.1}}, nil).Once()
			},
			expectMethod: model.MethodVector,
		},
		{
			name:  "Should fail when embedding fails and random fallback is off",
			query: "noir",
			setupMocks: func(r *resources) {
				r.embedder.On("Embed", mock.Anything, "noir").Return(nil, errors.New("quota exceeded")).Once()
			},
			expectError: true,
			errorType:   ErrFailedToEmbed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t, tc.opts...)
			tc.setupMocks(r)

			res, err := r.usecase.VectorSearch(r.ctx, tc.query, tc.topK)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.errorType)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectMethod, res.Method)
			if tc.check != nil {
				tc.check(t, res)
			}
		})
	}
}

func (suite *UsecaseCatalogUnitSuite) TestRandomEmbedding(t provider.T) {
	e := RandomEmbedding(1024)

	assert.Len(t, e, 1024)
	for _, v := range e {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
}

func TestUsecaseCatalogUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseCatalogUnitSuite))
}
