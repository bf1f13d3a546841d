//go:build !integration

package http_movie

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/humanbelnik/cinegraph/internal/model"
	usecase_catalog "github.com/humanbelnik/cinegraph/internal/usecase/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	embedder_mocks "github.com/humanbelnik/cinegraph/internal/usecase/catalog/mocks/catalog/embedder"
	index_mocks "github.com/humanbelnik/cinegraph/internal/usecase/catalog/mocks/catalog/index"
	repo_mocks "github.com/humanbelnik/cinegraph/internal/usecase/catalog/mocks/catalog/repository"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type MovieHandlerUnitSuite struct {
	suite.Suite
}

type resources struct {
	engine     *gin.Engine
	repository *repo_mocks.MovieRepository
}

func initResources(t provider.T) *resources {
	gin.SetMode(gin.TestMode)
	repository := repo_mocks.NewMovieRepository(t)
	uc := usecase_catalog.New(repository, index_mocks.NewVectorIndex(t), embedder_mocks.NewEmbedder(t))

	engine := gin.New()
	New(uc).RegisterRoutes(engine.Group("/api"))
	return &resources{engine: engine, repository: repository}
}

func poster(s string) *string {
	return &s
}

func alien() model.Movie {
	return model.Movie{
		ID:        1,
		Title:     "Alien",
		Genres:    model.Genres{"Horror": 1},
		Summary:   model.DefaultSummary,
		Rating:    8.5,
		Year:      1979,
		PosterURL: poster("https://img/1.jpg"),
	}
}

func (suite *MovieHandlerUnitSuite) TestGetMovies(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		target       string
		setupMocks   func(r *resources)
		expectStatus int
		check        func(t provider.T, body map[string]any)
	}{
		{
			name:   "Should include media fields when joined",
			target: "/api/movies",
			setupMocks: func(r *resources) {
				r.repository.On("PageWithMedia", mock.Anything, model.PageQuery{Limit: 20}).
					Return([]model.Movie{alien()}, nil).Once()
				r.repository.On("Count", mock.Anything, "").Return(1200, nil).Once()
			},
			expectStatus: http.StatusOK,
			check: func(t provider.T, body map[string]any) {
				assert.Equal(t, true, body["success"])
				assert.Equal(t, float64(1), body["count"])
				assert.Equal(t, float64(1200), body["total"])
				assert.Nil(t, body["search_query"])
				movie := body["data"].([]any)[0].(map[string]any)
				assert.Equal(t, "https://img/1.jpg", movie["poster_url"])
				assert.Contains(t, movie, "trailer_url")
				assert.Nil(t, movie["trailer_url"])
				assert.Equal(t, float64(1979), movie["year"])
				assert.Contains(t, movie, "watchCount")
			},
		},
		{
			name:   "Should omit media fields when media join fails",
			target: "/api/movies?limit=5&offset=10&search=%20alien%20",
			setupMocks: func(r *resources) {
				q := model.PageQuery{Limit: 5, Offset: 10, Search: "alien"}
				r.repository.On("PageWithMedia", mock.Anything, q).
					Return(nil, errors.New(`relation "media_assets" does not exist`)).Once()
				r.repository.On("Page", mock.Anything, q).Return([]model.Movie{alien()}, nil).Once()
				r.repository.On("Count", mock.Anything, "alien").Return(11, nil).Once()
			},
			expectStatus: http.StatusOK,
			check: func(t provider.T, body map[string]any) {
				assert.Equal(t, "alien", body["search_query"])
				movie := body["data"].([]any)[0].(map[string]any)
				assert.NotContains(t, movie, "poster_url")
				assert.NotContains(t, movie, "trailer_url")
			},
		},
		{
			name:         "Should reject malformed limit",
			target:       "/api/movies?limit=ten",
			setupMocks:   func(r *resources) {},
			expectStatus: http.StatusBadRequest,
			check: func(t provider.T, body map[string]any) {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, float64(http.StatusBadRequest), body["code"])
			},
		},
		{
			name:   "Should report count failure",
			target: "/api/movies",
			setupMocks: func(r *resources) {
				r.repository.On("PageWithMedia", mock.Anything, model.PageQuery{Limit: 20}).
					Return([]model.Movie{}, nil).Once()
				r.repository.On("Count", mock.Anything, "").Return(0, errors.New("timeout")).Once()
			},
			expectStatus: http.StatusInternalServerError,
			check: func(t provider.T, body map[string]any) {
				assert.Equal(t, "failed to count movies", body["error"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			r.engine.ServeHTTP(w, req)

			assert.Equal(t, tc.expectStatus, w.Code)
			var body map[string]any
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			tc.check(t, body)
		})
	}
}

func TestMovieHandlerUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(MovieHandlerUnitSuite))
}
